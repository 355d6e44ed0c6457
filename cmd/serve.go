package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aristide1997/version-vault/internal/api"
	"github.com/aristide1997/version-vault/internal/config"
	"github.com/aristide1997/version-vault/internal/core"
	"github.com/aristide1997/version-vault/internal/store"
	"github.com/aristide1997/version-vault/internal/token"
)

var serveConfigFile string

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the version-vault server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := loadServerConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr == "" {
			addr = cfg.Addr
		}

		secret, err := cfg.Auth.ResolveSecret()
		if err != nil {
			return fmt.Errorf("resolving signing secret: %w", err)
		}

		log.Info().Str("kind", cfg.Store.Kind).Msg("Initializing store...")
		appStore, err := buildStore(cmd.Context(), cfg.Store)
		if err != nil {
			return fmt.Errorf("building store: %w", err)
		}

		// one connectivity probe before we accept traffic; a missing
		// record is the expected outcome
		probeCtx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		if _, err := appStore.Get(probeCtx, "vvault-connection-probe"); err != nil && !errors.Is(err, core.ErrNotFound) {
			log.Warn().Err(err).Msg("store probe failed, continuing anyway")
		}
		cancel()

		srv := api.NewServer(appStore, token.NewService(secret))

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

// loadServerConfig reads the server configuration either from an explicit
// file (-f) or from the already-loaded viper state (user config + env).
func loadServerConfig() (*config.Config, error) {
	if serveConfigFile != "" {
		return config.Load(serveConfigFile)
	}

	// note: the top-level "addr" viper key is taken by the --server flag
	// used by client commands, so the listen address only comes from the
	// explicit config file or the serve --addr flag.
	cfg := &config.Config{
		Store: config.StoreConfig{
			Kind:     viper.GetString("store.kind"),
			Table:    viper.GetString("store.table"),
			Region:   viper.GetString("store.region"),
			Endpoint: viper.GetString("store.endpoint"),
		},
		Auth: config.AuthConfig{
			SecretEnv:  viper.GetString("auth.secret_env"),
			SecretFile: viper.GetString("auth.secret_file"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildStore(ctx context.Context, cfg config.StoreConfig) (core.AppStore, error) {
	switch cfg.Kind {
	case config.StoreKindMemory:
		log.Warn().Msg("using the in-memory store, state is lost on restart")
		return store.NewMemoryStore(), nil
	case config.StoreKindDynamo:
		return store.NewDynamoStore(ctx, store.DynamoOptions{
			Table:    cfg.Table,
			Region:   cfg.Region,
			Endpoint: cfg.Endpoint,
		})
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "address to listen on (overrides config)")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config-file", "f", "", "server configuration file")
}
