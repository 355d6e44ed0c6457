package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aristide1997/version-vault/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configValidateCmd = &cobra.Command{
	Use:     "validate <file>",
	Short:   "Validate a server configuration file",
	Example: `  vvault config validate .vvault.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s is valid (store: %s, addr: %s)\n",
			color.GreenString("✓"), args[0], cfg.Store.Kind, cfg.Addr)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configValidateCmd)
}
