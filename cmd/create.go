package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aristide1997/version-vault/pkg/client"
)

var (
	createSecure     bool
	createExpiryDays int
)

var createCmd = &cobra.Command{
	Use:   "create <app_name>",
	Short: "Register a new app in the registry",
	Long: `Registers a new app starting at version 0.1.0.

With --secure, every later operation on the app requires the bearer token
printed by this command. Store it somewhere safe: it is shown exactly once
and cannot be recovered.`,
	Example: `  vvault create MyApp
  vvault create MyApp --secure --expiry-days 90`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getClient()
		if err != nil {
			return err
		}

		resp, err := c.CreateApp(cmd.Context(), args[0], client.CreateAppOptions{
			Secure:     createSecure,
			ExpiryDays: createExpiryDays,
		})
		if err != nil {
			return err
		}

		fmt.Printf("%s %s registered at version %s\n",
			color.GreenString("✓"), color.New(color.Bold).Sprint(resp.AppName), resp.Version)

		if resp.Token != "" {
			fmt.Println()
			color.Yellow("This token is shown only once:")
			fmt.Println(resp.Token)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)

	createCmd.Flags().BoolVar(&createSecure, "secure", false, "require a bearer token on every operation")
	createCmd.Flags().IntVar(&createExpiryDays, "expiry-days", 0, "token expiry in days (default 365, requires --secure)")
}
