package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set <app_name> <version>",
	Short: "Overwrite an app's version with an explicit value",
	Long: `Sets the version verbatim, without any monotonicity check. Unlike bump,
moving an app backwards is allowed. The value must match major.minor.patch.`,
	Example: `  vvault set MyApp 2.0.0`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getClient()
		if err != nil {
			return err
		}

		newVersion, err := c.SetVersion(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s set to %s\n",
			color.GreenString("✓"), args[0], color.New(color.Bold).Sprint(newVersion))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVar(&appToken, "token", "", "bearer token for secure apps")
}
