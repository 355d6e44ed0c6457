package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var bumpCmd = &cobra.Command{
	Use:   "bump <app_name> <major|minor|patch>",
	Short: "Increment one component of an app's version",
	Long: `Applies the usual semantic-versioning transition:

  major: 1.2.3 -> 2.0.0
  minor: 1.2.3 -> 1.3.0
  patch: 1.2.3 -> 1.2.4`,
	Example: `  vvault bump MyApp minor`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getClient()
		if err != nil {
			return err
		}

		newVersion, err := c.BumpVersion(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		fmt.Printf("%s %s is now at %s\n",
			color.GreenString("✓"), args[0], color.New(color.Bold).Sprint(newVersion))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringVar(&appToken, "token", "", "bearer token for secure apps")
}
