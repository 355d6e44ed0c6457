package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:     "get <app_name>",
	Short:   "Print the current version of an app",
	Example: `  vvault get MyApp --server http://localhost:8080`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getClient()
		if err != nil {
			return err
		}

		version, err := c.GetVersion(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println(version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringVar(&appToken, "token", "", "bearer token for secure apps")
}
