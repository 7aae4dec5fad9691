package main

import (
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server and database health",
	RunE: func(cmd *cobra.Command, args []string) error {
		health, err := newClient().Health(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, health)
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
