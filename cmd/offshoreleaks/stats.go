package main

import (
	"github.com/spf13/cobra"
)

var statType string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := newClient().GetStatistics(cmd.Context(), statType)
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	},
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show node and relationship breakdowns",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := newClient().GetDatabaseInfo(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, info)
	},
}

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Show server error statistics and circuit breaker states",
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := newClient().GetErrorStats(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(cmd, stats)
	},
}

func init() {
	statsCmd.Flags().StringVar(&statType, "type", "overview",
		"stat type: overview, by_source, by_jurisdiction, or relationship_counts")

	rootCmd.AddCommand(statsCmd, infoCmd, errorsCmd)
}
