package main

import (
	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Network, temporal, and compliance analysis",
}

var patternsFlags service.NetworkPatternsParams

var analyzePatternsCmd = &cobra.Command{
	Use:   "patterns <node-id>",
	Short: "Detect hub, bridge, or cluster patterns around a node",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		patternsFlags.NodeID = args[0]
		result, err := newClient().AnalyzeNetworkPatterns(cmd.Context(), patternsFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var commonFlags service.CommonConnectionsParams

var analyzeCommonCmd = &cobra.Command{
	Use:   "common <node-id> <node-id> [node-id...]",
	Short: "Find nodes connected to all of the given nodes",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		commonFlags.NodeIDs = args
		result, err := newClient().FindCommonConnections(cmd.Context(), commonFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var temporalFlags service.TemporalAnalysisParams

var analyzeTemporalCmd = &cobra.Command{
	Use:   "temporal <node-id>",
	Short: "Relate nearby nodes by incorporation or registration dates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		temporalFlags.NodeID = args[0]
		result, err := newClient().TemporalAnalysis(cmd.Context(), temporalFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

var riskFlags service.ComplianceRiskParams

var analyzeRiskCmd = &cobra.Command{
	Use:   "risk <node-id>",
	Short: "Find connected nodes in high-risk jurisdictions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		riskFlags.NodeID = args[0]
		result, err := newClient().ComplianceRiskAnalysis(cmd.Context(), riskFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	analyzePatternsCmd.Flags().StringVar(&patternsFlags.PatternType, "type", "", "pattern type: hub, bridge, or cluster")
	analyzePatternsCmd.Flags().IntVar(&patternsFlags.MaxDepth, "depth", 0, "maximum traversal depth (1-5)")
	analyzePatternsCmd.Flags().IntVar(&patternsFlags.MinConnections, "min-connections", 0, "minimum connection count")
	analyzePatternsCmd.Flags().IntVar(&patternsFlags.Limit, "limit", 0, "maximum results")

	analyzeCommonCmd.Flags().StringSliceVar(&commonFlags.RelationshipTypes, "rel-types", nil, "relationship types to follow")
	analyzeCommonCmd.Flags().IntVar(&commonFlags.MaxDepth, "depth", 0, "maximum traversal depth (1-5)")
	analyzeCommonCmd.Flags().IntVar(&commonFlags.Limit, "limit", 0, "maximum results")

	analyzeTemporalCmd.Flags().StringVar(&temporalFlags.DateField, "date-field", "", "date property to compare (default incorporation_date)")
	analyzeTemporalCmd.Flags().IntVar(&temporalFlags.TimeWindowDays, "window-days", 0, "day-difference window (default 365)")
	analyzeTemporalCmd.Flags().IntVar(&temporalFlags.Limit, "limit", 0, "maximum results")

	analyzeRiskCmd.Flags().StringSliceVar(&riskFlags.RiskJurisdictions, "jurisdictions", nil, "risk jurisdiction codes (default built-in list)")
	analyzeRiskCmd.Flags().IntVar(&riskFlags.MaxDepth, "depth", 0, "maximum traversal depth (1-5)")
	analyzeRiskCmd.Flags().IntVar(&riskFlags.Limit, "limit", 0, "maximum results")

	analyzeCmd.AddCommand(analyzePatternsCmd, analyzeCommonCmd, analyzeTemporalCmd, analyzeRiskCmd)
	rootCmd.AddCommand(analyzeCmd)
}
