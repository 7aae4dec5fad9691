package main

import (
	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

var pathsFlags service.ShortestPathsParams

var pathsCmd = &cobra.Command{
	Use:   "paths <start-node-id> <end-node-id>",
	Short: "Find shortest paths between two nodes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pathsFlags.StartNodeID = args[0]
		pathsFlags.EndNodeID = args[1]
		result, err := newClient().FindShortestPaths(cmd.Context(), pathsFlags)
		if err != nil {
			return err
		}
		if result.ReturnedCount == 0 && !jsonOutput {
			cmd.Println("No path found")
			return nil
		}
		return printResult(cmd, result)
	},
}

func init() {
	pathsCmd.Flags().IntVar(&pathsFlags.MaxDepth, "depth", 0, "maximum path length (1-10)")
	pathsCmd.Flags().StringSliceVar(&pathsFlags.RelationshipTypes, "rel-types", nil, "relationship types to follow")
	pathsCmd.Flags().IntVar(&pathsFlags.Limit, "limit", 0, "maximum paths")

	rootCmd.AddCommand(pathsCmd)
}
