package main

import (
	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

var connectionsFlags service.ConnectionsParams

var connectionsCmd = &cobra.Command{
	Use:   "connections <start-node-id>",
	Short: "Explore connections from a node",
	Args:  cobra.ExactArgs(1),
	Example: `  offshoreleaks connections 10000001 --depth 2
  offshoreleaks connections 10000001 --rel-types OFFICER_OF,SHAREHOLDER_OF --node-types Entity`,
	RunE: func(cmd *cobra.Command, args []string) error {
		connectionsFlags.StartNodeID = args[0]
		result, err := newClient().GetConnections(cmd.Context(), connectionsFlags)
		if err != nil {
			return err
		}
		return printResult(cmd, result)
	},
}

func init() {
	connectionsCmd.Flags().StringSliceVar(&connectionsFlags.RelationshipTypes, "rel-types", nil, "relationship types to follow")
	connectionsCmd.Flags().IntVar(&connectionsFlags.MaxDepth, "depth", 0, "maximum traversal depth (1-5)")
	connectionsCmd.Flags().StringSliceVar(&connectionsFlags.NodeTypes, "node-types", nil, "node labels to keep")
	connectionsCmd.Flags().IntVar(&connectionsFlags.Limit, "limit", 0, "maximum results")

	rootCmd.AddCommand(connectionsCmd)
}
