package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/export"
	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

var (
	exportFormat string
	exportOutput string
	exportLimit  int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export query results to files",
}

var exportEntityFlags service.EntitySearchParams

var exportEntitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Export an entity search to JSON or CSV",
	Example: `  offshoreleaks export entities --name "mossack" --format csv -o entities.csv
  offshoreleaks export entities --jurisdiction panama --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		result, err := newClient().SearchEntities(cmd.Context(), exportEntityFlags)
		if err != nil {
			return err
		}

		w, closeFn, err := outputWriter()
		if err != nil {
			return err
		}
		defer closeFn()

		opts := export.DefaultOptions()
		opts.MaxResults = exportLimit
		return export.WriteResult(w, result, format, opts)
	},
}

var exportNetworkFlags service.ConnectionsParams

var exportNetworkCmd = &cobra.Command{
	Use:   "network <start-node-id>",
	Short: "Export a connection network to JSON, GEXF, or GraphML",
	Args:  cobra.ExactArgs(1),
	Example: `  offshoreleaks export network 10000001 --format gexf -o network.gexf
  offshoreleaks export network 10000001 --depth 3 --format graphml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := export.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		exportNetworkFlags.StartNodeID = args[0]
		result, err := newClient().GetConnections(cmd.Context(), exportNetworkFlags)
		if err != nil {
			return err
		}

		w, closeFn, err := outputWriter()
		if err != nil {
			return err
		}
		defer closeFn()

		network := export.NetworkFromConnections(args[0], result.Results)
		return export.WriteNetwork(w, network, format)
	},
}

// outputWriter returns the export destination: the -o file when given,
// stdout otherwise.
func outputWriter() (*os.File, func(), error) {
	if exportOutput == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(exportOutput)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func init() {
	exportCmd.PersistentFlags().StringVar(&exportFormat, "format", "json",
		"export format: json, csv (entities) or json, gexf, graphml (network)")
	exportCmd.PersistentFlags().StringVarP(&exportOutput, "output", "o", "",
		"output file (default stdout)")

	exportEntitiesCmd.Flags().StringVar(&exportEntityFlags.Name, "name", "", "name substring (case-insensitive)")
	exportEntitiesCmd.Flags().StringVar(&exportEntityFlags.Jurisdiction, "jurisdiction", "", "jurisdiction substring")
	exportEntitiesCmd.Flags().StringVar(&exportEntityFlags.Status, "status", "", "exact status")
	exportEntitiesCmd.Flags().StringVar(&exportEntityFlags.Source, "source", "", "exact leak source id")
	exportEntitiesCmd.Flags().IntVar(&exportEntityFlags.Limit, "limit", 0, "maximum results per page")
	exportEntitiesCmd.Flags().IntVar(&exportEntityFlags.Offset, "offset", 0, "pagination offset")
	exportEntitiesCmd.Flags().IntVar(&exportLimit, "max-results", 0, "cap exported rows")

	exportNetworkCmd.Flags().StringSliceVar(&exportNetworkFlags.RelationshipTypes, "rel-types", nil, "relationship types to follow")
	exportNetworkCmd.Flags().IntVar(&exportNetworkFlags.MaxDepth, "depth", 0, "maximum traversal depth (1-5)")
	exportNetworkCmd.Flags().IntVar(&exportNetworkFlags.Limit, "limit", 0, "maximum connections")

	exportCmd.AddCommand(exportEntitiesCmd, exportNetworkCmd)
	rootCmd.AddCommand(exportCmd)
}
