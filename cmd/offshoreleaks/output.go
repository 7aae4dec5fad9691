package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
)

// jsonOutput switches the query commands to raw JSON output.
var jsonOutput bool

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"print raw JSON instead of summarized output")
}

// printResult renders a search result either as raw JSON or as a short
// summary followed by the rows.
func printResult(cmd *cobra.Command, result service.SearchResult) error {
	if jsonOutput {
		return printJSON(cmd, result)
	}

	cmd.Printf("Showing %d of %d results (offset %d)\n",
		result.ReturnedCount, result.TotalCount, result.Offset)
	if result.QueryTimeMS != nil {
		cmd.Printf("Query time: %dms\n", *result.QueryTimeMS)
	}
	for i, row := range result.Results {
		cmd.Printf("--- result %d ---\n", result.Offset+i+1)
		if err := printJSON(cmd, row); err != nil {
			return err
		}
	}
	return nil
}

func printJSON(cmd *cobra.Command, data any) error {
	body, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}
	cmd.Println(string(body))
	return nil
}
