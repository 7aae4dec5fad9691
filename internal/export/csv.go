package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func writeResultCSV(w io.Writer, result service.SearchResult, opts Options) error {
	rows := limitRows(result.Results, opts.MaxResults)

	flattened := make([]map[string]any, len(rows))
	for i, row := range rows {
		flattened[i] = Flatten(row)
	}
	columns := columnOrder(flattened)

	cw := csv.NewWriter(w)
	if len(columns) > 0 {
		if err := cw.Write(columns); err != nil {
			return types.WrapError(types.EXPORT_FAILED, "csv export failed", err)
		}
	}
	for _, row := range flattened {
		record := make([]string, len(columns))
		for i, col := range columns {
			if value, ok := row[col]; ok && value != nil {
				record[i] = fmt.Sprint(value)
			}
		}
		if err := cw.Write(record); err != nil {
			return types.WrapError(types.EXPORT_FAILED, "csv export failed", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return types.WrapError(types.EXPORT_FAILED, "csv export failed", err)
	}
	return nil
}
