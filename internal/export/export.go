// Package export writes query results to interchange formats: JSON and CSV
// for tabular results, GEXF and GraphML for network visualization tools.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// Format identifies an export format.
type Format string

const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatGEXF    Format = "gexf"
	FormatGraphML Format = "graphml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatGEXF:
		return FormatGEXF, nil
	case FormatGraphML:
		return FormatGraphML, nil
	default:
		return "", types.NewError(types.EXPORT_FORMAT_UNSUPPORTED,
			"unsupported export format: "+s)
	}
}

// Options configures result export.
type Options struct {
	IncludeMetadata bool
	MaxResults      int
}

// DefaultOptions returns the standard export options.
func DefaultOptions() Options {
	return Options{IncludeMetadata: true}
}

// metadata is attached to JSON exports when IncludeMetadata is set.
type metadata struct {
	ExportDate     time.Time `json:"export_date"`
	TotalRecords   int       `json:"total_records"`
	QueryTimeMS    *int64    `json:"query_time_ms,omitempty"`
	Offset         int       `json:"offset"`
	Limit          int       `json:"limit"`
	LimitedResults bool      `json:"limited_results,omitempty"`
}

// WriteResult writes a search result to w in the given tabular format. GEXF
// and GraphML are network formats and are rejected here; use WriteNetwork.
func WriteResult(w io.Writer, result service.SearchResult, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return writeResultJSON(w, result, opts)
	case FormatCSV:
		return writeResultCSV(w, result, opts)
	default:
		return types.NewError(types.EXPORT_FORMAT_UNSUPPORTED,
			fmt.Sprintf("format %q does not apply to tabular results", format))
	}
}

func writeResultJSON(w io.Writer, result service.SearchResult, opts Options) error {
	rows := limitRows(result.Results, opts.MaxResults)

	payload := map[string]any{
		"total_count":    result.TotalCount,
		"returned_count": result.ReturnedCount,
		"offset":         result.Offset,
		"limit":          result.Limit,
		"results":        rows,
	}
	if opts.IncludeMetadata {
		payload["export_metadata"] = metadata{
			ExportDate:     time.Now().UTC(),
			TotalRecords:   len(result.Results),
			QueryTimeMS:    result.QueryTimeMS,
			Offset:         result.Offset,
			Limit:          result.Limit,
			LimitedResults: len(rows) < len(result.Results),
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return types.WrapError(types.EXPORT_FAILED, "json export failed", err)
	}
	return nil
}

func limitRows(rows []map[string]any, max int) []map[string]any {
	if max > 0 && len(rows) > max {
		return rows[:max]
	}
	return rows
}

// Flatten collapses nested maps into a single level with underscore-joined
// keys. Lists of maps contribute the first three elements as indexed columns;
// scalar lists join with ", ".
func Flatten(row map[string]any) map[string]any {
	out := make(map[string]any)
	flattenInto(out, "", row)
	return out
}

func flattenInto(out map[string]any, prefix string, value any) {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			flattenInto(out, joinKey(prefix, key), nested)
		}
	case []any:
		if len(v) > 0 {
			if _, ok := v[0].(map[string]any); ok {
				for i, item := range v {
					if i >= 3 {
						break
					}
					flattenInto(out, fmt.Sprintf("%s_%d", prefix, i), item)
				}
				return
			}
		}
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = fmt.Sprint(item)
		}
		out[prefix] = strings.Join(parts, ", ")
	default:
		out[prefix] = v
	}
}

func joinKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "_" + key
}

// columnOrder returns the sorted union of keys across flattened rows, so CSV
// output is deterministic regardless of map iteration order.
func columnOrder(rows []map[string]any) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}
	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}
