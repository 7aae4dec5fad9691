package export

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/markramm/offshoreleaks-data-packages/internal/service"
	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "CSV", "gexf", "GraphML"} {
		format, err := ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, Format(strings.ToLower(name)), format)
	}

	_, err := ParseFormat("xlsx")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.EXPORT_FORMAT_UNSUPPORTED, ""))
}

func sampleResult() service.SearchResult {
	return service.SearchResult{
		TotalCount:    2,
		ReturnedCount: 2,
		Limit:         20,
		Results: []map[string]any{
			{"node_id": "1", "name": "Alpha Holdings", "jurisdiction": "PAN"},
			{"node_id": "2", "name": "Beta Ltd", "jurisdiction": "VGB"},
		},
	}
}

func TestWriteResult_JSON(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, sampleResult(), FormatJSON, DefaultOptions())
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))

	assert.Equal(t, float64(2), payload["total_count"])
	assert.Len(t, payload["results"], 2)

	meta, ok := payload["export_metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), meta["total_records"])
}

func TestWriteResult_JSONWithoutMetadata(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, sampleResult(), FormatJSON, Options{})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.NotContains(t, payload, "export_metadata")
}

func TestWriteResult_MaxResults(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, sampleResult(), FormatJSON, Options{IncludeMetadata: true, MaxResults: 1})
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &payload))
	assert.Len(t, payload["results"], 1)

	meta := payload["export_metadata"].(map[string]any)
	assert.Equal(t, true, meta["limited_results"])
}

func TestWriteResult_CSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, sampleResult(), FormatCSV, DefaultOptions())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	// Columns are the sorted union of keys.
	assert.Equal(t, "jurisdiction,name,node_id", lines[0])
	assert.Equal(t, "PAN,Alpha Holdings,1", lines[1])
	assert.Equal(t, "VGB,Beta Ltd,2", lines[2])
}

func TestWriteResult_CSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, service.SearchResult{}, FormatCSV, DefaultOptions())
	require.NoError(t, err)
	assert.Empty(t, buf.String())
}

func TestWriteResult_RejectsNetworkFormats(t *testing.T) {
	var buf bytes.Buffer
	err := WriteResult(&buf, sampleResult(), FormatGEXF, DefaultOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, types.NewError(types.EXPORT_FORMAT_UNSUPPORTED, ""))
}

func TestFlatten(t *testing.T) {
	row := map[string]any{
		"node": map[string]any{
			"node_id": "1",
			"address": map[string]any{"country": "PAN"},
		},
		"relationship_types": []any{"OFFICER_OF", "SAME_AS"},
		"path_nodes": []any{
			map[string]any{"node_id": "a"},
			map[string]any{"node_id": "b"},
			map[string]any{"node_id": "c"},
			map[string]any{"node_id": "d"},
		},
		"distance": int64(2),
	}

	flat := Flatten(row)

	assert.Equal(t, "1", flat["node_node_id"])
	assert.Equal(t, "PAN", flat["node_address_country"])
	assert.Equal(t, "OFFICER_OF, SAME_AS", flat["relationship_types"])
	assert.Equal(t, int64(2), flat["distance"])

	// Lists of maps contribute only the first three elements.
	assert.Equal(t, "a", flat["path_nodes_0_node_id"])
	assert.Equal(t, "c", flat["path_nodes_2_node_id"])
	assert.NotContains(t, flat, "path_nodes_3_node_id")
}

func TestColumnOrder_UnionAcrossRows(t *testing.T) {
	columns := columnOrder([]map[string]any{
		{"b": 1, "a": 2},
		{"c": 3, "a": 4},
	})
	assert.Equal(t, []string{"a", "b", "c"}, columns)
}
