package export

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"time"

	"github.com/markramm/offshoreleaks-data-packages/internal/types"
)

// NetworkNode is one node in an exported network.
type NetworkNode struct {
	ID   string `json:"node_id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// NetworkEdge is one edge in an exported network.
type NetworkEdge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type,omitempty"`
}

// Network is node/edge data shaped for visualization tools.
type Network struct {
	Nodes []NetworkNode `json:"nodes"`
	Edges []NetworkEdge `json:"edges"`
}

// NetworkFromConnections builds a Network from connection-exploration rows.
// Each row contributes its connected node and an edge from the start node,
// labeled with the first relationship on the path.
func NetworkFromConnections(startNodeID string, rows []map[string]any) Network {
	network := Network{
		Nodes: []NetworkNode{{ID: startNodeID, Name: startNodeID}},
	}
	seen := map[string]struct{}{startNodeID: {}}

	for _, row := range rows {
		node, ok := row["node"].(map[string]any)
		if !ok {
			continue
		}
		id := stringField(node, "node_id")
		if id == "" {
			continue
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			network.Nodes = append(network.Nodes, NetworkNode{
				ID:   id,
				Name: stringField(node, "name"),
				Type: firstLabel(node),
			})
		}
		network.Edges = append(network.Edges, NetworkEdge{
			Source: startNodeID,
			Target: id,
			Type:   stringField(row, "first_relationship"),
		})
	}
	return network
}

func stringField(m map[string]any, key string) string {
	if value, ok := m[key].(string); ok {
		return value
	}
	return ""
}

func firstLabel(node map[string]any) string {
	labels, ok := node["_labels"].([]any)
	if !ok || len(labels) == 0 {
		return ""
	}
	if label, ok := labels[0].(string); ok {
		return label
	}
	return ""
}

// WriteNetwork writes a network to w in JSON, GEXF, or GraphML form.
func WriteNetwork(w io.Writer, network Network, format Format) error {
	switch format {
	case FormatJSON:
		return writeNetworkJSON(w, network)
	case FormatGEXF:
		return writeGEXF(w, network)
	case FormatGraphML:
		return writeGraphML(w, network)
	default:
		return types.NewError(types.EXPORT_FORMAT_UNSUPPORTED,
			fmt.Sprintf("format %q does not apply to network data", format))
	}
}

func writeNetworkJSON(w io.Writer, network Network) error {
	payload := map[string]any{
		"nodes": network.Nodes,
		"edges": network.Edges,
		"metadata": map[string]any{
			"export_date":    time.Now().UTC().Format(time.RFC3339),
			"node_count":     len(network.Nodes),
			"edge_count":     len(network.Edges),
			"format_version": "1.0",
		},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return types.WrapError(types.EXPORT_FAILED, "network json export failed", err)
	}
	return nil
}

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	LastModified string `xml:"lastmodifieddate,attr"`
	Creator      string `xml:"creator"`
	Description  string `xml:"description"`
}

type gexfGraph struct {
	Mode        string     `xml:"mode,attr"`
	DefaultEdge string     `xml:"defaultedgetype,attr"`
	Nodes       []gexfNode `xml:"nodes>node"`
	Edges       []gexfEdge `xml:"edges>edge"`
}

type gexfNode struct {
	ID    string `xml:"id,attr"`
	Label string `xml:"label,attr"`
}

type gexfEdge struct {
	ID     int    `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
	Label  string `xml:"label,attr"`
}

func writeGEXF(w io.Writer, network Network) error {
	doc := gexfDoc{
		XMLNS:   "http://www.gexf.net/1.2draft",
		Version: "1.2",
		Meta: gexfMeta{
			LastModified: time.Now().UTC().Format(time.RFC3339),
			Creator:      "offshoreleaks",
			Description:  "Network export from offshore leaks database",
		},
		Graph: gexfGraph{Mode: "static", DefaultEdge: "undirected"},
	}
	for _, node := range network.Nodes {
		label := node.Name
		if label == "" {
			label = node.ID
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, gexfNode{ID: node.ID, Label: label})
	}
	for i, edge := range network.Edges {
		label := edge.Type
		if label == "" {
			label = "connected_to"
		}
		doc.Graph.Edges = append(doc.Graph.Edges, gexfEdge{
			ID:     i,
			Source: edge.Source,
			Target: edge.Target,
			Label:  label,
		})
	}
	return writeXML(w, doc)
}

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	XMLNS   string       `xml:"xmlns,attr"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
	AttrType string `xml:"attr.type,attr"`
}

type graphmlGraph struct {
	ID          string        `xml:"id,attr"`
	EdgeDefault string        `xml:"edgedefault,attr"`
	Nodes       []graphmlNode `xml:"node"`
	Edges       []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

type graphmlEdge struct {
	ID     string        `xml:"id,attr"`
	Source string        `xml:"source,attr"`
	Target string        `xml:"target,attr"`
	Data   []graphmlData `xml:"data"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

func writeGraphML(w io.Writer, network Network) error {
	doc := graphmlDoc{
		XMLNS: "http://graphml.graphdrawing.org/xmlns",
		Keys: []graphmlKey{
			{ID: "name", For: "node", AttrName: "name", AttrType: "string"},
			{ID: "type", For: "node", AttrName: "type", AttrType: "string"},
			{ID: "relationship", For: "edge", AttrName: "relationship", AttrType: "string"},
		},
		Graph: graphmlGraph{ID: "G", EdgeDefault: "undirected"},
	}
	for _, node := range network.Nodes {
		nodeType := node.Type
		if nodeType == "" {
			nodeType = "Entity"
		}
		doc.Graph.Nodes = append(doc.Graph.Nodes, graphmlNode{
			ID: node.ID,
			Data: []graphmlData{
				{Key: "name", Value: node.Name},
				{Key: "type", Value: nodeType},
			},
		})
	}
	for i, edge := range network.Edges {
		relationship := edge.Type
		if relationship == "" {
			relationship = "connected_to"
		}
		doc.Graph.Edges = append(doc.Graph.Edges, graphmlEdge{
			ID:     fmt.Sprintf("e%d", i),
			Source: edge.Source,
			Target: edge.Target,
			Data:   []graphmlData{{Key: "relationship", Value: relationship}},
		})
	}
	return writeXML(w, doc)
}

func writeXML(w io.Writer, doc any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return types.WrapError(types.EXPORT_FAILED, "network xml export failed", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return types.WrapError(types.EXPORT_FAILED, "network xml export failed", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
