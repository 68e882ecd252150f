package model

// NodeType classifies a mind-map node; it drives sizing and styling only.
type NodeType string

const (
	NodeRoot    NodeType = "root"
	NodeConcept NodeType = "concept"
	NodeFormula NodeType = "formula"
	NodeDetail  NodeType = "detail"
	NodeExample NodeType = "example"
)

// MindMapNode is one node of a note's concept tree. Exactly one node per
// graph has an empty ParentID (the root).
type MindMapNode struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Type     NodeType `json:"type"`
	ParentID string   `json:"parentId,omitempty"`
}

type MindMap struct {
	Root  string        `json:"root"`
	Nodes []MindMapNode `json:"nodes"`
}
