package mindmap

import (
	"fmt"

	"github.com/notewind/notewind/internal/model"
)

// Spacing of the left-to-right layered layout. The rank gap is wide on
// purpose: node sizes are fixed per type, so long labels need the room.
const (
	rankGap = 300.0
	nodeGap = 50.0
)

type Size struct {
	W float64
	H float64
}

var typeSizes = map[model.NodeType]Size{
	model.NodeRoot:    {W: 180, H: 60},
	model.NodeConcept: {W: 160, H: 50},
	model.NodeFormula: {W: 160, H: 50},
	model.NodeExample: {W: 160, H: 50},
	model.NodeDetail:  {W: 120, H: 40},
}

var defaultSize = Size{W: 140, H: 45}

func sizeFor(t model.NodeType) Size {
	if s, ok := typeSizes[t]; ok {
		return s
	}
	return defaultSize
}

// NodeStyle is the visual treatment of one node: a shared base with
// per-type accents layered on top.
type NodeStyle struct {
	Background string
	Border     string
	Color      string
	FontFamily string
	FontSize   int
	Bold       bool
}

func styleFor(t model.NodeType) (string, NodeStyle) {
	base := NodeStyle{
		Background: "#f8fafc",
		Border:     "1px solid #cbd5e1",
		Color:      "#1e293b",
		FontFamily: "inherit",
		FontSize:   13,
	}
	switch t {
	case model.NodeRoot:
		base.Background = "#7c3aed"
		base.Border = "2px solid #5b21b6"
		base.Color = "#ffffff"
		base.FontSize = 15
		base.Bold = true
		return "mindmap-node mindmap-node--root", base
	case model.NodeConcept:
		base.Background = "#dbeafe"
		base.Border = "1px solid #93c5fd"
		return "mindmap-node mindmap-node--concept", base
	case model.NodeFormula:
		base.Background = "#dcfce7"
		base.Border = "1px solid #86efac"
		base.FontFamily = "monospace"
		return "mindmap-node mindmap-node--formula", base
	case model.NodeDetail:
		base.Background = "#f1f5f9"
		base.Color = "#64748b"
		base.FontSize = 11
		return "mindmap-node mindmap-node--detail", base
	case model.NodeExample:
		base.Background = "#ffedd5"
		base.Border = "1px solid #fdba74"
		return "mindmap-node mindmap-node--example", base
	}
	return "mindmap-node", base
}

// LaidOutNode is a renderable box. X/Y anchor the top-left corner; the
// layout computes centers internally and converts before returning.
type LaidOutNode struct {
	ID     string         `json:"id"`
	Label  string         `json:"label"`
	Type   model.NodeType `json:"type"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Width  float64        `json:"width"`
	Height float64        `json:"height"`
	Class  string         `json:"class"`
	Style  NodeStyle      `json:"style"`
}

type LaidOutEdge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

type Layout struct {
	Nodes []LaidOutNode `json:"nodes"`
	Edges []LaidOutEdge `json:"edges"`
}

// Compute validates the graph and lays it out left to right: rank equals
// tree depth, siblings stack vertically in input order, and each parent
// is centered on its children. Deterministic for a fixed input.
func Compute(nodes []model.MindMapNode) (*Layout, error) {
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	byID := make(map[string]model.MindMapNode, len(nodes))
	children := make(map[string][]string, len(nodes))
	rootID := ""
	for _, n := range nodes {
		byID[n.ID] = n
		if n.ParentID == "" {
			rootID = n.ID
			continue
		}
		children[n.ParentID] = append(children[n.ParentID], n.ID)
	}

	depths := map[string]int{}
	centersY := map[string]float64{}
	cursor := 0.0
	var place func(id string, depth int) float64
	place = func(id string, depth int) float64 {
		depths[id] = depth
		kids := children[id]
		if len(kids) == 0 {
			h := sizeFor(byID[id].Type).H
			cy := cursor + h/2
			cursor += h + nodeGap
			centersY[id] = cy
			return cy
		}
		first, last := 0.0, 0.0
		for i, kid := range kids {
			cy := place(kid, depth+1)
			if i == 0 {
				first = cy
			}
			last = cy
		}
		cy := (first + last) / 2
		centersY[id] = cy
		return cy
	}
	place(rootID, 0)

	out := &Layout{
		Nodes: make([]LaidOutNode, 0, len(nodes)),
		Edges: make([]LaidOutEdge, 0, len(nodes)-1),
	}
	for _, n := range nodes {
		size := sizeFor(n.Type)
		class, style := styleFor(n.Type)
		cx := float64(depths[n.ID]) * rankGap
		out.Nodes = append(out.Nodes, LaidOutNode{
			ID:     n.ID,
			Label:  n.Label,
			Type:   n.Type,
			X:      cx - size.W/2,
			Y:      centersY[n.ID] - size.H/2,
			Width:  size.W,
			Height: size.H,
			Class:  class,
			Style:  style,
		})
		if n.ParentID != "" {
			out.Edges = append(out.Edges, LaidOutEdge{
				ID:     fmt.Sprintf("e-%s-%s", n.ParentID, n.ID),
				Source: n.ParentID,
				Target: n.ID,
			})
		}
	}
	return out, nil
}
