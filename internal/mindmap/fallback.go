package mindmap

import (
	"context"
	"fmt"

	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

// ILayouter turns a note into renderable mind-map geometry.
type ILayouter interface {
	LayoutNote(ctx context.Context, note *model.Note) (*Layout, error)
}

type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// FallbackGraph synthesizes a two-level tree when the note carries no
// precomputed mind map: the title as root, one concept child per titled
// section. A note with no sections yields the root alone.
func FallbackGraph(note *model.Note) []model.MindMapNode {
	nodes := []model.MindMapNode{{
		ID:    "root",
		Label: note.Title,
		Type:  model.NodeRoot,
	}}
	for i, section := range note.Sections {
		if section.Title == "" {
			continue
		}
		nodes = append(nodes, model.MindMapNode{
			ID:       fmt.Sprintf("section-%d", i),
			Label:    section.Title,
			Type:     model.NodeConcept,
			ParentID: "root",
		})
	}
	return nodes
}

// LayoutNote lays out the note's stored mind map, or the fallback graph
// when none exists.
func (e *Engine) LayoutNote(ctx context.Context, note *model.Note) (*Layout, error) {
	if note == nil {
		return nil, fmt.Errorf("%w: nil note", appErr.ErrInvalid)
	}
	if note.MindMap != nil && len(note.MindMap.Nodes) > 0 {
		return Compute(note.MindMap.Nodes)
	}
	if note.Title == "" {
		return nil, fmt.Errorf("%w: note has neither mind map nor title", appErr.ErrInvalid)
	}
	return Compute(FallbackGraph(note))
}
