package mindmap

import (
	"fmt"

	"github.com/notewind/notewind/internal/model"
	appErr "github.com/notewind/notewind/internal/pkg/errors"
)

// GraphShapeError reports a graph that is not a single-rooted tree.
// Layout refuses such input instead of producing a degenerate picture.
type GraphShapeError struct {
	Reason string
	NodeID string
}

func (e *GraphShapeError) Error() string {
	if e.NodeID == "" {
		return fmt.Sprintf("malformed mind map graph: %s", e.Reason)
	}
	return fmt.Sprintf("malformed mind map graph: %s (node %s)", e.Reason, e.NodeID)
}

func (e *GraphShapeError) Unwrap() error {
	return appErr.ErrInvalid
}

func shapeErr(reason, nodeID string) error {
	return &GraphShapeError{Reason: reason, NodeID: nodeID}
}

// Validate checks that the node list forms a single-rooted tree: unique
// ids, exactly one node without a parent, every parent reference
// resolvable, and every node reachable from the root (no cycles).
func Validate(nodes []model.MindMapNode) error {
	if len(nodes) == 0 {
		return shapeErr("empty graph", "")
	}
	byID := make(map[string]model.MindMapNode, len(nodes))
	rootID := ""
	for _, n := range nodes {
		if n.ID == "" {
			return shapeErr("node without id", "")
		}
		if _, dup := byID[n.ID]; dup {
			return shapeErr("duplicate node id", n.ID)
		}
		byID[n.ID] = n
		if n.ParentID == "" {
			if rootID != "" {
				return shapeErr("more than one root", n.ID)
			}
			rootID = n.ID
		}
	}
	if rootID == "" {
		return shapeErr("no root", "")
	}
	children := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		if n.ParentID == "" {
			continue
		}
		if n.ParentID == n.ID {
			return shapeErr("node is its own parent", n.ID)
		}
		if _, ok := byID[n.ParentID]; !ok {
			return shapeErr("parent does not exist", n.ID)
		}
		children[n.ParentID] = append(children[n.ParentID], n.ID)
	}
	visited := make(map[string]bool, len(nodes))
	stack := []string{rootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		stack = append(stack, children[id]...)
	}
	if len(visited) != len(nodes) {
		for _, n := range nodes {
			if !visited[n.ID] {
				return shapeErr("unreachable from root", n.ID)
			}
		}
	}
	return nil
}
