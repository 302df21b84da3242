package document

import (
	"fmt"

	"layerfill/internal/domain"
)

// Node is a node of a design document. It implements domain.FillableNode;
// whether it actually carries a fill attribute depends on the file.
type Node struct {
	doc      *Document
	id       string
	kind     domain.NodeKind
	tag      string
	name     string
	locked   bool
	bounds   domain.Rect
	fills    []domain.Paint
	hasFills bool
	parent   *Node
	children []*Node
}

var _ domain.FillableNode = (*Node)(nil)

func (n *Node) ID() string            { return n.id }
func (n *Node) Kind() domain.NodeKind { return n.kind }
func (n *Node) Name() string          { return n.name }

// Children returns the child nodes in document order
func (n *Node) Children() []domain.Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]domain.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// Parent returns the containing node, or nil for the page
func (n *Node) Parent() *Node {
	return n.parent
}

// Bounds returns the node's absolute bounding box
func (n *Node) Bounds() domain.Rect {
	return n.bounds
}

// Fills returns a copy of the node's fills
func (n *Node) Fills() ([]domain.Paint, bool) {
	n.doc.mu.RLock()
	defer n.doc.mu.RUnlock()

	if !n.hasFills {
		return nil, false
	}
	return append([]domain.Paint{}, n.fills...), true
}

// SetFills replaces the node's fills
func (n *Node) SetFills(fills []domain.Paint) error {
	n.doc.mu.Lock()
	defer n.doc.mu.Unlock()

	if !n.hasFills {
		return fmt.Errorf("node %s has no fills", n.id)
	}
	if n.locked {
		return fmt.Errorf("node %s is locked", n.id)
	}

	n.fills = append([]domain.Paint{}, fills...)
	n.doc.dirty = true
	return nil
}
