package ports

import "layerfill/internal/domain"

// SelectionHost exposes the host's current selection
type SelectionHost interface {
	// Selection returns the currently selected nodes, in selection order
	Selection() []domain.Node

	// SetSelection replaces the current selection
	SetSelection(nodes []domain.Node) error
}

// Viewport controls what part of the canvas is visible.
// Calls may be slow or flaky; callers treat every call as best-effort.
type Viewport interface {
	// Center returns the canvas point at the middle of the viewport
	Center() (domain.Point, error)

	// ScrollAndZoomIntoView moves the viewport so all nodes are visible
	ScrollAndZoomIntoView(nodes []domain.Node) error

	// Bounds returns a node's absolute bounding box
	Bounds(node domain.Node) (domain.Rect, error)
}

// Host is the full design-tool surface the application drives
type Host interface {
	SelectionHost
	Viewport
}

// Document gives access to the whole node tree, not just the selection
type Document interface {
	Root() domain.Node
}
