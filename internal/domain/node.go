package domain

import "strings"

// NodeKind represents the type tag of a node in a design document
type NodeKind int

const (
	NodeKindUnknown NodeKind = iota
	NodeKindDocument
	NodeKindPage
	NodeKindSection
	NodeKindFrame
	NodeKindGroup
	NodeKindComponentSet
	NodeKindComponent
	NodeKindInstance
	NodeKindRectangle
	NodeKindEllipse
	NodeKindPolygon
	NodeKindStar
	NodeKindVector
	NodeKindLine
	NodeKindText
	NodeKindBooleanOperation
	NodeKindSlice
)

var nodeKindNames = map[NodeKind]string{
	NodeKindDocument:         "DOCUMENT",
	NodeKindPage:             "PAGE",
	NodeKindSection:          "SECTION",
	NodeKindFrame:            "FRAME",
	NodeKindGroup:            "GROUP",
	NodeKindComponentSet:     "COMPONENT_SET",
	NodeKindComponent:        "COMPONENT",
	NodeKindInstance:         "INSTANCE",
	NodeKindRectangle:        "RECTANGLE",
	NodeKindEllipse:          "ELLIPSE",
	NodeKindPolygon:          "POLYGON",
	NodeKindStar:             "STAR",
	NodeKindVector:           "VECTOR",
	NodeKindLine:             "LINE",
	NodeKindText:             "TEXT",
	NodeKindBooleanOperation: "BOOLEAN_OPERATION",
	NodeKindSlice:            "SLICE",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// ParseNodeKind converts a type tag (e.g. "RECTANGLE", "frame") to a NodeKind
func ParseNodeKind(tag string) NodeKind {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for kind, name := range nodeKindNames {
		if name == tag {
			return kind
		}
	}
	return NodeKindUnknown
}

// IsContainer reports whether a node of this kind can be selected as the
// target container for an import
func (k NodeKind) IsContainer() bool {
	switch k {
	case NodeKindFrame, NodeKindGroup, NodeKindComponent, NodeKindInstance, NodeKindSection:
		return true
	default:
		return false
	}
}

// Node is a read-only view of a host-owned node. Implementations are handles
// into host state; the domain never copies them.
type Node interface {
	ID() string
	Kind() NodeKind
	Name() string
	Children() []Node
}

// FillableNode is a node exposing a mutable fill list.
type FillableNode interface {
	Node
	// Fills returns the current fills. ok is false when the node has no
	// fill attribute at all.
	Fills() (fills []Paint, ok bool)
	SetFills(fills []Paint) error
}

// Point is a position in canvas coordinates
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned bounding box in canvas coordinates
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}
