package domain

// fillableKinds lists the node kinds that can hold an image fill.
// Components and instances are additionally checked for a fill attribute.
var fillableKinds = map[NodeKind]bool{
	NodeKindRectangle: true,
	NodeKindFrame:     true,
	NodeKindEllipse:   true,
	NodeKindPolygon:   true,
	NodeKindStar:      true,
	NodeKindVector:    true,
	NodeKindComponent: true,
	NodeKindInstance:  true,
}

// CanHoldImageFill reports whether node can legally receive an image fill
func CanHoldImageFill(node Node) bool {
	if node == nil {
		return false
	}

	kind := node.Kind()
	if !fillableKinds[kind] {
		return false
	}

	switch kind {
	case NodeKindComponent, NodeKindInstance:
		return hasFillAttribute(node)
	default:
		return true
	}
}

// hasFillAttribute reports whether node exposes a fill list
func hasFillAttribute(node Node) bool {
	fillable, ok := node.(FillableNode)
	if !ok {
		return false
	}
	_, ok = fillable.Fills()
	return ok
}
