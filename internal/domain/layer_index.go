package domain

import "strings"

// PathSeparator joins node names in a LayerDescriptor's display path
const PathSeparator = " / "

// LayerDescriptor references a fillable layer found while indexing.
// Layer is the host's node handle, not a copy.
type LayerDescriptor struct {
	Layer   Node
	Path    string // diagnostics only, never used for matching
	Kind    NodeKind
	CanFill bool
}

// LayerIndex maps normalized layer names to the fillable layers carrying that
// name, in traversal order. It is read-only once built.
type LayerIndex struct {
	buckets map[string][]LayerDescriptor
	names   []string
}

// Lookup returns a copy of the bucket for a name (normalized before lookup)
func (idx *LayerIndex) Lookup(name string) []LayerDescriptor {
	if idx == nil {
		return nil
	}
	bucket := idx.buckets[NormalizeName(name)]
	if bucket == nil {
		return nil
	}
	return append([]LayerDescriptor(nil), bucket...)
}

// First returns the first layer indexed under name, if any
func (idx *LayerIndex) First(name string) (LayerDescriptor, bool) {
	if idx == nil {
		return LayerDescriptor{}, false
	}
	bucket := idx.buckets[NormalizeName(name)]
	if len(bucket) == 0 {
		return LayerDescriptor{}, false
	}
	return bucket[0], true
}

// Names returns the bucket keys in the order they were first encountered
func (idx *LayerIndex) Names() []string {
	if idx == nil {
		return nil
	}
	return append([]string(nil), idx.names...)
}

// Len returns the number of distinct normalized names
func (idx *LayerIndex) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.names)
}

func (idx *LayerIndex) add(key string, desc LayerDescriptor) {
	if _, ok := idx.buckets[key]; !ok {
		idx.names = append(idx.names, key)
	}
	idx.buckets[key] = append(idx.buckets[key], desc)
}

// pathSegment is one link of a node's ancestor chain. Frames share their
// parent's chain, so pushing a child costs O(1) regardless of depth.
type pathSegment struct {
	name   string
	parent *pathSegment
	depth  int
}

func (s *pathSegment) child(name string) *pathSegment {
	return &pathSegment{name: name, parent: s, depth: s.depth + 1}
}

// String joins the chain from the root down to this segment
func (s *pathSegment) String() string {
	names := make([]string, s.depth+1)
	for seg := s; seg != nil; seg = seg.parent {
		names[seg.depth] = seg.name
	}
	return strings.Join(names, PathSeparator)
}

// traversalFrame is a pending node on the indexing stack
type traversalFrame struct {
	node  Node
	path  *pathSegment
	depth int
}

// BuildLayerIndex walks the subtree rooted at root in document order
// (pre-order, depth-first) and indexes every named node that can hold an
// image fill. The walk uses an explicit stack so nesting depth is bounded
// only by memory. Non-fillable nodes are still descended into.
func BuildLayerIndex(root Node) *LayerIndex {
	idx := &LayerIndex{buckets: make(map[string][]LayerDescriptor)}
	if root == nil {
		return idx
	}

	stack := []traversalFrame{{node: root, path: &pathSegment{name: segmentName(root)}}}

	for len(stack) > 0 {
		frame := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		node := frame.node
		if key := NormalizeName(node.Name()); key != "" && CanHoldImageFill(node) {
			idx.add(key, LayerDescriptor{
				Layer:   node,
				Path:    frame.path.String(),
				Kind:    node.Kind(),
				CanFill: true,
			})
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			child := children[i]
			if child == nil {
				continue
			}
			stack = append(stack, traversalFrame{
				node:  child,
				path:  frame.path.child(segmentName(child)),
				depth: frame.depth + 1,
			})
		}
	}

	return idx
}

// segmentName is the display name of a node inside a path
func segmentName(node Node) string {
	if name := strings.TrimSpace(node.Name()); name != "" {
		return name
	}
	return node.Kind().String()
}
