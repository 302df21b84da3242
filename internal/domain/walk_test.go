package domain

import "testing"

func TestFindNode(t *testing.T) {
	root, nodes := sampleTree()

	t.Run("by ID", func(t *testing.T) {
		got, ok := FindNode(root, func(n Node) bool { return n.ID() == "avatar" })
		if !ok || got != nodes["avatar"] {
			t.Errorf("expected avatar node, got %v", got)
		}
	})

	t.Run("first in document order wins", func(t *testing.T) {
		got, ok := FindNode(root, func(n Node) bool { return NormalizeName(n.Name()) == "hero" })
		if !ok || got != nodes["heroRect"] {
			t.Errorf("expected hero rectangle, got %v", got)
		}
	})

	t.Run("no match", func(t *testing.T) {
		if _, ok := FindNode(root, func(n Node) bool { return false }); ok {
			t.Error("expected no match")
		}
	})

	t.Run("nil root", func(t *testing.T) {
		if _, ok := FindNode(nil, func(n Node) bool { return true }); ok {
			t.Error("expected no match for nil root")
		}
	})
}
