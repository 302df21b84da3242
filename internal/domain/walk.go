package domain

// FindNode returns the first node under root, in document order, for which
// match returns true
func FindNode(root Node, match func(Node) bool) (Node, bool) {
	if root == nil {
		return nil, false
	}

	stack := []Node{root}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if match(node) {
			return node, true
		}

		children := node.Children()
		for i := len(children) - 1; i >= 0; i-- {
			if children[i] != nil {
				stack = append(stack, children[i])
			}
		}
	}

	return nil, false
}
