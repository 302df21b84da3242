package commands

import (
	"context"
	"fmt"
	"strings"

	"layerfill/internal/application"
	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// SelectNodeResult contains the newly selected node
type SelectNodeResult struct {
	Node    domain.Node
	Message string
}

// SelectNodeCommand selects a node by ID, falling back to the first node
// whose name matches exactly (after trimming)
type SelectNodeCommand struct {
	doc    ports.Document
	host   ports.SelectionHost
	NodeID string
}

// NewSelectNodeCommand creates a new SelectNodeCommand
func NewSelectNodeCommand(doc ports.Document, host ports.SelectionHost, nodeID string) *SelectNodeCommand {
	return &SelectNodeCommand{
		doc:    doc,
		host:   host,
		NodeID: nodeID,
	}
}

// Validate checks if the select operation is valid
func (c *SelectNodeCommand) Validate() error {
	return application.ValidateRequired("nodeID", c.NodeID)
}

// Execute runs the select command
func (c *SelectNodeCommand) Execute(ctx context.Context) (*SelectNodeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	target := strings.TrimSpace(c.NodeID)
	root := c.doc.Root()

	node, ok := domain.FindNode(root, func(n domain.Node) bool { return n.ID() == target })
	if !ok {
		node, ok = domain.FindNode(root, func(n domain.Node) bool {
			return strings.TrimSpace(n.Name()) == target
		})
	}
	if !ok {
		return nil, fmt.Errorf("node %s: %w", target, application.ErrNotFound)
	}

	if err := c.host.SetSelection([]domain.Node{node}); err != nil {
		return nil, fmt.Errorf("failed to set selection: %w", err)
	}

	return &SelectNodeResult{
		Node:    node,
		Message: fmt.Sprintf("Selected %s %s", node.Kind(), node.Name()),
	}, nil
}
