package commands

import (
	"context"
	"strings"

	"layerfill/internal/application"
	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// ResolveLayerResult contains the layer a name resolved to
type ResolveLayerResult struct {
	Layer     domain.LayerDescriptor
	Container domain.Node
	Message   string
}

// ResolveLayerCommand finds the layer an image named LayerName would be
// applied to, re-indexing the currently selected container
type ResolveLayerCommand struct {
	host      ports.SelectionHost
	session   *application.Session
	LayerName string
}

// NewResolveLayerCommand creates a new ResolveLayerCommand
func NewResolveLayerCommand(host ports.SelectionHost, session *application.Session, layerName string) *ResolveLayerCommand {
	return &ResolveLayerCommand{
		host:      host,
		session:   session,
		LayerName: layerName,
	}
}

// Validate checks that an import has happened and a name was given
func (c *ResolveLayerCommand) Validate() error {
	if !c.session.HasImported() {
		return application.ErrNoImportData
	}
	return application.ValidateRequired("layerName", c.LayerName)
}

// Execute resolves the layer. The index is rebuilt from the current selection
// rather than reused from the import, since either may have changed.
func (c *ResolveLayerCommand) Execute(ctx context.Context) (*ResolveLayerResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	container, err := application.SelectedContainer(c.host)
	if err != nil {
		return nil, err
	}

	index := domain.BuildLayerIndex(container)
	desc, ok := index.First(c.LayerName)
	if !ok {
		return nil, &application.LayerNotFoundError{Name: strings.TrimSpace(c.LayerName)}
	}

	return &ResolveLayerResult{
		Layer:     desc,
		Container: container,
		Message:   "Selected layer: " + desc.Path,
	}, nil
}
