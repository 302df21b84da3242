package commands

import (
	"context"

	"layerfill/internal/application"
	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// LayerBucket groups the fillable layers sharing one normalized name
type LayerBucket struct {
	Name   string
	Layers []domain.LayerDescriptor
}

// Duplicated reports whether more than one layer shares the name; only the
// first receives an image on import
func (b LayerBucket) Duplicated() bool {
	return len(b.Layers) > 1
}

// ListLayersResult contains the index of the selected container
type ListLayersResult struct {
	Container domain.Node
	Buckets   []LayerBucket
}

// ListLayersCommand lists the layers an import into the current selection
// could fill, in document order
type ListLayersCommand struct {
	host ports.SelectionHost
}

// NewListLayersCommand creates a new ListLayersCommand
func NewListLayersCommand(host ports.SelectionHost) *ListLayersCommand {
	return &ListLayersCommand{host: host}
}

// Execute runs the list layers command
func (c *ListLayersCommand) Execute(ctx context.Context) (*ListLayersResult, error) {
	container, err := application.SelectedContainer(c.host)
	if err != nil {
		return nil, err
	}

	index := domain.BuildLayerIndex(container)
	names := index.Names()
	buckets := make([]LayerBucket, 0, len(names))
	for _, name := range names {
		buckets = append(buckets, LayerBucket{Name: name, Layers: index.Lookup(name)})
	}

	return &ListLayersResult{
		Container: container,
		Buckets:   buckets,
	}, nil
}
