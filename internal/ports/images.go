package ports

import (
	"context"

	"layerfill/internal/domain"
)

// ImageStore registers raw image bytes with the host and returns a resource
// that fills can reference by hash
type ImageStore interface {
	// CreateImage validates data and stores it. It fails for bytes the host
	// cannot decode.
	CreateImage(ctx context.Context, data []byte) (*domain.ImageResource, error)
}

// ImageCatalog lists resources previously created in a store
type ImageCatalog interface {
	ListImages(ctx context.Context) ([]domain.ImageResource, error)
}

// ImageSource reads image files to import
type ImageSource interface {
	Load(paths ...string) ([]domain.ImageRecord, error)
}
