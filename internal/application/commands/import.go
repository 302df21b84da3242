package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"layerfill/internal/application"
	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// ProgressFunc receives the percentage of images processed so far (1-100)
type ProgressFunc func(percent int)

var errNoFills = errors.New(domain.ReasonNoFills)

// Applier resolves images against a layer index and fills the matched layers
type Applier struct {
	store  ports.ImageStore
	logger *slog.Logger
}

// NewApplier creates an Applier that registers image bytes with store
func NewApplier(store ports.ImageStore, logger *slog.Logger) *Applier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Applier{store: store, logger: logger}
}

// Apply processes images strictly in order, one at a time. Each image is
// matched by normalized name to the first layer of its bucket; failures are
// recorded as skips and never stop the batch. onProgress may be nil.
func (a *Applier) Apply(ctx context.Context, images []domain.ImageRecord, index *domain.LayerIndex, onProgress ProgressFunc) *domain.ImportResult {
	total := len(images)
	result := domain.NewImportResult(total)

	for i, img := range images {
		filename := img.Filename()

		desc, ok := index.First(img.Name)
		if !ok {
			a.logger.Debug("no layer for image", "file", filename)
			result.RecordSkipped(filename, domain.ReasonNoMatch)
		} else if res, err := a.applyOne(ctx, img, desc); err != nil {
			reason := domain.ReasonApplyError + err.Error()
			if errors.Is(err, errNoFills) {
				reason = domain.ReasonNoFills
			}
			a.logger.Debug("image skipped", "file", filename, "layer", desc.Path, "reason", reason)
			result.RecordSkipped(filename, reason)
		} else {
			a.logger.Debug("image applied", "file", filename, "layer", desc.Path, "hash", res.Hash)
			result.RecordMapped(filename, desc.Path, res.Hash)
		}

		if onProgress != nil {
			onProgress(progressPercent(i+1, total))
		}
	}

	return result
}

// applyOne fills a single layer. Host panics are converted to errors so a
// misbehaving node cannot abort the batch.
func (a *Applier) applyOne(ctx context.Context, img domain.ImageRecord, desc domain.LayerDescriptor) (res *domain.ImageResource, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("%v", r)
		}
	}()

	layer, ok := desc.Layer.(domain.FillableNode)
	if !ok {
		return nil, errNoFills
	}
	if _, ok := layer.Fills(); !ok {
		return nil, errNoFills
	}

	res, err = a.store.CreateImage(ctx, img.Data)
	if err != nil {
		return nil, err
	}

	if err := layer.SetFills([]domain.Paint{domain.ImagePaint(res.Hash)}); err != nil {
		return nil, err
	}

	return res, nil
}

func progressPercent(done, total int) int {
	return int(math.Round(100 * float64(done) / float64(total)))
}

// ImportImagesResult contains the result of an import
type ImportImagesResult struct {
	Result    *domain.ImportResult
	Container domain.Node
	Message   string
}

// ImportImagesCommand fills layers of the selected container with images
// whose filenames match the layer names
type ImportImagesCommand struct {
	host       ports.SelectionHost
	store      ports.ImageStore
	session    *application.Session
	logger     *slog.Logger
	Images     []domain.ImageRecord
	OnProgress ProgressFunc
}

// NewImportImagesCommand creates a new ImportImagesCommand
func NewImportImagesCommand(
	host ports.SelectionHost,
	store ports.ImageStore,
	session *application.Session,
	logger *slog.Logger,
	images []domain.ImageRecord,
) *ImportImagesCommand {
	if logger == nil {
		logger = slog.Default()
	}
	return &ImportImagesCommand{
		host:    host,
		store:   store,
		session: session,
		logger:  logger,
		Images:  images,
	}
}

// Validate checks if the import can run
func (c *ImportImagesCommand) Validate() error {
	if len(c.Images) == 0 {
		return &application.ValidationError{
			Field:   "images",
			Message: "at least one image is required",
			Err:     application.ErrEmptyBatch,
		}
	}
	return nil
}

// Execute runs the import. Selection problems abort before any layer is
// touched; per-image problems are reported inside the result.
func (c *ImportImagesCommand) Execute(ctx context.Context) (*ImportImagesResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	container, err := application.SelectedContainer(c.host)
	if err != nil {
		return nil, err
	}

	index := domain.BuildLayerIndex(container)
	c.logger.Info("importing images",
		"container", container.Name(),
		"images", len(c.Images),
		"layer_names", index.Len(),
	)

	result := NewApplier(c.store, c.logger).Apply(ctx, c.Images, index, c.OnProgress)
	c.session.SetLastResult(result)

	c.logger.Info("import finished", "mapped", result.Mapped, "skipped", result.Skipped)

	return &ImportImagesResult{
		Result:    result,
		Container: container,
		Message:   fmt.Sprintf("Mapped %d of %d images", result.Mapped, result.TotalImages),
	}, nil
}
