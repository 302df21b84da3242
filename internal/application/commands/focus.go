package commands

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"layerfill/internal/application"
	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// Scheduler runs f once after d has elapsed
type Scheduler interface {
	AfterFunc(d time.Duration, f func())
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

const (
	// DefaultFocusTolerance is how far, in canvas units, a layer's center may
	// sit from the viewport center and still count as focused
	DefaultFocusTolerance = 50.0
)

// DefaultFocusDelays are the checkpoints at which focus is verified
var DefaultFocusDelays = []time.Duration{
	100 * time.Millisecond,
	300 * time.Millisecond,
	600 * time.Millisecond,
}

// FocusOption configures a FocusLayerCommand
type FocusOption func(*FocusLayerCommand)

// WithScheduler replaces the timer used for delayed verification
func WithScheduler(s Scheduler) FocusOption {
	return func(c *FocusLayerCommand) {
		c.scheduler = s
	}
}

// WithDelays sets the verification checkpoints
func WithDelays(delays ...time.Duration) FocusOption {
	return func(c *FocusLayerCommand) {
		c.delays = delays
	}
}

// WithTolerance sets the allowed distance from the viewport center
func WithTolerance(tolerance float64) FocusOption {
	return func(c *FocusLayerCommand) {
		c.tolerance = tolerance
	}
}

// FocusLayerResult contains the focused layer
type FocusLayerResult struct {
	Layer   domain.LayerDescriptor
	Message string
}

// FocusLayerCommand resolves a layer by name, selects it and brings it into
// view. Host selection and viewport calls are best-effort: failures are
// logged and never change the command's outcome.
type FocusLayerCommand struct {
	host      ports.Host
	session   *application.Session
	logger    *slog.Logger
	scheduler Scheduler
	delays    []time.Duration
	tolerance float64
	LayerName string
}

// NewFocusLayerCommand creates a new FocusLayerCommand
func NewFocusLayerCommand(
	host ports.Host,
	session *application.Session,
	logger *slog.Logger,
	layerName string,
	opts ...FocusOption,
) *FocusLayerCommand {
	if logger == nil {
		logger = slog.Default()
	}
	c := &FocusLayerCommand{
		host:      host,
		session:   session,
		logger:    logger,
		scheduler: timerScheduler{},
		delays:    DefaultFocusDelays,
		tolerance: DefaultFocusTolerance,
		LayerName: layerName,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute resolves the layer, then selects and scrolls to it. Verification
// runs later on the scheduler; the returned result does not wait for it.
func (c *FocusLayerCommand) Execute(ctx context.Context) (*FocusLayerResult, error) {
	resolved, err := NewResolveLayerCommand(c.host, c.session, c.LayerName).Execute(ctx)
	if err != nil {
		return nil, err
	}

	layer := resolved.Layer.Layer
	container := resolved.Container

	c.focus(layer)

	for i, delay := range c.delays {
		attempt := i + 1
		c.scheduler.AfterFunc(delay, func() {
			c.verify(attempt, layer, container)
		})
	}

	return &FocusLayerResult{
		Layer:   resolved.Layer,
		Message: resolved.Message,
	}, nil
}

// focus selects layer and scrolls it into view
func (c *FocusLayerCommand) focus(layer domain.Node) {
	c.guard("set selection", func() error {
		return c.host.SetSelection([]domain.Node{layer})
	})
	c.guard("scroll into view", func() error {
		return c.host.ScrollAndZoomIntoView([]domain.Node{layer})
	})
}

// verify checks the layer is centered and, if not, scrolls to the container
// first and then back to the layer
func (c *FocusLayerCommand) verify(attempt int, layer, container domain.Node) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("focus verification panicked", "attempt", attempt, "panic", r)
		}
	}()

	centered, err := c.isCentered(layer)
	if err != nil {
		c.logger.Warn("focus verification failed", "attempt", attempt, "error", err)
	} else if centered {
		c.logger.Debug("layer in view", "attempt", attempt, "layer", layer.Name())
		return
	}

	c.logger.Debug("layer off center, retrying via container", "attempt", attempt, "layer", layer.Name())
	c.guard("scroll to container", func() error {
		return c.host.ScrollAndZoomIntoView([]domain.Node{container})
	})
	c.focus(layer)
}

func (c *FocusLayerCommand) isCentered(layer domain.Node) (bool, error) {
	var bounds domain.Rect
	err := read("layer bounds", func() (err error) {
		bounds, err = c.host.Bounds(layer)
		return err
	})
	if err != nil {
		return false, err
	}

	var center domain.Point
	err = read("viewport center", func() (err error) {
		center, err = c.host.Center()
		return err
	})
	if err != nil {
		return false, err
	}

	lc := bounds.Center()
	return math.Hypot(lc.X-center.X, lc.Y-center.Y) <= c.tolerance, nil
}

// guard runs one host call, logging and swallowing errors and panics
func (c *FocusLayerCommand) guard(op string, call func() error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("host call panicked", "op", op, "panic", r)
		}
	}()
	if err := call(); err != nil {
		c.logger.Warn("host call failed", "op", op, "error", err)
	}
}

// read runs one host query, reporting a panic as an error
func read(what string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading %s: panic: %v", what, r)
		}
	}()
	if err := call(); err != nil {
		return fmt.Errorf("reading %s: %w", what, err)
	}
	return nil
}
