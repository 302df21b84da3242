package mcp

import (
	"log/slog"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"layerfill/internal/application"
	"layerfill/internal/application/commands"
	"layerfill/internal/ports"
)

// Canvas is the open design document the tools act on
type Canvas interface {
	ports.Host
	ports.Document
	Save() error
}

// Workspace bundles what the tools share for the lifetime of the server.
// Mutating tools run one at a time.
type Workspace struct {
	mu      sync.Mutex
	canvas  Canvas
	store   ports.ImageStore
	catalog ports.ImageCatalog
	images  ports.ImageSource
	session *application.Session
	logger  *slog.Logger

	// FocusOptions are passed to every focus_layer call
	FocusOptions []commands.FocusOption
}

// NewWorkspace creates a workspace with a fresh session
func NewWorkspace(
	canvas Canvas,
	store ports.ImageStore,
	catalog ports.ImageCatalog,
	images ports.ImageSource,
	logger *slog.Logger,
) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{
		canvas:  canvas,
		store:   store,
		catalog: catalog,
		images:  images,
		session: application.NewSession(),
		logger:  logger,
	}
}

// Session returns the workspace's session
func (w *Workspace) Session() *application.Session {
	return w.session
}

// save persists the canvas after a mutating tool
func (w *Workspace) save() error {
	if err := w.canvas.Save(); err != nil {
		w.logger.Error("failed to save document", "error", err)
		return err
	}
	return nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}
