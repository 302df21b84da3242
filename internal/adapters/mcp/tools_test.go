package mcp

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"layerfill/internal/adapters/document"
	"layerfill/internal/application/commands"
	"layerfill/internal/domain"
)

const canvasJSON = `{
  "name": "Landing",
  "selection": ["1:1"],
  "children": [
    {
      "id": "1:1", "type": "FRAME", "name": "Card", "x": 0, "y": 0, "width": 400, "height": 300, "fills": [],
      "children": [
        {"id": "1:2", "type": "RECTANGLE", "name": "Hero", "x": 0, "y": 0, "width": 400, "height": 200, "fills": []},
        {"id": "1:3", "type": "ELLIPSE", "name": "Avatar", "x": 320, "y": 220, "width": 60, "height": 60, "fills": []}
      ]
    },
    {"id": "2:1", "type": "FRAME", "name": "Footer", "x": 0, "y": 1000, "width": 400, "height": 100, "fills": []}
  ]
}`

type memStore struct {
	created []string
}

func (s *memStore) CreateImage(_ context.Context, data []byte) (*domain.ImageResource, error) {
	if string(data) == "corrupt" {
		return nil, errors.New("unsupported image")
	}
	h := sha1.Sum(data)
	res := &domain.ImageResource{Hash: hex.EncodeToString(h[:]), Format: "png", Size: len(data)}
	s.created = append(s.created, res.Hash)
	return res, nil
}

func (s *memStore) ListImages(context.Context) ([]domain.ImageResource, error) {
	var out []domain.ImageResource
	for _, h := range s.created {
		out = append(out, domain.ImageResource{Hash: h, Format: "png"})
	}
	return out, nil
}

type memSource map[string][]byte

func (m memSource) Load(paths ...string) ([]domain.ImageRecord, error) {
	var out []domain.ImageRecord
	for _, p := range paths {
		data, ok := m[p]
		if !ok {
			return nil, errors.New("no such file: " + p)
		}
		out = append(out, domain.NewImageRecord(p, data))
	}
	return out, nil
}

func setupWorkspace(t *testing.T) (*Workspace, *document.Document, *memStore) {
	t.Helper()

	doc, err := document.Parse([]byte(canvasJSON))
	if err != nil {
		t.Fatalf("failed to parse canvas: %v", err)
	}
	if err := doc.SaveAs(filepath.Join(t.TempDir(), "design.json")); err != nil {
		t.Fatalf("failed to save canvas: %v", err)
	}

	store := &memStore{}
	source := memSource{
		"hero.png":   []byte("hero"),
		"avatar.png": []byte("avatar"),
		"ghost.png":  []byte("ghost"),
		"Avatar.jpg": []byte("corrupt"),
		"footer.png": []byte("footer"),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	w := NewWorkspace(doc, store, store, source, logger)
	w.FocusOptions = []commands.FocusOption{commands.WithDelays()}
	return w, doc, store
}

func call(t *testing.T, h server.ToolHandlerFunc, args map[string]any) (string, bool) {
	t.Helper()

	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestImportHandler(t *testing.T) {
	w, doc, store := setupWorkspace(t)

	text, isErr := call(t, importHandler(w), map[string]any{
		"paths": []any{"hero.png", "ghost.png", "Avatar.jpg"},
	})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}

	for _, want := range []string{
		"Mapped 1 of 3 images",
		"mapped  hero.png → Card / Hero",
		"skipped ghost.png: No matching layer found",
		"skipped Avatar.jpg: Error applying image: unsupported image",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("result missing %q:\n%s", want, text)
		}
	}

	if len(store.created) != 1 {
		t.Errorf("expected 1 stored image, got %d", len(store.created))
	}
	if doc.Dirty() {
		t.Error("expected document to be saved after import")
	}

	hero, _ := doc.NodeByID("1:2")
	fills, _ := hero.Fills()
	if len(fills) != 1 || fills[0].Type != domain.PaintTypeImage {
		t.Errorf("expected image fill on hero, got %+v", fills)
	}
}

func TestImportHandler_Errors(t *testing.T) {
	w, _, _ := setupWorkspace(t)

	tests := []struct {
		name    string
		args    map[string]any
		wantErr string
	}{
		{"missing paths", map[string]any{}, "paths is required"},
		{"unknown file", map[string]any{"paths": []any{"nope.png"}}, "no such file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isErr := call(t, importHandler(w), tt.args)
			if !isErr {
				t.Fatalf("expected tool error, got %q", text)
			}
			if !strings.Contains(text, tt.wantErr) {
				t.Errorf("expected %q in %q", tt.wantErr, text)
			}
		})
	}
}

func TestImportHandler_InvalidSelection(t *testing.T) {
	w, doc, _ := setupWorkspace(t)
	if err := doc.SetSelection(nil); err != nil {
		t.Fatalf("SetSelection failed: %v", err)
	}

	text, isErr := call(t, importHandler(w), map[string]any{"paths": []any{"hero.png"}})
	if !isErr || text != "Please select a frame or group" {
		t.Errorf("expected selection error, got %q (error=%v)", text, isErr)
	}
	if w.Session().HasImported() {
		t.Error("failed import must not record a result")
	}
}

func TestLastResultHandler(t *testing.T) {
	w, _, _ := setupWorkspace(t)

	text, _ := call(t, lastResultHandler(w), nil)
	if text != "No import data available" {
		t.Errorf("unexpected text before import %q", text)
	}

	call(t, importHandler(w), map[string]any{"paths": []any{"hero.png", "avatar.png"}})

	text, _ = call(t, lastResultHandler(w), nil)
	if !strings.Contains(text, "mapped 2 of 2 images") {
		t.Errorf("unexpected last result %q", text)
	}
}

func TestListLayersHandler(t *testing.T) {
	w, _, _ := setupWorkspace(t)

	text, isErr := call(t, listLayersHandler(w), nil)
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}

	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 layers, got %d:\n%s", len(lines), text)
	}
	if !strings.HasPrefix(lines[1], "hero  RECTANGLE  Card / Hero") {
		t.Errorf("unexpected line %q", lines[1])
	}
}

func TestFocusLayerHandler(t *testing.T) {
	w, doc, _ := setupWorkspace(t)

	text, isErr := call(t, focusLayerHandler(w), map[string]any{"name": "hero"})
	if !isErr || text != "No import data available" {
		t.Errorf("expected precondition error, got %q", text)
	}

	call(t, importHandler(w), map[string]any{"paths": []any{"hero.png"}})

	text, isErr = call(t, focusLayerHandler(w), map[string]any{"name": " HERO "})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if text != "Selected layer: Card / Hero" {
		t.Errorf("unexpected message %q", text)
	}

	sel := doc.Selection()
	if len(sel) != 1 || sel[0].ID() != "1:2" {
		t.Errorf("expected hero selected, got %v", sel)
	}
	center, _ := doc.Center()
	if center != (domain.Point{X: 200, Y: 100}) {
		t.Errorf("expected viewport on hero, got %+v", center)
	}

	text, isErr = call(t, focusLayerHandler(w), map[string]any{"name": "missing"})
	if !isErr || text != "Layer not found: missing" {
		t.Errorf("expected not found, got %q", text)
	}
}

func TestSelectNodeHandler(t *testing.T) {
	w, doc, _ := setupWorkspace(t)

	text, isErr := call(t, selectNodeHandler(w), map[string]any{"id": "2:1"})
	if isErr {
		t.Fatalf("unexpected tool error: %s", text)
	}
	if sel := doc.Selection(); len(sel) != 1 || sel[0].ID() != "2:1" {
		t.Errorf("expected footer selected, got %v", sel)
	}

	// Imports now target the footer
	text, _ = call(t, importHandler(w), map[string]any{"paths": []any{"footer.png", "hero.png"}})
	if !strings.Contains(text, "Mapped 1 of 2 images") {
		t.Errorf("unexpected import into footer %q", text)
	}

	_, isErr = call(t, selectNodeHandler(w), map[string]any{"id": "9:9"})
	if !isErr {
		t.Error("expected error for unknown node")
	}
}

func TestListImagesHandler(t *testing.T) {
	w, _, _ := setupWorkspace(t)

	text, _ := call(t, listImagesHandler(w), nil)
	if text != "No images stored." {
		t.Errorf("unexpected text %q", text)
	}

	call(t, importHandler(w), map[string]any{"paths": []any{"hero.png"}})

	text, _ = call(t, listImagesHandler(w), nil)
	if !strings.Contains(text, "png") {
		t.Errorf("expected stored image listed, got %q", text)
	}
}

type notifySession struct {
	notifications chan mcp.JSONRPCNotification
}

func (s *notifySession) SessionID() string { return "test-session" }
func (s *notifySession) Initialize()       {}
func (s *notifySession) Initialized() bool { return true }
func (s *notifySession) NotificationChannel() chan<- mcp.JSONRPCNotification {
	return s.notifications
}

func (s *notifySession) drain() []mcp.JSONRPCNotification {
	var out []mcp.JSONRPCNotification
	for {
		select {
		case n := <-s.notifications:
			out = append(out, n)
		default:
			return out
		}
	}
}

func TestImportHandler_ForwardsProgress(t *testing.T) {
	tests := []struct {
		name  string
		token mcp.ProgressToken
		want  []int
	}{
		{"with token", "import-1", []int{33, 67, 100}},
		{"without token", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _, _ := setupWorkspace(t)
			srv := server.NewMCPServer("layerfill-test", "0.0.0", server.WithToolCapabilities(true))
			session := &notifySession{notifications: make(chan mcp.JSONRPCNotification, 16)}
			ctx := srv.WithContext(context.Background(), session)

			req := mcp.CallToolRequest{}
			req.Params.Arguments = map[string]any{
				"paths": []any{"hero.png", "ghost.png", "avatar.png"},
			}
			if tt.token != nil {
				req.Params.Meta = &mcp.Meta{ProgressToken: tt.token}
			}

			res, err := importHandler(w)(ctx, req)
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if res.IsError {
				t.Fatalf("unexpected tool error: %+v", res.Content)
			}

			sent := session.drain()
			if len(sent) != len(tt.want) {
				t.Fatalf("expected %d notifications, got %d", len(tt.want), len(sent))
			}
			for i, n := range sent {
				if n.Method != "notifications/progress" {
					t.Errorf("unexpected method %q", n.Method)
				}
				fields := n.Params.AdditionalFields
				if fields["progressToken"] != tt.token {
					t.Errorf("expected token %v, got %v", tt.token, fields["progressToken"])
				}
				if fields["progress"] != tt.want[i] {
					t.Errorf("notification %d: expected progress %d, got %v", i, tt.want[i], fields["progress"])
				}
				if fields["total"] != 100 {
					t.Errorf("expected total 100, got %v", fields["total"])
				}
			}
		})
	}
}
