package commands

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"layerfill/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeNode is an in-memory layer
type fakeNode struct {
	id       string
	kind     domain.NodeKind
	name     string
	children []domain.Node
	fills    []domain.Paint
	hasFills bool
	setErr   error
	setPanic string
	setCalls int
	bounds   domain.Rect
}

func (n *fakeNode) ID() string              { return n.id }
func (n *fakeNode) Kind() domain.NodeKind   { return n.kind }
func (n *fakeNode) Name() string            { return n.name }
func (n *fakeNode) Children() []domain.Node { return n.children }

func (n *fakeNode) Fills() ([]domain.Paint, bool) { return n.fills, n.hasFills }

func (n *fakeNode) SetFills(fills []domain.Paint) error {
	n.setCalls++
	if n.setPanic != "" {
		panic(n.setPanic)
	}
	if n.setErr != nil {
		return n.setErr
	}
	n.fills = fills
	return nil
}

func layer(id string, kind domain.NodeKind, name string, children ...domain.Node) *fakeNode {
	return &fakeNode{id: id, kind: kind, name: name, children: children, hasFills: true}
}

// fakeStore hashes bytes like a content-addressed store and fails on request
type fakeStore struct {
	calls   [][]byte
	failFor map[string]error
}

func (s *fakeStore) CreateImage(ctx context.Context, data []byte) (*domain.ImageResource, error) {
	s.calls = append(s.calls, data)
	if err, ok := s.failFor[string(data)]; ok {
		return nil, err
	}
	sum := sha1.Sum(data)
	return &domain.ImageResource{Hash: hex.EncodeToString(sum[:]), Size: len(data)}, nil
}

func hashOf(data string) string {
	sum := sha1.Sum([]byte(data))
	return hex.EncodeToString(sum[:])
}

// fakeHost records selection and viewport calls
type fakeHost struct {
	selection      []domain.Node
	selectionReads int
	calls          []string
	center         domain.Point
	centerErr      error
	scrollErr      error
	selectErr      error
	boundsPanic    bool
	// onScroll moves the viewport center when the host honours a scroll
	onScroll func(nodes []domain.Node)
}

func (h *fakeHost) Selection() []domain.Node {
	h.selectionReads++
	return h.selection
}

func (h *fakeHost) SetSelection(nodes []domain.Node) error {
	h.calls = append(h.calls, "select:"+names(nodes))
	if h.selectErr != nil {
		return h.selectErr
	}
	h.selection = nodes
	return nil
}

func (h *fakeHost) Center() (domain.Point, error) {
	h.calls = append(h.calls, "center")
	return h.center, h.centerErr
}

func (h *fakeHost) ScrollAndZoomIntoView(nodes []domain.Node) error {
	h.calls = append(h.calls, "scroll:"+names(nodes))
	if h.scrollErr != nil {
		return h.scrollErr
	}
	if h.onScroll != nil {
		h.onScroll(nodes)
	}
	return nil
}

func (h *fakeHost) Bounds(node domain.Node) (domain.Rect, error) {
	h.calls = append(h.calls, "bounds:"+node.Name())
	if h.boundsPanic {
		panic("bounds unavailable")
	}
	if n, ok := node.(*fakeNode); ok {
		return n.bounds, nil
	}
	return domain.Rect{}, errors.New("unknown node")
}

func names(nodes []domain.Node) string {
	s := ""
	for i, n := range nodes {
		if i > 0 {
			s += ","
		}
		s += n.Name()
	}
	return s
}

// queueScheduler collects tasks so tests decide when they run
type queueScheduler struct {
	delays []time.Duration
	tasks  []func()
}

func (s *queueScheduler) AfterFunc(d time.Duration, f func()) {
	s.delays = append(s.delays, d)
	s.tasks = append(s.tasks, f)
}

func (s *queueScheduler) runAll() {
	for _, task := range s.tasks {
		task()
	}
}

func images(names ...string) []domain.ImageRecord {
	recs := make([]domain.ImageRecord, 0, len(names))
	for _, n := range names {
		recs = append(recs, domain.NewImageRecord(n, []byte(fmt.Sprintf("bytes-of-%s", n))))
	}
	return recs
}
