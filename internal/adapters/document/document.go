package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// RootID is the ID of the synthetic page node wrapping the document's
// top-level nodes
const RootID = "0:0"

// ErrForeignNode is returned when a node from another document is passed in
var ErrForeignNode = errors.New("node does not belong to this document")

// Document is a design document stored as JSON. It plays the host: it owns
// the node tree, the selection and the viewport.
type Document struct {
	mu        sync.RWMutex
	path      string
	name      string
	root      *Node
	byID      map[string]*Node
	selection []*Node
	viewport  viewport
	dirty     bool
}

// Ensure Document implements the host ports
var (
	_ ports.Host     = (*Document)(nil)
	_ ports.Document = (*Document)(nil)
)

type viewport struct {
	center domain.Point
	zoom   float64
	width  float64
	height float64
}

// Default viewport size in screen pixels when the file does not set one
const (
	defaultViewportWidth  = 1440
	defaultViewportHeight = 900
)

// Open loads a document from path
func Open(path string) (*Document, error) {
	path = expandHome(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	doc.path = path
	return doc, nil
}

// Parse builds a document from JSON
func Parse(data []byte) (*Document, error) {
	var f fileDocument
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}

	doc := &Document{
		name: f.Name,
		byID: make(map[string]*Node),
	}
	doc.root = &Node{doc: doc, id: RootID, kind: domain.NodeKindPage, name: f.Name}
	doc.byID[RootID] = doc.root

	for _, child := range f.Children {
		node, err := doc.build(child, doc.root)
		if err != nil {
			return nil, err
		}
		doc.root.children = append(doc.root.children, node)
	}
	doc.root.bounds = unionBounds(doc.root.children)

	for _, id := range f.Selection {
		node, ok := doc.byID[id]
		if !ok {
			return nil, fmt.Errorf("selection references unknown node %q", id)
		}
		doc.selection = append(doc.selection, node)
	}

	doc.viewport = viewport{
		center: domain.Point{X: f.Viewport.X, Y: f.Viewport.Y},
		zoom:   f.Viewport.Zoom,
		width:  f.Viewport.Width,
		height: f.Viewport.Height,
	}
	if doc.viewport.zoom <= 0 {
		doc.viewport.zoom = 1
	}
	if doc.viewport.width <= 0 {
		doc.viewport.width = defaultViewportWidth
	}
	if doc.viewport.height <= 0 {
		doc.viewport.height = defaultViewportHeight
	}

	return doc, nil
}

func (d *Document) build(f *fileNode, parent *Node) (*Node, error) {
	if f == nil {
		return nil, errors.New("null node")
	}
	if f.ID == "" {
		return nil, fmt.Errorf("node %q has no id", f.Name)
	}
	if _, dup := d.byID[f.ID]; dup {
		return nil, fmt.Errorf("duplicate node id %q", f.ID)
	}

	node := &Node{
		doc:    d,
		id:     f.ID,
		kind:   domain.ParseNodeKind(f.Type),
		tag:    f.Type,
		name:   f.Name,
		locked: f.Locked,
		bounds: domain.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		parent: parent,
	}
	if f.Fills != nil {
		node.hasFills = true
		node.fills = *f.Fills
	}
	d.byID[f.ID] = node

	for _, child := range f.Children {
		c, err := d.build(child, node)
		if err != nil {
			return nil, err
		}
		node.children = append(node.children, c)
	}

	return node, nil
}

// Name returns the document's name
func (d *Document) Name() string {
	return d.name
}

// Path returns the file the document was loaded from
func (d *Document) Path() string {
	return d.path
}

// Dirty reports whether there are unsaved changes
func (d *Document) Dirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// Root returns the page node holding all top-level nodes
func (d *Document) Root() domain.Node {
	return d.root
}

// NodeByID looks up a node
func (d *Document) NodeByID(id string) (*Node, bool) {
	node, ok := d.byID[id]
	return node, ok
}

// Selection returns the currently selected nodes
func (d *Document) Selection() []domain.Node {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]domain.Node, len(d.selection))
	for i, n := range d.selection {
		out[i] = n
	}
	return out
}

// SetSelection replaces the selection. Every node must belong to d.
func (d *Document) SetSelection(nodes []domain.Node) error {
	own, err := d.ownNodes(nodes)
	if err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.selection = own
	d.dirty = true
	return nil
}

// Center returns the canvas point at the middle of the viewport
func (d *Document) Center() (domain.Point, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.viewport.center, nil
}

// Zoom returns the viewport's zoom factor
func (d *Document) Zoom() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.viewport.zoom
}

// ScrollAndZoomIntoView centers the viewport on the union of the nodes'
// bounds and zooms so they fit, capped at 100%
func (d *Document) ScrollAndZoomIntoView(nodes []domain.Node) error {
	own, err := d.ownNodes(nodes)
	if err != nil {
		return err
	}
	if len(own) == 0 {
		return errors.New("no nodes to scroll into view")
	}

	box := unionBounds(own)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.viewport.center = box.Center()
	zoom := 1.0
	if box.Width > 0 && box.Height > 0 {
		zoom = math.Min(d.viewport.width/box.Width, d.viewport.height/box.Height)
		zoom = math.Min(zoom, 1)
	}
	d.viewport.zoom = zoom
	d.dirty = true
	return nil
}

// Bounds returns a node's absolute bounding box
func (d *Document) Bounds(node domain.Node) (domain.Rect, error) {
	own, err := d.ownNodes([]domain.Node{node})
	if err != nil {
		return domain.Rect{}, err
	}
	return own[0].bounds, nil
}

// ownNodes maps domain nodes back to this document's nodes
func (d *Document) ownNodes(nodes []domain.Node) ([]*Node, error) {
	own := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		node, ok := n.(*Node)
		if !ok || node.doc != d {
			return nil, ErrForeignNode
		}
		own = append(own, node)
	}
	return own, nil
}

// Save writes the document back to the file it was opened from
func (d *Document) Save() error {
	if d.path == "" {
		return errors.New("document has no path")
	}
	return d.SaveAs(d.path)
}

// SaveAs writes the document to path. The file is replaced atomically.
func (d *Document) SaveAs(path string) error {
	path = expandHome(path)

	d.mu.Lock()
	defer d.mu.Unlock()

	data, err := json.MarshalIndent(d.toFile(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".layerfill-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to replace document: %w", err)
	}

	d.path = path
	d.dirty = false
	return nil
}

func unionBounds(nodes []*Node) domain.Rect {
	if len(nodes) == 0 {
		return domain.Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		b := n.bounds
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.X+b.Width)
		maxY = math.Max(maxY, b.Y+b.Height)
	}
	return domain.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[1:])
	}
	return path
}
