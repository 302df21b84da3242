package document

import "layerfill/internal/domain"

// On-disk layout of a design document

type fileDocument struct {
	Name      string       `json:"name"`
	Selection []string     `json:"selection"`
	Viewport  fileViewport `json:"viewport"`
	Children  []*fileNode  `json:"children"`
}

type fileViewport struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Zoom   float64 `json:"zoom"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// fileNode mirrors Node. A nil Fills means the node has no fill attribute,
// which differs from an empty list.
type fileNode struct {
	ID       string          `json:"id"`
	Type     string          `json:"type"`
	Name     string          `json:"name"`
	Locked   bool            `json:"locked,omitempty"`
	Fills    *[]domain.Paint `json:"fills,omitempty"`
	X        float64         `json:"x"`
	Y        float64         `json:"y"`
	Width    float64         `json:"width"`
	Height   float64         `json:"height"`
	Children []*fileNode     `json:"children,omitempty"`
}

// toFile snapshots the document. Callers hold d.mu.
func (d *Document) toFile() *fileDocument {
	f := &fileDocument{
		Name:      d.name,
		Selection: make([]string, 0, len(d.selection)),
		Viewport: fileViewport{
			X:      d.viewport.center.X,
			Y:      d.viewport.center.Y,
			Zoom:   d.viewport.zoom,
			Width:  d.viewport.width,
			Height: d.viewport.height,
		},
	}
	for _, n := range d.selection {
		f.Selection = append(f.Selection, n.id)
	}
	for _, c := range d.root.children {
		f.Children = append(f.Children, c.toFile())
	}
	return f
}

func (n *Node) toFile() *fileNode {
	f := &fileNode{
		ID:     n.id,
		Type:   n.tag,
		Name:   n.name,
		Locked: n.locked,
		X:      n.bounds.X,
		Y:      n.bounds.Y,
		Width:  n.bounds.Width,
		Height: n.bounds.Height,
	}
	if f.Type == "" {
		f.Type = n.kind.String()
	}
	if n.hasFills {
		fills := append([]domain.Paint{}, n.fills...)
		f.Fills = &fills
	}
	for _, c := range n.children {
		f.Children = append(f.Children, c.toFile())
	}
	return f
}
