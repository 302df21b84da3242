package domain

// PaintType identifies the kind of a fill paint
type PaintType string

const (
	PaintTypeSolid PaintType = "SOLID"
	PaintTypeImage PaintType = "IMAGE"
)

// ScaleMode controls how an image paint is laid out inside a layer's bounds
type ScaleMode string

const (
	ScaleModeFill ScaleMode = "FILL" // cover the bounds, cropping overflow
	ScaleModeFit  ScaleMode = "FIT"
	ScaleModeCrop ScaleMode = "CROP"
	ScaleModeTile ScaleMode = "TILE"
)

// Paint is a single entry in a node's fill list
type Paint struct {
	Type      PaintType `json:"type"`
	ScaleMode ScaleMode `json:"scaleMode,omitempty"`
	ImageHash string    `json:"imageHash,omitempty"`
	Color     string    `json:"color,omitempty"` // hex, SOLID paints only
}

// ImagePaint returns the fill used for imported images: the referenced image
// always covers the layer's bounds.
func ImagePaint(hash string) Paint {
	return Paint{
		Type:      PaintTypeImage,
		ScaleMode: ScaleModeFill,
		ImageHash: hash,
	}
}

// ImageResource is an image registered with the host, addressed by hash
type ImageResource struct {
	Hash   string
	Width  int
	Height int
	Format string
	Size   int
}
