package domain

// Skip reasons reported per image. The set is closed; ReasonApplyError is a
// prefix followed by the host's error message.
const (
	ReasonNoMatch    = "No matching layer found"
	ReasonNoFills    = "Layer does not support fills"
	ReasonApplyError = "Error applying image: "
)

// SkipDetail records why an image was not applied
type SkipDetail struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// AppliedImage records a successful fill
type AppliedImage struct {
	Filename  string `json:"filename"`
	LayerPath string `json:"layerPath"`
	ImageHash string `json:"imageHash"`
}

// ImportResult summarizes a batch import. Mapped + Skipped == TotalImages.
type ImportResult struct {
	TotalImages    int            `json:"totalImages"`
	Mapped         int            `json:"mapped"`
	Skipped        int            `json:"skipped"`
	SkippedDetails []SkipDetail   `json:"skippedDetails"`
	Applied        []AppliedImage `json:"applied,omitempty"`
}

// NewImportResult creates an empty result for a batch of total images
func NewImportResult(total int) *ImportResult {
	return &ImportResult{
		TotalImages:    total,
		SkippedDetails: []SkipDetail{},
	}
}

// RecordMapped counts a successful fill
func (r *ImportResult) RecordMapped(filename, layerPath, hash string) {
	r.Mapped++
	r.Applied = append(r.Applied, AppliedImage{
		Filename:  filename,
		LayerPath: layerPath,
		ImageHash: hash,
	})
}

// RecordSkipped counts a skipped image with its reason
func (r *ImportResult) RecordSkipped(filename, reason string) {
	r.Skipped++
	r.SkippedDetails = append(r.SkippedDetails, SkipDetail{
		Filename: filename,
		Reason:   reason,
	})
}
