package domain

import (
	"path/filepath"
	"strings"
)

// ImageRecord is an uploaded image waiting to be matched against a layer.
// Name carries no extension; it is the sole matching key once normalized.
type ImageRecord struct {
	Name      string
	Extension string
	Data      []byte
	Size      int

	filename string
}

// NewImageRecord builds a record from an upload's filename and raw bytes.
// The extension is everything after the last dot of the base name; a leading
// dot (e.g. ".logo") is part of the name. A trailing dot leaves the extension
// empty and is dropped from the name, so "hero." still matches "hero".
func NewImageRecord(filename string, data []byte) ImageRecord {
	base := filepath.Base(filename)
	name, ext := base, ""

	if i := strings.LastIndex(base, "."); i > 0 {
		name, ext = base[:i], base[i+1:]
	}

	return ImageRecord{
		Name:      name,
		Extension: ext,
		Data:      data,
		Size:      len(data),
		filename:  base,
	}
}

// Filename returns the uploaded base name for reporting
func (r ImageRecord) Filename() string {
	if r.filename != "" {
		return r.filename
	}
	if r.Extension == "" {
		return r.Name
	}
	return r.Name + "." + r.Extension
}

// NormalizeName returns the matching key for a layer or image name
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
