package application

import (
	"fmt"
	"strings"

	"layerfill/internal/domain"
	"layerfill/internal/ports"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", formatFieldName(fieldName)),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "layerName" -> "layer name")
func formatFieldName(fieldName string) string {
	replacements := map[string]string{
		"layerName": "layer name",
		"nodeID":    "node ID",
		"images":    "images",
		"paths":     "paths",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}
	return fieldName
}

// SelectedContainer returns the single selected container node, or a
// SelectionError describing why the selection is unusable
func SelectedContainer(host ports.SelectionHost) (domain.Node, error) {
	selection := host.Selection()

	switch len(selection) {
	case 0:
		return nil, &SelectionError{
			Count:  0,
			Reason: "Please select a frame or group",
		}
	case 1:
	default:
		return nil, &SelectionError{
			Count:  len(selection),
			Reason: "Please select only one frame or group",
		}
	}

	node := selection[0]
	if node == nil || !node.Kind().IsContainer() {
		kind := domain.NodeKindUnknown.String()
		if node != nil {
			kind = node.Kind().String()
		}
		return nil, &SelectionError{
			Count:  1,
			Kind:   kind,
			Reason: "Selected node must be a frame, group, component or section",
		}
	}

	return node, nil
}
