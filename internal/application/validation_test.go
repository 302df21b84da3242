package application

import (
	"errors"
	"testing"

	"layerfill/internal/domain"
)

type stubNode struct {
	kind domain.NodeKind
	name string
}

func (n *stubNode) ID() string              { return n.name }
func (n *stubNode) Kind() domain.NodeKind   { return n.kind }
func (n *stubNode) Name() string            { return n.name }
func (n *stubNode) Children() []domain.Node { return nil }

type stubSelection struct {
	nodes []domain.Node
}

func (s *stubSelection) Selection() []domain.Node { return s.nodes }

func (s *stubSelection) SetSelection(nodes []domain.Node) error {
	s.nodes = nodes
	return nil
}

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
		errMsg    string
	}{
		{
			name:      "valid value",
			fieldName: "layerName",
			value:     "hero",
			wantErr:   false,
		},
		{
			name:      "empty value",
			fieldName: "layerName",
			value:     "",
			wantErr:   true,
			errMsg:    "layerName: layer name is required",
		},
		{
			name:      "whitespace only",
			fieldName: "nodeID",
			value:     "   ",
			wantErr:   true,
			errMsg:    "nodeID: node ID is required",
		},
		{
			name:      "unknown field name falls back",
			fieldName: "container",
			value:     "",
			wantErr:   true,
			errMsg:    "container: container is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.errMsg)
				}
				if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
				var vErr *ValidationError
				if !errors.As(err, &vErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestSelectedContainer(t *testing.T) {
	frame := &stubNode{kind: domain.NodeKindFrame, name: "Card"}
	group := &stubNode{kind: domain.NodeKindGroup, name: "Group"}
	rect := &stubNode{kind: domain.NodeKindRectangle, name: "hero"}

	tests := []struct {
		name      string
		selection []domain.Node
		want      domain.Node
		errMsg    string
	}{
		{
			name:      "single frame",
			selection: []domain.Node{frame},
			want:      frame,
		},
		{
			name:      "single group",
			selection: []domain.Node{group},
			want:      group,
		},
		{
			name:   "nothing selected",
			errMsg: "Please select a frame or group",
		},
		{
			name:      "multiple selected",
			selection: []domain.Node{frame, group},
			errMsg:    "Please select only one frame or group",
		},
		{
			name:      "wrong kind",
			selection: []domain.Node{rect},
			errMsg:    "Selected node must be a frame, group, component or section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectedContainer(&stubSelection{nodes: tt.selection})

			if tt.errMsg != "" {
				if err == nil {
					t.Fatalf("expected error %q, got nil", tt.errMsg)
				}
				if err.Error() != tt.errMsg {
					t.Errorf("expected error %q, got %q", tt.errMsg, err.Error())
				}
				if !errors.Is(err, ErrInvalidSelection) {
					t.Errorf("expected error to match ErrInvalidSelection")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLayerNotFoundError(t *testing.T) {
	err := error(&LayerNotFoundError{Name: "hero"})
	if err.Error() != "Layer not found: hero" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrNotFound) {
		t.Error("expected LayerNotFoundError to match ErrNotFound")
	}
}
