package domain

import "testing"

func TestCanHoldImageFill(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want bool
	}{
		{"rectangle", fillable("1", NodeKindRectangle, "r"), true},
		{"frame", fillable("2", NodeKindFrame, "f"), true},
		{"ellipse", fillable("3", NodeKindEllipse, "e"), true},
		{"polygon", fillable("4", NodeKindPolygon, "p"), true},
		{"star", fillable("5", NodeKindStar, "s"), true},
		{"vector", fillable("6", NodeKindVector, "v"), true},
		{"component with fills", fillable("7", NodeKindComponent, "c"), true},
		{"instance with fills", fillable("8", NodeKindInstance, "i"), true},
		{"component without fill attribute", &testNode{kind: NodeKindComponent, name: "c"}, false},
		{"instance not fillable at all", &bareNode{kind: NodeKindInstance, name: "i"}, false},
		{"rectangle without fill interface", &bareNode{kind: NodeKindRectangle, name: "r"}, true},
		{"text", fillable("9", NodeKindText, "t"), false},
		{"group", fillable("10", NodeKindGroup, "g"), false},
		{"boolean operation", fillable("11", NodeKindBooleanOperation, "b"), false},
		{"line", fillable("12", NodeKindLine, "l"), false},
		{"slice", fillable("13", NodeKindSlice, "s"), false},
		{"page", fillable("14", NodeKindPage, "p"), false},
		{"unknown", fillable("15", NodeKindUnknown, "u"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanHoldImageFill(tt.node); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
