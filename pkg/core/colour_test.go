package core

import (
	"image/color"
	"testing"
)

func TestColour_Arithmetic(t *testing.T) {
	a := NewColour(1.0, 0.5, 0.0)
	b := NewColour(0.5, 0.25, 0.75)

	if got := a.Add(b); got != NewColour(1.5, 0.75, 0.75) {
		t.Errorf("Add: got %v", got)
	}
	if got := a.Multiply(b); got != NewColour(0.5, 0.125, 0.0) {
		t.Errorf("Multiply: got %v", got)
	}
	if got := a.Scale(0.5); got != NewColour(0.5, 0.25, 0.0) {
		t.Errorf("Scale: got %v", got)
	}
}

func TestColour_IsBlack(t *testing.T) {
	if !Black.IsBlack() {
		t.Error("Expected Black to be black")
	}
	if NewColour(0, 0, 1e-9).IsBlack() {
		t.Error("Expected a non-zero channel to be non-black")
	}
}

func TestColour_ToRGB(t *testing.T) {
	tests := []struct {
		name     string
		colour   Colour
		expected uint32
	}{
		{"black", Black, 0x000000},
		{"white", White, 0xFFFFFF},
		{"pure red", NewColour(1, 0, 0), 0xFF0000},
		{"pure green", NewColour(0, 1, 0), 0x00FF00},
		{"pure blue", NewColour(0, 0, 1), 0x0000FF},
		{"clamps above one", NewColour(40, 2, 1.0001), 0xFFFFFF},
		{"clamps negative", NewColour(-3, -0.1, 0), 0x000000},
		{"truncates rather than rounds", NewColour(0.999, 0.5, 0.0039), 0xFE7F00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.colour.ToRGB(); got != tt.expected {
				t.Errorf("Expected %06X, got %06X", tt.expected, got)
			}
		})
	}
}

func TestColour_ToRGBA(t *testing.T) {
	got := NewColour(2, 0.5, -1).ToRGBA()
	expected := color.RGBA{R: 255, G: 127, B: 0, A: 255}
	if got != expected {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}
