package models

import "testing"

func TestGridWidthAndCells(t *testing.T) {
	g := Grid{
		{"a", "b"},
		{},
		{"c", "d", "e"},
	}

	if w := g.Width(); w != 3 {
		t.Errorf("Width() = %d, expected 3", w)
	}
	if n := g.Cells(); n != 5 {
		t.Errorf("Cells() = %d, expected 5", n)
	}
}

func TestGridEqual(t *testing.T) {
	tests := []struct {
		a, b     Grid
		expected bool
	}{
		{nil, Grid{}, true},
		{Grid{{"a"}}, Grid{{"a"}}, true},
		{Grid{{"a"}}, Grid{{"b"}}, false},
		{Grid{{"a"}}, Grid{{"a", ""}}, false},
		{Grid{{}}, Grid{}, false},
		{Grid{{}, {"x"}}, Grid{nil, {"x"}}, true},
	}

	for i, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.expected {
			t.Errorf("case %d: Equal() = %v, expected %v", i, got, tt.expected)
		}
	}
}
