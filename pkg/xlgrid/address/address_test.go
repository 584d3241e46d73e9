package address

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestIndexToColumnLabel(t *testing.T) {
	tests := []struct {
		index    int
		expected string
	}{
		{0, "A"},
		{1, "B"},
		{25, "Z"},
		{26, "AA"},
		{27, "AB"},
		{51, "AZ"},
		{52, "BA"},
		{701, "ZZ"},
		{702, "AAA"},
		{16383, "XFD"},
		{18277, "ZZZ"},
		{-1, ""},
	}

	for _, tt := range tests {
		result := IndexToColumnLabel(tt.index)
		if result != tt.expected {
			t.Errorf("IndexToColumnLabel(%d) = %q, expected %q", tt.index, result, tt.expected)
		}
	}
}

func TestColumnLabelToIndex(t *testing.T) {
	tests := []struct {
		label    string
		expected int
		wantErr  bool
	}{
		{"A", 0, false},
		{"Z", 25, false},
		{"AA", 26, false},
		{"BA", 52, false},
		{"XFD", 16383, false},
		{"ZZZ", 18277, false},
		{"", 0, true},
		{"a", 0, true},
		{"A1", 0, true},
		{"Ä", 0, true},
		{"ZZZZZZZZ", 0, true},
	}

	for _, tt := range tests {
		result, err := ColumnLabelToIndex(tt.label)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("ColumnLabelToIndex(%q) error = %v, expected ErrInvalidAddress", tt.label, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ColumnLabelToIndex(%q) unexpected error: %v", tt.label, err)
			continue
		}
		if result != tt.expected {
			t.Errorf("ColumnLabelToIndex(%q) = %d, expected %d", tt.label, result, tt.expected)
		}
	}
}

func TestColumnLabelBijection(t *testing.T) {
	for i := 0; i <= 18277; i++ {
		label := IndexToColumnLabel(i)
		back, err := ColumnLabelToIndex(label)
		if err != nil {
			t.Fatalf("ColumnLabelToIndex(%q) failed: %v", label, err)
		}
		if back != i {
			t.Fatalf("round trip of %d via %q returned %d", i, label, back)
		}
	}

	// Every label of length <= 3 maps back to itself.
	var labels []string
	for a := byte('A'); a <= 'Z'; a++ {
		labels = append(labels, string(a))
		for b := byte('A'); b <= 'Z'; b++ {
			labels = append(labels, string([]byte{a, b}))
			for c := byte('A'); c <= 'Z'; c++ {
				labels = append(labels, string([]byte{a, b, c}))
			}
		}
	}
	for _, label := range labels {
		idx, err := ColumnLabelToIndex(label)
		if err != nil {
			t.Fatalf("ColumnLabelToIndex(%q) failed: %v", label, err)
		}
		if got := IndexToColumnLabel(idx); got != label {
			t.Fatalf("IndexToColumnLabel(%d) = %q, expected %q", idx, got, label)
		}
	}
}

func TestColumnLabelMatchesExcelize(t *testing.T) {
	for i := 0; i < 16384; i++ {
		expected, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			t.Fatalf("excelize.ColumnNumberToName(%d) failed: %v", i+1, err)
		}
		if got := IndexToColumnLabel(i); got != expected {
			t.Fatalf("IndexToColumnLabel(%d) = %q, excelize says %q", i, got, expected)
		}
	}
}

func TestCellReference(t *testing.T) {
	tests := []struct {
		row      int
		column   int
		expected string
	}{
		{1, 0, "A1"},
		{2, 0, "A2"},
		{7, 1, "B7"},
		{100, 26, "AA100"},
		{0, 0, ""},
		{1, -1, ""},
	}

	for _, tt := range tests {
		result := CellReference(tt.row, tt.column)
		if result != tt.expected {
			t.Errorf("CellReference(%d, %d) = %q, expected %q", tt.row, tt.column, result, tt.expected)
		}
	}
}

func TestParseCellReference(t *testing.T) {
	tests := []struct {
		ref     string
		row     int
		column  int
		wantErr bool
	}{
		{"A1", 1, 0, false},
		{"A2", 2, 0, false},
		{"B7", 7, 1, false},
		{"AA100", 100, 26, false},
		{"XFD1048576", 1048576, 16383, false},
		{"", 0, 0, true},
		{"A", 0, 0, true},
		{"1", 0, 0, true},
		{"A0", 0, 0, true},
		{"A01", 0, 0, true},
		{"a1", 0, 0, true},
		{"A1B", 0, 0, true},
		{"$A$1", 0, 0, true},
		{"A-1", 0, 0, true},
	}

	for _, tt := range tests {
		row, column, err := ParseCellReference(tt.ref)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidAddress) {
				t.Errorf("ParseCellReference(%q) error = %v, expected ErrInvalidAddress", tt.ref, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseCellReference(%q) unexpected error: %v", tt.ref, err)
			continue
		}
		if row != tt.row || column != tt.column {
			t.Errorf("ParseCellReference(%q) = (%d, %d), expected (%d, %d)",
				tt.ref, row, column, tt.row, tt.column)
		}
	}
}

func TestParseCellReferenceRoundTrip(t *testing.T) {
	for _, row := range []int{1, 9, 10, 99, 1048576} {
		for _, col := range []int{0, 25, 26, 701, 702, 16383} {
			ref := CellReference(row, col)
			r, c, err := ParseCellReference(ref)
			if err != nil {
				t.Fatalf("ParseCellReference(%q) failed: %v", ref, err)
			}
			if r != row || c != col {
				t.Fatalf("ParseCellReference(%q) = (%d, %d), expected (%d, %d)", ref, r, c, row, col)
			}
		}
	}
}

func TestNextColumnLabel(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"", "A"},
		{"A", "B"},
		{"Y", "Z"},
		{"Z", "AA"},
		{"AZ", "BA"},
		{"ZZ", "AAA"},
		{"XFD", "XFE"},
	}

	for _, tt := range tests {
		result := NextColumnLabel(tt.label)
		if result != tt.expected {
			t.Errorf("NextColumnLabel(%q) = %q, expected %q", tt.label, result, tt.expected)
		}
	}
}

func TestNextColumnLabelAgreesWithIndex(t *testing.T) {
	label := ""
	for i := 0; i <= 18277; i++ {
		label = NextColumnLabel(label)
		if expected := IndexToColumnLabel(i); label != expected {
			t.Fatalf("successor chain at %d = %q, expected %q", i, label, expected)
		}
	}
}

func TestColumnLabel(t *testing.T) {
	label, err := ColumnLabel("AB12")
	if err != nil || label != "AB" {
		t.Errorf("ColumnLabel(%q) = %q, %v; expected \"AB\"", "AB12", label, err)
	}
	if _, err := ColumnLabel("12"); !errors.Is(err, ErrInvalidAddress) {
		t.Errorf("ColumnLabel(%q) error = %v, expected ErrInvalidAddress", "12", err)
	}
}

func TestRangeReference(t *testing.T) {
	if got := RangeReference(1, 0, 10, 3); got != "A1:D10" {
		t.Errorf("RangeReference(1, 0, 10, 3) = %q, expected %q", got, "A1:D10")
	}
}
