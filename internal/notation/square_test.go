package notation

import (
	"errors"
	"testing"
)

func TestSquareNames(t *testing.T) {
	tests := []struct {
		col, row int
		name     string
	}{
		{0, 0, "a1"},
		{4, 3, "e4"},
		{7, 7, "h8"},
		{25, 1, "z2"},
		{26, 0, "aa1"},
		{27, 0, "ab1"},
		{51, 9, "az10"},
		{52, 0, "ba1"},
		{18277, 99, "zzz100"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SquareName(tt.col, tt.row); got != tt.name {
				t.Fatalf("SquareName(%d, %d) = %q", tt.col, tt.row, got)
			}
			col, row, err := ParseSquareName(tt.name)
			if err != nil {
				t.Fatalf("ParseSquareName: %v", err)
			}
			if col != tt.col || row != tt.row {
				t.Fatalf("ParseSquareName(%q) = %d, %d", tt.name, col, row)
			}
		})
	}
}

func TestParseSquareNameRejects(t *testing.T) {
	for _, name := range []string{"", "a", "1", "1a", "a0", "A1", "a-1", "a1b", "é1"} {
		if _, _, err := ParseSquareName(name); !errors.Is(err, ErrInvalidSquareName) {
			t.Fatalf("ParseSquareName(%q) err = %v", name, err)
		}
	}
}
