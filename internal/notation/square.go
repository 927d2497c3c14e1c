// Package notation converts between the rules engine's types and text:
// square names, the unicode piece grid and FEN.
package notation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/benbeisheim/variantchess-backend/internal/model"
)

var ErrInvalidSquareName = errors.New("invalid square name")

// SquareName names a zero-based coordinate the way a chess player would:
// column letters a..z, then aa, ab, ... for wide boards, followed by the
// one-based row. SquareName(0, 0) is "a1" and SquareName(26, 0) is "aa1".
func SquareName(col, row int) string {
	var letters []byte
	for remainder := col; ; remainder-- {
		letters = append(letters, byte('a'+remainder%26))
		remainder /= 26
		if remainder == 0 {
			break
		}
	}
	for i, j := 0, len(letters)-1; i < j; i, j = i+1, j-1 {
		letters[i], letters[j] = letters[j], letters[i]
	}
	return string(letters) + strconv.Itoa(row+1)
}

func PositionName(p model.Position) string {
	return SquareName(p.Col, p.Row)
}

// ParseSquareName is the inverse of SquareName.
func ParseSquareName(name string) (col, row int, err error) {
	split := strings.IndexFunc(name, func(r rune) bool { return r < 'a' || r > 'z' })
	if split <= 0 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSquareName, name)
	}
	letters, digits := name[:split], name[split:]
	for _, r := range digits {
		if r < '0' || r > '9' {
			return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSquareName, name)
		}
	}
	rank, err := strconv.Atoi(digits)
	if err != nil || rank < 1 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSquareName, name)
	}

	col = 0
	for _, r := range letters {
		col = col*26 + int(r-'a') + 1
	}
	return col - 1, rank - 1, nil
}

func ParsePosition(name string) (model.Position, error) {
	col, row, err := ParseSquareName(name)
	if err != nil {
		return model.Position{}, err
	}
	return model.Position{Col: col, Row: row}, nil
}
