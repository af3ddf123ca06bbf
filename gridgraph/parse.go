package gridgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Parse reads a digit map from r: one grid row per line, one decimal digit
// per cell. Carriage returns and trailing blank lines are ignored; a blank
// line followed by more rows is reported as ErrNonRectangular.
//
// Errors:
//   - ErrEmptyGrid if no rows were read.
//   - ErrNonRectangular if row lengths differ (wrapped with the line number).
//   - ErrInvalidDigit for any non-digit character (wrapped with line and column).
//   - any read error from r.
func Parse(r io.Reader) (*GridGraph, error) {
	var (
		rows   [][]int
		blanks int
		line   int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if text == "" {
			blanks++
			continue
		}
		if blanks > 0 && len(rows) > 0 {
			return nil, fmt.Errorf("%w: blank line before line %d", ErrNonRectangular, line)
		}
		blanks = 0
		row := make([]int, len(text))
		for col := 0; col < len(text); col++ {
			ch := text[col]
			if ch < '0' || ch > '9' {
				return nil, fmt.Errorf("%w: %q at line %d, column %d", ErrInvalidDigit, ch, line, col+1)
			}
			row[col] = int(ch - '0')
		}
		if len(rows) > 0 && len(row) != len(rows[0]) {
			return nil, fmt.Errorf("%w: line %d has %d cells, want %d", ErrNonRectangular, line, len(row), len(rows[0]))
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridgraph: read input: %w", err)
	}

	return NewGridGraph(rows)
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*GridGraph, error) {
	return Parse(strings.NewReader(s))
}

// MustParse is like ParseString but panics on error. Intended for tests
// and package-level fixtures.
func MustParse(s string) *GridGraph {
	gg, err := ParseString(s)
	if err != nil {
		panic(err)
	}

	return gg
}
