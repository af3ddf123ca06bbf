// Package gridgraph defines core types and sentinel errors
// for the gridgraph subpackage of github.com/katalvlaran/crucible.
package gridgraph

import (
	"errors"
	"fmt"
)

// Sentinel errors for gridgraph operations.
var (
	// ErrEmptyGrid indicates input grid has no rows or no columns.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrInvalidDigit indicates a non-digit character in textual grid input.
	ErrInvalidDigit = errors.New("gridgraph: cell must be a decimal digit")
)

// Point addresses a single cell by zero-based row and column.
type Point struct {
	Row, Col int
}

// Add returns p shifted by (dr, dc).
func (p Point) Add(dr, dc int) Point {
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

// Manhattan returns the L1 distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.Row-q.Row) + abs(p.Col-q.Col)
}

// String formats p as "row,col", the same form ParsePoint accepts.
func (p Point) String() string {
	return fmt.Sprintf("%d,%d", p.Row, p.Col)
}

// GridGraph treats a 2D integer grid as an implicit graph whose vertices are
// cells and whose edge weights are the values of the entered cells.
// It is immutable once built: CellValues[row][col] holds a private copy of the
// input and must not be modified by callers.
type GridGraph struct {
	Width, Height int
	CellValues    [][]int
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
