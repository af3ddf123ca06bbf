// Package gridgraph provides utilities to treat a 2D grid of integer cell values
// as a weighted graph. It supports:
//
//   - Immutable, deep-copied construction from [][]int
//   - Orthogonal neighbour addressing with bounds checks
//   - Parsing of line-oriented digit maps
//   - Stable content digests for caching results per grid
package gridgraph

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice.
// It deep-copies the input to ensure immutability.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	// Deep copy to prevent external mutation; rows share one backing array.
	backing := make([]int, w*h)
	cells := make([][]int, h)
	for r := 0; r < h; r++ {
		cells[r] = backing[r*w : (r+1)*w : (r+1)*w]
		copy(cells[r], values[r])
	}

	return &GridGraph{
		Width:      w,
		Height:     h,
		CellValues: cells,
	}, nil
}

// InBounds reports whether p lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < gg.Height && p.Col >= 0 && p.Col < gg.Width
}

// Weight returns the value of the cell at p. p must be in bounds.
func (gg *GridGraph) Weight(p Point) int {
	return gg.CellValues[p.Row][p.Col]
}

// TopLeft returns the first cell in row-major order.
func (gg *GridGraph) TopLeft() Point {
	return Point{}
}

// BottomRight returns the last cell in row-major order.
func (gg *GridGraph) BottomRight() Point {
	return Point{Row: gg.Height - 1, Col: gg.Width - 1}
}

// MinWeight and MaxWeight scan all cells. Complexity: O(W×H).
func (gg *GridGraph) MinWeight() int {
	lo := gg.CellValues[0][0]
	for _, row := range gg.CellValues {
		for _, v := range row {
			if v < lo {
				lo = v
			}
		}
	}

	return lo
}

func (gg *GridGraph) MaxWeight() int {
	hi := gg.CellValues[0][0]
	for _, row := range gg.CellValues {
		for _, v := range row {
			if v > hi {
				hi = v
			}
		}
	}

	return hi
}

// Index maps p to a row‑major index: Row*Width + Col.
// Complexity: O(1).
func (gg *GridGraph) Index(p Point) int {
	return p.Row*gg.Width + p.Col
}

// Coordinate converts a row‑major index back to a Point.
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) Point {
	return Point{Row: idx / gg.Width, Col: idx % gg.Width}
}

// Digest returns a hex SHA-256 over the dimensions and all cell values.
// Two grids with equal digests hold the same weights, so solver results
// can be cached per digest.
func (gg *GridGraph) Digest() string {
	h := sha256.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(gg.Width))
	h.Write(buf[:])
	binary.LittleEndian.PutUint64(buf[:], uint64(gg.Height))
	h.Write(buf[:])
	for _, row := range gg.CellValues {
		for _, v := range row {
			binary.LittleEndian.PutUint64(buf[:], uint64(int64(v)))
			h.Write(buf[:])
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}

// String renders the grid as digit rows when every value is a single digit,
// otherwise as space-separated numbers.
func (gg *GridGraph) String() string {
	digits := gg.MinWeight() >= 0 && gg.MaxWeight() <= 9
	var sb strings.Builder
	for r, row := range gg.CellValues {
		if r > 0 {
			sb.WriteByte('\n')
		}
		for c, v := range row {
			if !digits && c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(v))
		}
	}

	return sb.String()
}

// ParsePoint parses "row,col" into a Point.
func ParsePoint(s string) (Point, error) {
	rs, cs, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("gridgraph: point %q must be of the form row,col", s)
	}
	r, err := strconv.Atoi(strings.TrimSpace(rs))
	if err != nil {
		return Point{}, fmt.Errorf("gridgraph: point %q: bad row: %w", s, err)
	}
	c, err := strconv.Atoi(strings.TrimSpace(cs))
	if err != nil {
		return Point{}, fmt.Errorf("gridgraph: point %q: bad column: %w", s, err)
	}

	return Point{Row: r, Col: c}, nil
}
