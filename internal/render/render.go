// Package render draws a solved path over its grid for terminal output.
package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
)

type cellKind uint8

const (
	kindCell cellKind = iota
	kindPath
	kindStart
	kindGoal
)

var kindStyles = map[cellKind]lipgloss.Style{
	kindCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	kindPath:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	kindStart: lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	kindGoal:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
}

// canvas holds one token and kind per cell.
type canvas struct {
	tokens [][]string
	kinds  [][]cellKind
	sep    string
}

// layout builds the canvas. Cells on the path show the glyph of the heading
// used to enter them; the start keeps its weight. Grids with weights outside
// 0..9 are drawn space-separated with right-aligned columns.
func layout(g *gridgraph.GridGraph, path []crucible.Step) canvas {
	width := 1
	for _, row := range g.CellValues {
		for _, v := range row {
			if n := len(strconv.Itoa(v)); n > width {
				width = n
			}
		}
	}
	cv := canvas{
		tokens: make([][]string, g.Height),
		kinds:  make([][]cellKind, g.Height),
	}
	if width > 1 {
		cv.sep = " "
	}
	for r, row := range g.CellValues {
		cv.tokens[r] = make([]string, g.Width)
		cv.kinds[r] = make([]cellKind, g.Width)
		for c, v := range row {
			cv.tokens[r][c] = pad(strconv.Itoa(v), width)
		}
	}

	for i, st := range path {
		if !g.InBounds(st.Pos) {
			continue
		}
		r, c := st.Pos.Row, st.Pos.Col
		switch {
		case i == 0:
			cv.kinds[r][c] = kindStart
		case i == len(path)-1:
			cv.tokens[r][c] = pad(string(st.Heading.Glyph()), width)
			cv.kinds[r][c] = kindGoal
		default:
			cv.tokens[r][c] = pad(string(st.Heading.Glyph()), width)
			cv.kinds[r][c] = kindPath
		}
	}

	return cv
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}

	return strings.Repeat(" ", width-len(s)) + s
}

// Plain returns the grid with the path overlaid as ^ > v < glyphs.
// A nil path renders the bare grid.
func Plain(g *gridgraph.GridGraph, path []crucible.Step) string {
	cv := layout(g, path)
	var sb strings.Builder
	sb.Grow(g.Height * (g.Width*(len(cv.sep)+1) + 1))
	for r, row := range cv.tokens {
		if r > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strings.Join(row, cv.sep))
	}

	return sb.String()
}

// Styled is Plain with lipgloss colouring: start, goal and path cells stand
// out and the remaining weights are dimmed.
// Groups adjacent cells of the same kind to minimize ANSI escape sequences.
func Styled(g *gridgraph.GridGraph, path []crucible.Step) string {
	cv := layout(g, path)
	var sb strings.Builder
	for r, row := range cv.tokens {
		if r > 0 {
			sb.WriteByte('\n')
		}
		c := 0
		for c < len(row) {
			kind := cv.kinds[r][c]
			end := c
			for end < len(row) && cv.kinds[r][end] == kind {
				end++
			}
			seg := strings.Join(row[c:end], cv.sep)
			if c > 0 {
				seg = cv.sep + seg
			}
			sb.WriteString(kindStyles[kind].Render(seg))
			c = end
		}
	}

	return sb.String()
}

// Summary is a one-line description of res for terminal output.
func Summary(res crucible.Result) string {
	label := lipgloss.NewStyle().Bold(true).Render(res.Profile.String())
	if !res.Reachable() {
		return label + " unreachable"
	}

	return label + " " + res.String()
}
