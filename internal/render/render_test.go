package render

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
)

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

func solvePath(t *testing.T, g *gridgraph.GridGraph) crucible.Result {
	t.Helper()
	res, err := crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithRuns(1, 3), crucible.WithReturnPath())
	require.NoError(t, err)
	require.True(t, res.Reachable())

	return res
}

func TestPlainOverlay(t *testing.T) {
	g := gridgraph.MustParse("111\n991\n111")
	res := solvePath(t, g)

	want := "1>>\n99v\n11v"
	assert.Equal(t, want, Plain(g, res.Path))
}

func TestPlainWithoutPath(t *testing.T) {
	g := gridgraph.MustParse("123\n456")
	assert.Equal(t, "123\n456", Plain(g, nil))
}

func TestPlainWideWeights(t *testing.T) {
	g, err := gridgraph.NewGridGraph([][]int{{1, 12}, {3, 4}})
	require.NoError(t, err)
	res := solvePath(t, g)

	assert.Equal(t, " 1 12\n v  >", Plain(g, res.Path))
}

func TestStyledMatchesPlainText(t *testing.T) {
	g := gridgraph.MustParse(
		"2413432311323\n3215453535623\n3255245654254\n3446585845452\n4546657867536\n" +
			"1438598798454\n4457876987766\n3637877979653\n4654967986887\n4564679986453\n" +
			"1224686865563\n2546548887735\n4322674655533")
	res := solvePath(t, g)

	styled := Styled(g, res.Path)
	assert.Equal(t, Plain(g, res.Path), ansi.ReplaceAllString(styled, ""))
}

func TestSummary(t *testing.T) {
	g := gridgraph.MustParse("11111")
	res, err := crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithProfile(crucible.Ultra))
	require.NoError(t, err)
	assert.Equal(t, "ultra[4..10] 4", ansi.ReplaceAllString(Summary(res), ""))

	res, err = crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithRuns(5, 5))
	require.NoError(t, err)
	assert.Equal(t, "custom[5..5] unreachable", ansi.ReplaceAllString(Summary(res), ""))
}
