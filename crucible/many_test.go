package crucible_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
)

func TestSolveMany_MatchesSequential(t *testing.T) {
	g := randomGrid(t, 3, 20, 25, 1, 9)
	profiles := []crucible.Profile{
		crucible.Standard,
		crucible.Ultra,
		{MinRun: 2, MaxRun: 6},
		{MinRun: 1, MaxRun: 1},
	}

	got, err := crucible.SolveMany(context.Background(), g, g.TopLeft(), g.BottomRight(), profiles,
		crucible.WithReturnPath())
	require.NoError(t, err)
	require.Len(t, got, len(profiles))

	for i, p := range profiles {
		want, err := crucible.Solve(g, g.TopLeft(), g.BottomRight(), crucible.WithProfile(p), crucible.WithReturnPath())
		require.NoError(t, err)
		assert.Equal(t, want.String(), got[i].String(), "profile %v", p)
		assert.Equal(t, p, got[i].Profile, "results keep profile order")
		assert.Equal(t, want.Path, got[i].Path)
		assert.Positive(t, got[i].Elapsed, "each result carries its own search time")
	}
}

func TestSolveMany_FirstErrorWins(t *testing.T) {
	g := gridgraph.MustParse(sampleMap)
	profiles := []crucible.Profile{crucible.Standard, {Name: "broken", MinRun: 0, MaxRun: 3}}

	res, err := crucible.SolveMany(context.Background(), g, g.TopLeft(), g.BottomRight(), profiles)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, crucible.ErrBadMinRun)
	assert.Contains(t, err.Error(), "broken")
}

func TestSolveMany_Cancelled(t *testing.T) {
	g := gridgraph.MustParse(sampleMap)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := crucible.SolveMany(ctx, g, g.TopLeft(), g.BottomRight(), []crucible.Profile{crucible.Ultra})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveMany_Empty(t *testing.T) {
	g := gridgraph.MustParse("12\n34")
	res, err := crucible.SolveMany(context.Background(), g, g.TopLeft(), g.BottomRight(), nil)
	require.NoError(t, err)
	assert.Empty(t, res)
}
