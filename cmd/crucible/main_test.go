package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/crucible/crucible"
	"github.com/katalvlaran/crucible/gridgraph"
	"github.com/katalvlaran/crucible/internal/store"
)

const sampleMap = `2413432311323
3215453535623
3255245654254
3446585845452
4546657867536
1438598798454
4457876987766
3637877979653
4654967986887
4564679986453
1224686865563
2546548887735
4322674655533
`

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

// isolate points HOME and the working directory at temp dirs so no user or
// project config leaks into the test, and returns a database path.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	return filepath.Join(t.TempDir(), "runs.db")
}

// execute runs the CLI with args and stdin, returning stdout with colours stripped.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()

	return ansi.ReplaceAllString(out.String(), ""), err
}

func TestSolveFromStdin(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, sampleMap, "solve", "--db", db, "--profile", "all")
	require.NoError(t, err)
	assert.Equal(t, "standard[1..3] 102\nultra[4..10] 94\n", out)
}

func TestSolveFromFileWithCustomRuns(t *testing.T) {
	db := isolate(t)
	path := filepath.Join(t.TempDir(), "grid.txt")
	require.NoError(t, os.WriteFile(path, []byte("111\n991\n111\n"), 0o644))

	out, err := execute(t, "", "solve", "--db", db, "--min-run", "1", "--max-run", "3", "--frontier", "bucket", path)
	require.NoError(t, err)
	assert.Equal(t, "custom[1..3] 4\n", out)
}

func TestSolveSingleRunBoundKeepsProfileBound(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "111\n991\n111\n", "solve", "--db", db, "--min-run", "2")
	require.NoError(t, err)
	assert.Equal(t, "custom[2..3] 4\n", out)

	out, err = execute(t, "111\n991\n111\n", "solve", "--db", db, "--profile", "ultra", "--max-run", "2")
	require.Error(t, err, "ultra's lower bound of 4 exceeds the new upper bound")
	assert.Empty(t, out)
}

func TestSolveUnreachable(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "11111\n", "solve", "--db", db, "--min-run", "5", "--max-run", "5")
	require.NoError(t, err, "unreachable is not a failure")
	assert.Equal(t, "custom[5..5] unreachable\n", out)
}

func TestSolveRejectsBadInput(t *testing.T) {
	db := isolate(t)

	_, err := execute(t, "12\n3\n", "solve", "--db", db)
	assert.ErrorContains(t, err, "gridgraph")

	_, err = execute(t, "12\n34\n", "solve", "--db", db, "--goal", "5,5")
	assert.ErrorContains(t, err, "goal")

	_, err = execute(t, "12\n34\n", "solve", "--db", db, "--profile", "turbo")
	assert.ErrorContains(t, err, "turbo")

	_, err = execute(t, "12\n34\n", "solve", "--db", db, "--max-steps", "1")
	assert.ErrorContains(t, err, "step limit")
}

func TestSolveCacheAndHistory(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, sampleMap, "solve", "--db", db, "--cache")
	require.NoError(t, err)
	assert.Equal(t, "standard[1..3] 102\n", out)

	out, err = execute(t, sampleMap, "solve", "--db", db, "--cache")
	require.NoError(t, err)
	assert.Equal(t, "standard[1..3] 102 (cached)\n", out)

	out, err = execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2, "header plus the one solved run")
	assert.Contains(t, lines[1], "13x13")
	assert.Contains(t, lines[1], "1..3")
	assert.Contains(t, lines[1], "102")
}

func TestRecordStoresPerQueryElapsed(t *testing.T) {
	db := isolate(t)
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()

	g := gridgraph.MustParse("12\n34")
	q := query{grid: g, digest: g.Digest(), start: g.TopLeft(), goal: g.BottomRight()}
	a := &app{logger: log.New(io.Discard)}
	a.record(st, q, crucible.Result{Profile: crucible.Standard, Elapsed: 3 * time.Millisecond})
	a.record(st, q, crucible.Result{Profile: crucible.Ultra, Elapsed: 40 * time.Millisecond})

	fast, err := st.Lookup(q.key(crucible.Standard))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Millisecond, fast.Duration)
	assert.Equal(t, g.Digest(), fast.Key.GridDigest)
	assert.Equal(t, "heap", fast.Frontier)

	slow, err := st.Lookup(q.key(crucible.Ultra))
	require.NoError(t, err)
	assert.Equal(t, 40*time.Millisecond, slow.Duration)
}

func TestHistoryEmpty(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "No runs recorded yet.\n", out)
}

func TestRenderPlain(t *testing.T) {
	db := isolate(t)

	out, err := execute(t, "111\n991\n111\n", "render", "--db", db, "--plain", "--min-run", "1", "--max-run", "3")
	require.NoError(t, err)
	assert.Equal(t, "custom[1..3] 4\n1>>\n99v\n11v\n", out)
}

func TestConfigFileAndLogLevel(t *testing.T) {
	db := isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "crucible.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("solver:\n  profile: ultra\n"), 0o644))

	out, err := execute(t, sampleMap, "solve", "--config", cfgPath, "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "ultra[4..10] 94\n", out)

	_, err = execute(t, sampleMap, "solve", "--db", db, "--log-level", "shouty")
	assert.Error(t, err)
}
