package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	return s
}

func sampleRun(digest string, minRun, maxRun int, cost int64) Run {
	return Run{
		Key: Key{
			GridDigest: digest,
			Start:      "0,0",
			Goal:       "12,12",
			MinRun:     minRun,
			MaxRun:     maxRun,
		},
		Width:     13,
		Height:    13,
		Frontier:  "heap",
		Reachable: true,
		Cost:      cost,
		Settled:   1234,
		Duration:  15 * time.Millisecond,
	}
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "a", "b", "runs.db")
	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(dbPath)
	assert.NoError(t, err, "database file was not created")
}

func TestStoreOpenExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	s, err := Open("~/.crucible/runs.db")
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(filepath.Join(home, ".crucible", "runs.db"))
	assert.NoError(t, err)
}

func TestStoreInMemory(t *testing.T) {
	s, err := Open(":memory:")
	require.NoError(t, err)
	defer s.Close()

	_, err = s.SaveRun(sampleRun("abc", 1, 3, 102))
	require.NoError(t, err)
	runs, err := s.Recent(5)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestStoreSaveAndLookup(t *testing.T) {
	s := openTemp(t)

	id, err := s.SaveRun(sampleRun("abc", 1, 3, 102))
	require.NoError(t, err)
	assert.Positive(t, id)
	_, err = s.SaveRun(sampleRun("abc", 4, 10, 94))
	require.NoError(t, err)

	got, err := s.Lookup(Key{GridDigest: "abc", Start: "0,0", Goal: "12,12", MinRun: 4, MaxRun: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(94), got.Cost)
	assert.True(t, got.Reachable)
	assert.Equal(t, 13, got.Width)
	assert.Equal(t, "heap", got.Frontier)
	assert.Equal(t, 15*time.Millisecond, got.Duration)
	assert.False(t, got.CreatedAt.IsZero())

	_, err = s.Lookup(Key{GridDigest: "other", Start: "0,0", Goal: "12,12", MinRun: 1, MaxRun: 3})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreLookupReturnsNewest(t *testing.T) {
	s := openTemp(t)
	_, err := s.SaveRun(sampleRun("abc", 1, 3, 102))
	require.NoError(t, err)
	latest := sampleRun("abc", 1, 3, 102)
	latest.Frontier = "bucket"
	_, err = s.SaveRun(latest)
	require.NoError(t, err)

	got, err := s.Lookup(latest.Key)
	require.NoError(t, err)
	assert.Equal(t, "bucket", got.Frontier)
}

func TestStoreUnreachableRoundTrip(t *testing.T) {
	s := openTemp(t)
	r := sampleRun("row", 5, 5, 0)
	r.Reachable = false
	_, err := s.SaveRun(r)
	require.NoError(t, err)

	got, err := s.Lookup(r.Key)
	require.NoError(t, err)
	assert.False(t, got.Reachable)
}

func TestStoreRecent(t *testing.T) {
	s := openTemp(t)
	for i := 0; i < 5; i++ {
		_, err := s.SaveRun(sampleRun("abc", 1, 3, int64(100+i)))
		require.NoError(t, err)
	}

	runs, err := s.Recent(3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, int64(104), runs[0].Cost, "newest first")
	assert.Equal(t, int64(102), runs[2].Cost)

	all, err := s.Recent(0)
	require.NoError(t, err)
	assert.Len(t, all, 5, "non-positive limit uses the default")
}

func TestStoreCloseNil(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}
