package reaper

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean_RemovesMatchSubdirectories(t *testing.T) {
	dir := t.TempDir()
	matchesDir := filepath.Join(dir, "matches")
	require.NoError(t, os.MkdirAll(filepath.Join(matchesDir, "match-1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(matchesDir, "match-2"), 0o755))

	r := &Reaper{
		ResourcesDir:  dir,
		ListProcesses: func(context.Context) (string, error) { return "", nil },
		KillPID:       func(context.Context, string) error { return nil },
	}

	err := r.Clean(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(matchesDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestClean_NoMatchesDirIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	r := &Reaper{
		ResourcesDir:  dir,
		ListProcesses: func(context.Context) (string, error) { return "", nil },
		KillPID:       func(context.Context, string) error { return nil },
	}

	err := r.Clean(context.Background())
	require.NoError(t, err)
}

func TestClean_KillsOnlyProcessesMatchingNeedle(t *testing.T) {
	dir := t.TempDir()
	var killed []string

	r := &Reaper{
		ResourcesDir: dir,
		ListProcesses: func(context.Context) (string, error) {
			return "1234 ?? java Player Team1Bot1\n5678 ?? /bin/bash\n", nil
		},
		KillPID: func(_ context.Context, pid string) error {
			killed = append(killed, pid)
			return nil
		},
	}

	err := r.Clean(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1234"}, killed)
}

func TestClean_KillFailureIsSwallowed(t *testing.T) {
	dir := t.TempDir()

	r := &Reaper{
		ResourcesDir: dir,
		ListProcesses: func(context.Context) (string, error) {
			return "999 ?? java Player Foo\n", nil
		},
		KillPID: func(context.Context, string) error {
			return assertErr{}
		},
	}

	err := r.Clean(context.Background())
	require.NoError(t, err, "kill failures must not abort cleanup")
}

type assertErr struct{}

func (assertErr) Error() string { return "kill denied" }
