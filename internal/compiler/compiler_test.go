package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batalja/roundrunner/internal/matchmakererr"
	"github.com/batalja/roundrunner/internal/model"
)

// fakeRunner records invocations and, when playerSrc is set, writes it as
// Player.java directly into the unzip target instead of shelling out, so
// tests never touch a real archive.
type fakeRunner struct {
	calls     [][]string
	failOn    string // command name to fail
	playerSrc string // Player.java body to materialize on "unzip"
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, append([]string{name}, args...))
	if name == f.failOn {
		return errors.New("boom")
	}
	if name == "unzip" && f.playerSrc != "" {
		// args: -o, <zip>, -d, <dir>
		dir := args[3]
		return os.WriteFile(filepath.Join(dir, "Player.java"), []byte(f.playerSrc), 0o644)
	}
	return nil
}

func TestCompile_Success(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{playerSrc: "class Player { public static void main(String[] a) {} }"}
	c := &Compiler{Runner: fr, ResourcesDir: dir}

	err := c.Compile(context.Background(), model.Bot{ID: "bot-1", SourcePath: "/src/bot.zip"})
	require.NoError(t, err)

	var javacCall []string
	for _, call := range fr.calls {
		if call[0] == "javac" {
			javacCall = call
		}
	}
	require.NotNil(t, javacCall)
	assert.Contains(t, javacCall[1], "Player.java")
}

func TestCompile_NoSources(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{} // unzip extracts nothing
	c := &Compiler{Runner: fr, ResourcesDir: dir}

	err := c.Compile(context.Background(), model.Bot{ID: "bot-2", SourcePath: "/src/bot.zip"})
	require.Error(t, err)
	assert.ErrorIs(t, err, matchmakererr.ErrNoSources)
}

func TestCompile_PlayerFileMissing(t *testing.T) {
	dir := t.TempDir()
	// Simulate an extraction that drops an unrelated .java file, not Player.java.
	fr := &stubRunner{writeFile: "Other.java", writeBody: "class Other {}"}
	c := &Compiler{Runner: fr, ResourcesDir: dir}

	err := c.Compile(context.Background(), model.Bot{ID: "bot-3", SourcePath: "/src/bot.zip"})
	require.Error(t, err)
	assert.ErrorIs(t, err, matchmakererr.ErrPlayerFileMissing)
}

func TestCompile_MainMethodMissing(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{playerSrc: "class Player { void notMain() {} }"}
	c := &Compiler{Runner: fr, ResourcesDir: dir}

	err := c.Compile(context.Background(), model.Bot{ID: "bot-4", SourcePath: "/src/bot.zip"})
	require.Error(t, err)
	assert.ErrorIs(t, err, matchmakererr.ErrMainMethodMissing)
}

func TestCompile_CompileFailed(t *testing.T) {
	dir := t.TempDir()
	fr := &fakeRunner{playerSrc: "class Player { public static void main(String[] a) {} }", failOn: "javac"}
	c := &Compiler{Runner: fr, ResourcesDir: dir}

	err := c.Compile(context.Background(), model.Bot{ID: "bot-5", SourcePath: "/src/bot.zip"})
	require.Error(t, err)
	assert.ErrorIs(t, err, matchmakererr.ErrCompileFailed)
}

// stubRunner writes a single arbitrary file on unzip, used to simulate an
// archive whose contents don't include Player.java.
type stubRunner struct {
	writeFile string
	writeBody string
}

func (s *stubRunner) Run(_ context.Context, name string, args ...string) error {
	if name == "unzip" {
		dir := args[3]
		return os.WriteFile(filepath.Join(dir, s.writeFile), []byte(s.writeBody), 0o644)
	}
	return nil
}
