// Package compiler builds a single bot's archived Java source into class
// files under a per-bot work directory, gating on source layout
// (Player.java present, flat .java scan, a main method) before ever
// invoking javac.
package compiler

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/batalja/roundrunner/internal/matchmakererr"
	"github.com/batalja/roundrunner/internal/model"
	"github.com/batalja/roundrunner/internal/runner"
	"github.com/batalja/roundrunner/internal/stage"
)

// Compiler compiles one bot at a time, scoping every effect to
// <ResourcesDir>/workdir/bots/<bot_id>/.
type Compiler struct {
	Runner       runner.CommandRunner
	ResourcesDir string
}

// New builds a Compiler backed by the real CommandRunner.
func New(resourcesDir string) *Compiler {
	return &Compiler{Runner: runner.Exec{}, ResourcesDir: resourcesDir}
}

// Workdir returns the per-bot compile workspace, reused across rounds.
func (c *Compiler) Workdir(botID string) string {
	return filepath.Join(c.ResourcesDir, "workdir", "bots", botID)
}

// Compile ensures the bot's workdir exists, copies and extracts its
// archive, validates the presence of an entry point, and invokes javac. It
// does not retry; a failed compile is the caller's signal to drop the team
// for this round.
func (c *Compiler) Compile(ctx context.Context, bot model.Bot) error {
	workdir := c.Workdir(bot.ID)
	sourcePath := bot.SourcePath

	if !utf8.ValidString(sourcePath) || !utf8.ValidString(workdir) {
		return fmt.Errorf("bot %s source path: %w", bot.ID, matchmakererr.ErrInvalidPath)
	}

	if err := stage.MkdirAll(workdir); err != nil {
		return fmt.Errorf("bot %s: %w: %v", bot.ID, matchmakererr.ErrIO, err)
	}

	if err := c.Runner.Run(ctx, "cp", sourcePath, workdir); err != nil {
		return fmt.Errorf("bot %s copy archive: %w: %v", bot.ID, matchmakererr.ErrIO, err)
	}

	fileName := filepath.Base(sourcePath)
	unzipTarget := filepath.Join(workdir, fileName)
	if err := c.Runner.Run(ctx, "unzip", "-o", unzipTarget, "-d", workdir); err != nil {
		return fmt.Errorf("bot %s extract archive: %w: %v", bot.ID, matchmakererr.ErrIO, err)
	}

	javaFiles, err := flatJavaFiles(workdir)
	if err != nil {
		return fmt.Errorf("bot %s list sources: %w: %v", bot.ID, matchmakererr.ErrIO, err)
	}
	if len(javaFiles) == 0 {
		return fmt.Errorf("bot %s: %w", bot.ID, matchmakererr.ErrNoSources)
	}

	playerPath := ""
	for _, f := range javaFiles {
		if strings.HasSuffix(f, "Player.java") {
			playerPath = f
			break
		}
	}
	if playerPath == "" {
		return fmt.Errorf("bot %s: %w", bot.ID, matchmakererr.ErrPlayerFileMissing)
	}

	hasMain, err := containsMainMethod(playerPath)
	if err != nil || !hasMain {
		return fmt.Errorf("bot %s: %w", bot.ID, matchmakererr.ErrMainMethodMissing)
	}

	if err := c.Runner.Run(ctx, "javac", javaFiles...); err != nil {
		return fmt.Errorf("bot %s: %w: %v", bot.ID, matchmakererr.ErrCompileFailed, err)
	}

	return nil
}

// flatJavaFiles lists .java entries directly inside dir. The scan is
// intentionally non-recursive: the evaluator expects sources at the
// archive root, so a bot that places Player.java in a subdirectory fails
// to compile.
func flatJavaFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) == ".java" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

func containsMainMethod(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if strings.Contains(scanner.Text(), "public static void main(") {
			return true, nil
		}
	}
	return false, scanner.Err()
}
