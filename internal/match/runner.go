// Package match runs a single evaluator match: stages the four bot
// directories, spawns the evaluator with piped stdout/stderr, enforces a
// wall-clock timeout, archives the transcript, and hands off to the parser.
package match

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/batalja/roundrunner/internal/archiver"
	"github.com/batalja/roundrunner/internal/gameresult"
	"github.com/batalja/roundrunner/internal/matchmakererr"
	"github.com/batalja/roundrunner/internal/model"
	"github.com/batalja/roundrunner/internal/stage"

	"github.com/google/uuid"
)

// DefaultTimeout is the evaluator's hard wall-clock budget. Past this, the
// child is killed but the match still succeeds.
const DefaultTimeout = 120 * time.Second

// Runner executes matches under ResourcesDir, the same root the compiler
// and reaper use.
type Runner struct {
	ResourcesDir string
	Archiver     archiver.Archiver
	Timeout      time.Duration

	// javaBin overrides the evaluator binary name; tests substitute a stub
	// script in place of a real `java -jar` invocation.
	javaBin string
}

// New builds a Runner backed by the real Archiver and the system `java`.
func New(resourcesDir string) *Runner {
	return &Runner{ResourcesDir: resourcesDir, Archiver: archiver.Zip{}, Timeout: DefaultTimeout}
}

// Run stages, executes, and parses one match between team1 and team2,
// returning a fully populated NewGame. Any staging or spawn failure aborts
// the match with ErrIO; a timeout is not an error — the match still
// completes and is parsed from whatever the evaluator emitted before being
// killed.
func (r *Runner) Run(ctx context.Context, comp model.Competition, team1, team2 model.Team) (*gameresult.NewGame, error) {
	matchID := uuid.New()
	matchDir := filepath.Join(r.ResourcesDir, "matches", matchID.String())
	if err := stage.MkdirAll(matchDir); err != nil {
		return nil, fmt.Errorf("match %s stage dir: %w: %v", matchID, matchmakererr.ErrIO, err)
	}

	gamesDir := filepath.Join(r.ResourcesDir, "games", strconv.Itoa(comp.Round))
	if err := stage.MkdirAll(gamesDir); err != nil {
		return nil, fmt.Errorf("match %s games dir: %w: %v", matchID, matchmakererr.ErrIO, err)
	}

	slotBotIDs := [4]string{team1.Bot1ID, team1.Bot2ID, team2.Bot1ID, team2.Bot2ID}
	var slotPaths [4]string
	for i, botID := range slotBotIDs {
		src := filepath.Join(r.ResourcesDir, "workdir", "bots", botID)
		dst := filepath.Join(matchDir, botID)
		if err := stage.RecursiveCopy(src, dst); err != nil {
			return nil, fmt.Errorf("match %s stage bot %s: %w: %v", matchID, botID, matchmakererr.ErrIO, err)
		}
		abs, err := filepath.Abs(dst)
		if err != nil {
			return nil, fmt.Errorf("match %s resolve bot %s: %w: %v", matchID, botID, matchmakererr.ErrIO, err)
		}
		slotPaths[i] = abs
	}

	evaluatorJar := filepath.Join(r.ResourcesDir, "gamefiles", "Evaluator.jar")
	args := []string{"-jar", evaluatorJar, "--gui=false", slotPaths[0], slotPaths[1], slotPaths[2], slotPaths[3]}

	stdoutLines, stderrLines, err := r.runEvaluator(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("match %s spawn evaluator: %w: %v", matchID, matchmakererr.ErrIO, err)
	}

	zipPath := filepath.Join(gamesDir, matchID.String()+".zip")
	if err := r.Archiver.SaveToZip(strings.Join(stdoutLines, "\n"), zipPath); err != nil {
		return nil, fmt.Errorf("match %s archive stdout: %w: %v", matchID, matchmakererr.ErrIO, err)
	}

	// The evaluator's first stderr line is always the sentinel "...". A
	// differing trimmed concatenation means the game (or a hosted bot)
	// raised, and the raw transcript is preserved alongside the zip.
	if joined := strings.TrimSpace(strings.Join(stderrLines, "\n")); joined != "..." {
		errPath := filepath.Join(gamesDir, matchID.String()+"_error.txt")
		if writeErr := os.WriteFile(errPath, []byte(strings.Join(stderrLines, "\n")), 0o644); writeErr != nil {
			log.Printf("[Match] %s error file write failed: %v; stderr: %s", matchID, writeErr, joined)
		}
	}

	game := gameresult.New(comp.ID, comp.Round, team1.ID, team2.ID, team1.Bot1ID, team1.Bot2ID, team2.Bot1ID, team2.Bot2ID)
	game.LogFilePath = zipPath
	gameresult.Parse(stdoutLines, stderrLines, game)

	return game, nil
}

// runEvaluator spawns the evaluator, drains stdout and stderr concurrently,
// and waits with a hard timeout. On trip, the child is force-killed and
// still reaped via Wait before returning, so no zombie is left behind; the
// collected lines up to that point are returned with a nil error, since a
// timeout is not itself a match failure.
func (r *Runner) runEvaluator(ctx context.Context, args []string) ([]string, []string, error) {
	bin := r.javaBin
	if bin == "" {
		bin = "java"
	}
	cmd := exec.Command(bin, args...)

	stdoutPipe, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, err
	}
	stderrPipe, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, nil, err
	}

	var stdoutLines, stderrLines []string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); stdoutLines = drainLines(stdoutPipe) }()
	go func() { defer wg.Done(); stderrLines = drainLines(stderrPipe) }()

	// Wait closes both pipes once the child exits, so it runs only after the
	// drains have read to EOF; otherwise unread output would be lost.
	waitErr := make(chan error, 1)
	go func() { wg.Wait(); waitErr <- cmd.Wait() }()

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-waitErr:
		wg.Wait()
	case <-timer.C:
		killAndReap(cmd, waitErr, stdoutPipe, stderrPipe)
		wg.Wait()
	case <-ctx.Done():
		killAndReap(cmd, waitErr, stdoutPipe, stderrPipe)
		wg.Wait()
	}

	return stdoutLines, stderrLines, nil
}

func killAndReap(cmd *exec.Cmd, waitErr <-chan error, pipes ...io.Closer) {
	if cmd.Process != nil {
		if err := cmd.Process.Kill(); err != nil {
			log.Printf("[Match] kill failed: %v", err)
		}
	}
	// Closing the read ends ends the drains even if a leaked grandchild
	// still holds the write ends open.
	for _, p := range pipes {
		p.Close()
	}
	if err := <-waitErr; err != nil {
		log.Printf("[Match] post-kill wait: %v", err)
	}
}

func drainLines(r io.Reader) []string {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines
}
