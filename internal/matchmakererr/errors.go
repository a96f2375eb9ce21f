// Package matchmakererr defines the error taxonomy shared across the round
// pipeline: database/IO failures that abort a round, and per-bot compile
// failures that only drop a team.
package matchmakererr

import "errors"

var (
	// ErrDatabase marks any store failure. Propagates to the caller of
	// RunRound and aborts the round; never retried.
	ErrDatabase = errors.New("database error")

	// ErrIO marks a filesystem, process-spawn, or archiver failure at the
	// orchestration level.
	ErrIO = errors.New("io error")

	// ErrInvalidPath marks a path that cannot be rendered as UTF-8.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPlayerFileMissing marks a bot archive with no Player.java.
	ErrPlayerFileMissing = errors.New("Player.java not found")

	// ErrMainMethodMissing marks a Player.java with no main method.
	ErrMainMethodMissing = errors.New("Player.java has no main method")

	// ErrCompileFailed marks a non-zero exit from the Java compiler.
	ErrCompileFailed = errors.New("compile failed")

	// ErrNoSources marks a bot workdir with no .java files after extraction.
	ErrNoSources = errors.New("no Java sources found")
)
