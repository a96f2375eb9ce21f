// Package shutdown wires SIGINT/SIGTERM into a cancellable context for the
// round pipeline: once the context is done, a round in flight dispatches no
// further matches and kills any evaluator still running, then carries on
// with its remaining steps; a second signal forces an immediate exit.
package shutdown

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// SetupSignalHandler returns a context cancelled on the first SIGINT or
// SIGTERM. A second signal before the process exits forces os.Exit(1)
// rather than waiting on any in-flight work.
func SetupSignalHandler() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		sig := <-sigCh
		log.Printf("[Signal] received %v, cancelling round context", sig)
		cancel()

		sig = <-sigCh
		log.Printf("[Signal] received second %v, forcing exit", sig)
		os.Exit(1)
	}()

	return ctx
}
