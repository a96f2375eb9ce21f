package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/batalja/roundrunner/internal/compiler"
	"github.com/batalja/roundrunner/internal/config"
	"github.com/batalja/roundrunner/internal/match"
	"github.com/batalja/roundrunner/internal/reaper"
	"github.com/batalja/roundrunner/internal/round"
	"github.com/batalja/roundrunner/internal/shutdown"
	"github.com/batalja/roundrunner/internal/store"
)

var runRoundCompetitionID string

var runRoundCmd = &cobra.Command{
	Use:   "run-round",
	Short: "Run one round for a competition: qualify, pair, play, score, advance",
	Args:  cobra.NoArgs,
	RunE:  runRunRound,
}

func init() {
	runRoundCmd.Flags().StringVar(&runRoundCompetitionID, "competition-id", "", "competition to run a round for (required)")
	_ = runRoundCmd.MarkFlagRequired("competition-id")
}

func runRunRound(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is not set")
	}

	ctx := shutdown.SetupSignalHandler()

	st, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer st.Close()

	matcher := match.New(cfg.ResourcesDir)
	matcher.Timeout = cfg.MatchTimeout

	runner := &round.Runner{
		Store:       st,
		Compiler:    compiler.New(cfg.ResourcesDir),
		Matcher:     matcher,
		Reaper:      reaper.New(cfg.ResourcesDir),
		WorkerCount: cfg.WorkerCount,
	}

	log.Printf("[Round] starting round for competition %s", runRoundCompetitionID)
	if err := runner.RunRound(ctx, runRoundCompetitionID); err != nil {
		return fmt.Errorf("run round for %s: %w", runRoundCompetitionID, err)
	}
	log.Printf("[Round] competition %s round complete", runRoundCompetitionID)
	return nil
}
