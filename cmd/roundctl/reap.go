package main

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/batalja/roundrunner/internal/config"
	"github.com/batalja/roundrunner/internal/reaper"
)

var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Remove leftover match staging directories and kill stray evaluator processes",
	Args:  cobra.NoArgs,
	RunE:  runReap,
}

func runReap(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	r := reaper.New(cfg.ResourcesDir)
	if err := r.Clean(context.Background()); err != nil {
		return fmt.Errorf("reap: %w", err)
	}
	log.Printf("[Reap] cleanup complete under %s", cfg.ResourcesDir)
	return nil
}
