package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/batalja/roundrunner/internal/compiler"
	"github.com/batalja/roundrunner/internal/config"
	"github.com/batalja/roundrunner/internal/model"
	"github.com/batalja/roundrunner/internal/qualifier"
	"github.com/batalja/roundrunner/internal/store"
)

var qualifyCompetitionID string

var qualifyCmd = &cobra.Command{
	Use:   "qualify",
	Short: "Compile every team's bots and report which teams qualify for the next round",
	Args:  cobra.NoArgs,
	RunE:  runQualify,
}

func init() {
	qualifyCmd.Flags().StringVar(&qualifyCompetitionID, "competition-id", "", "competition to preview (required)")
	_ = qualifyCmd.MarkFlagRequired("competition-id")
}

func runQualify(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()
	st, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect to store: %w", err)
	}
	defer st.Close()

	teams, err := st.GetTeams(ctx, qualifyCompetitionID)
	if err != nil {
		return fmt.Errorf("load teams for %s: %w", qualifyCompetitionID, err)
	}

	comp := compiler.New(cfg.ResourcesDir)
	qualified := qualifier.Qualify(ctx, teams, st, comp)

	qualifiedIDs := make(map[string]bool, len(qualified))
	for _, t := range qualified {
		qualifiedIDs[t.ID] = true
	}

	printQualifyTable(os.Stdout, teams, qualifiedIDs)
	return nil
}

func printQualifyTable(w io.Writer, teams []model.Team, qualified map[string]bool) {
	table := tablewriter.NewTable(w, tablewriter.WithConfig(tablewriter.Config{
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		Header: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}))
	table.Header("TEAM", "BOT1", "BOT2", "QUALIFIES")
	for _, t := range teams {
		status := "no"
		if qualified[t.ID] {
			status = "yes"
		}
		table.Append(t.ID, t.Bot1ID, t.Bot2ID, status)
	}
	table.Render()
}
