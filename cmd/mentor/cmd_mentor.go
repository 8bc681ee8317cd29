package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"artimentor/internal/mentor"
	"artimentor/internal/roster"
)

var analyzeNotes string

var analyzeCmd = &cobra.Command{
	Use:   "analyze [character]",
	Short: "Ask the AI mentor to optimize a character's build",
	Long: `Builds the artifact pool for the character (every owned piece of the
set they are built around), attaches the leaderboard benchmark context
and asks the configured AI for an optimized build.

Requires a prior scan. Benchmarks come from the latest
'mentor leaderboard' fetch when present.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeNotes, "notes", "", "Extra constraints to give the mentor (e.g. 'keep the HP sands')")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := args[0]

	stash, err := openStash()
	if err != nil {
		return err
	}
	state := stash.Load()
	if state.UID == "" {
		return fmt.Errorf("no scan data; run: mentor scan <uid>")
	}

	table, err := roster.Reference()
	if err != nil {
		return err
	}
	records := roster.Normalize(state.Roster, table)

	char := mentor.FindCharacter(records, target)
	if char == nil {
		return fmt.Errorf("character %q not in the scanned roster; run: mentor dashboard", target)
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client, err := newLLMClient(ctx, db)
	if err != nil {
		return err
	}
	svc := mentor.NewService(client)

	if len(state.Context) == 0 {
		fmt.Println(warnStyle.Render("No benchmark context loaded; analysis will run without leaderboard targets."))
	}
	fmt.Println(mutedStyle.Render("Asking the mentor... this can take a minute."))

	result, err := svc.Analyze(ctx, mentor.AnalyzeRequest{
		Records: records,
		Target:  char.DisplayName,
		Context: state.Context,
		Notes:   analyzeNotes,
	})
	if err != nil {
		return err
	}

	// Keep the raw answer so chats can reference it later.
	state.Analysis = result.Raw
	if err := stash.Save(state); err != nil {
		return err
	}

	rec := result.Recommendation

	fmt.Println(titleStyle.Render("Mentor analysis: " + char.DisplayName))
	if rec.MentorAnalysis != "" {
		fmt.Println(renderMarkdown(rec.MentorAnalysis))
	}

	if !result.Structured {
		fmt.Println(warnStyle.Render("The AI response was not structured; tables are unavailable for this run."))
		return nil
	}

	fmt.Println(headerStyle.Render("Stats: current vs. target"))
	rows := mentor.StatRows(char.Stats, rec.FinalStats)
	rows = mentor.BenchmarkRows(rows, state.Context)
	fmt.Println(renderStatTable(rows))

	fmt.Println(headerStyle.Render("Recommended build"))
	for _, piece := range rec.RecommendedBuild {
		name := piece.Name
		if name == "" {
			name = piece.Set
		}
		fmt.Printf("  %-8s %s - %s %s\n", piece.Slot, name, piece.MainStat, piece.MainValue)
		if len(piece.Substats) > 0 {
			fmt.Printf("           %s\n", mutedStyle.Render(fmt.Sprintf("%v", piece.Substats)))
		}
	}
	fmt.Println()

	fmt.Println(headerStyle.Render("Swap plan"))
	fmt.Println(renderSwapPlan(rec.SwapPlanFor(char)))

	if len(rec.PriorityList) > 0 {
		fmt.Println(headerStyle.Render("Priorities"))
		for i, p := range rec.PriorityList {
			fmt.Printf("  %d. %s\n", i+1, p)
		}
	}
	return nil
}
