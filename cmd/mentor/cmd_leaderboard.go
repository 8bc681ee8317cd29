package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"artimentor/internal/enka"
	"artimentor/internal/leaderboard"
	"artimentor/internal/mentor"
	"artimentor/internal/roster"
)

var (
	lbLimit     int
	lbDeep      bool
	lbCharacter string
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [calculation-id]",
	Short: "Fetch leaderboard benchmarks for a calculation ID",
	Long: `Fetches the top ranked builds for an akasha calculation ID and stores
them as the benchmark context for later analysis.

With --deep, each ranked player's showcase is fetched too and the stats
are taken from their actual build of --character. Deep fetches are
slower and rate-limited upstream.`,
	Args: cobra.ExactArgs(1),
	RunE: runLeaderboard,
}

func init() {
	leaderboardCmd.Flags().IntVar(&lbLimit, "limit", leaderboard.DefaultLimit, "Number of entries to fetch (5-100)")
	leaderboardCmd.Flags().BoolVar(&lbDeep, "deep", false, "Fetch each ranked player's showcase build")
	leaderboardCmd.Flags().StringVar(&lbCharacter, "character", "", "Target character for --deep (defaults to the analyzed one)")
}

func runLeaderboard(cmd *cobra.Command, args []string) error {
	calcID := args[0]
	if !leaderboard.ValidCalculationID(calcID) {
		return fmt.Errorf("calculation ID must be at least 5 digits, got %q", calcID)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	client := leaderboard.NewClient()

	var entries []leaderboard.Entry
	if lbDeep {
		if lbCharacter == "" {
			return fmt.Errorf("--deep requires --character")
		}
		fmt.Println(mutedStyle.Render("Deep fetch: pulling ranked showcases, this can take a while..."))

		enkaClient := enka.NewClient()
		table, err := roster.Reference()
		if err != nil {
			return err
		}
		fetch := func(ctx context.Context, uid string) ([]roster.CharacterRecord, error) {
			showcase, err := enkaClient.FetchShowcase(ctx, uid)
			if err != nil {
				return nil, err
			}
			return showcase.Records(table), nil
		}

		rows, err := leaderboard.DeepFetch(ctx, client, fetch, calcID, lbCharacter, lbLimit)
		if err != nil {
			return err
		}
		entries = mentor.BenchmarkEntries(rows)
	} else {
		var err error
		entries, err = client.Fetch(ctx, calcID, lbLimit)
		if err != nil {
			return err
		}
	}

	if len(entries) == 0 {
		return fmt.Errorf("no usable leaderboard entries for %s", calcID)
	}

	stash, err := openStash()
	if err != nil {
		return err
	}
	state := stash.Load()
	state.Context = entries
	if err := stash.Save(state); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Leaderboard %s, top %d", calcID, len(entries))))
	fmt.Println(headerStyle.Render(fmt.Sprintf("%4s %-18s %-24s %8s %8s %8s %12s", "Rank", "Player", "Weapon", "ATK", "CR", "CD", "Result")))
	for _, e := range entries {
		fmt.Printf("%4d %-18s %-24s %8.0f %7.1f%% %7.1f%% %12.0f\n",
			e.Rank, e.Player, e.Weapon, e.ATK, e.CritRate, e.CritDMG, e.DMGResult)
	}
	fmt.Println()
	fmt.Println(mutedStyle.Render("Context saved. It will be used by: mentor analyze"))
	return nil
}
