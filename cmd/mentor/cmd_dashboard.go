package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"artimentor/internal/assets"
	"artimentor/internal/roster"
)

var dashboardClearHistory bool

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the current roster and recent scans",
	RunE:  runDashboard,
}

func init() {
	dashboardCmd.Flags().BoolVar(&dashboardClearHistory, "clear-history", false, "Clear the recent-scans history and exit")
}

// assetResolver serves the optional image pack under .mentor/assets;
// with no pack every lookup bottoms out at the placeholder and the
// dashboard simply omits image paths.
func assetResolver() *assets.Resolver {
	ws, err := resolveWorkspace()
	if err != nil {
		return assets.NewResolver(nil)
	}
	return assets.NewResolver(os.DirFS(filepath.Join(ws, ".mentor", "assets")))
}

func runDashboard(cmd *cobra.Command, args []string) error {
	if dashboardClearHistory {
		db, err := openStore()
		if err != nil {
			return err
		}
		defer db.Close()
		if err := db.ClearScans(); err != nil {
			return err
		}
		fmt.Println("Scan history cleared.")
		return nil
	}

	stash, err := openStash()
	if err != nil {
		return err
	}
	state := stash.Load()

	if state.UID == "" {
		fmt.Println(warnStyle.Render("No active scan. Run: mentor scan <uid>"))
	} else {
		table, err := roster.Reference()
		if err != nil {
			return err
		}
		records := roster.Normalize(state.Roster, table)
		resolver := assetResolver()

		fmt.Println(titleStyle.Render(fmt.Sprintf("Current roster: %s (UID %s)", state.Nickname, state.UID)))
		printRoster(records)

		for _, rec := range records {
			if len(rec.Artifacts) == 0 {
				continue
			}
			fmt.Println()
			header := rec.DisplayName
			if img := resolver.CharacterImage(assets.CharacterKey(rec.DisplayName)); img != assets.PlaceholderImage {
				header += " " + mutedStyle.Render(img)
			}
			fmt.Println(headerStyle.Render(header))
			for _, slot := range roster.SlotOrder {
				art := rec.ArtifactBySlot(slot)
				if art == nil {
					fmt.Printf("  %-8s %s\n", slot, mutedStyle.Render("empty"))
					continue
				}
				line := fmt.Sprintf("  %-8s %s %s - %s %s", slot, art.Set, art.Level, art.MainStat, art.MainValue)
				if img := resolver.ArtifactImage(assets.SetKey(art.Set), slot); img != assets.PlaceholderImage {
					line += " " + mutedStyle.Render(img)
				}
				fmt.Println(line)
			}
		}

		if len(state.Context) > 0 {
			fmt.Println()
			fmt.Println(mutedStyle.Render(fmt.Sprintf("Benchmark context loaded: %d leaderboard entries", len(state.Context))))
		}
	}

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	scans, err := db.RecentScans()
	if err != nil {
		return err
	}
	if len(scans) > 0 {
		fmt.Println()
		fmt.Println(headerStyle.Render("Recent scans"))
		for _, scan := range scans {
			fmt.Printf("  %s  %-20s %2d characters  %s\n",
				scan.UID, scan.Nickname, scan.CharacterCount,
				mutedStyle.Render(scan.ScannedAt.Format("2006-01-02 15:04")))
		}
	}
	return nil
}
