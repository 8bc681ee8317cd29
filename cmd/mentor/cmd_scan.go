package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"artimentor/internal/archive"
	"artimentor/internal/assets"
	"artimentor/internal/enka"
	"artimentor/internal/roster"
	"artimentor/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan [uid]",
	Short: "Scan a public character showcase by UID",
	Long: `Fetches the public showcase for a 9-digit account UID, normalizes the
characters and artifacts, and makes them the current working roster.
The raw snapshot is archived under .mentor/scans/<nickname>_<uid>/.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	uid := strings.TrimSpace(args[0])
	if !enka.ValidUID(uid) {
		return fmt.Errorf("UID must be exactly 9 digits, got %q", uid)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	fmt.Println(titleStyle.Render("Showcase scan"))
	fmt.Println(mutedStyle.Render("Fetching UID " + uid + "..."))

	showcase, err := enka.NewClient().FetchShowcase(ctx, uid)
	if err != nil {
		return err
	}

	// Working state: replaced wholesale on every scan.
	stash, err := openStash()
	if err != nil {
		return err
	}
	if err := stash.Save(&store.StashState{
		UID:      uid,
		Nickname: showcase.Player.Nickname,
		Roster:   showcase.Characters,
	}); err != nil {
		return err
	}

	// Durable history.
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.RecordScan(uid, showcase.Player.Nickname, len(showcase.Characters)); err != nil {
		return err
	}

	// Raw snapshot archive.
	root, err := scansRoot()
	if err != nil {
		return err
	}
	folder := assets.CharacterKey(showcase.Player.Nickname) + "_" + uid
	if _, err := archive.NewManager(root).SaveScan(folder, showcase.Raw); err != nil {
		logger.Warn("could not archive raw snapshot", zap.Error(err))
	}

	table, err := roster.Reference()
	if err != nil {
		return err
	}
	records := showcase.Records(table)

	fmt.Printf("%s %s (AR %d), %d showcased characters\n\n",
		successStyle.Render("Scanned"), showcase.Player.Nickname, showcase.Player.Level, len(records))
	printRoster(records)
	return nil
}

func printRoster(records []roster.CharacterRecord) {
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-22s %5s %-8s %10s %8s %8s %8s", "Character", "Level", "Element", "HP", "ATK", "CR", "CD")))
	for _, rec := range records {
		element := rec.Element
		if element == "" {
			element = "-"
		}
		fmt.Printf("%-22s %5d %-8s %10s %8s %8s %8s\n",
			rec.DisplayName, rec.Level, element,
			statCell(rec.Stats.HP, false),
			statCell(rec.Stats.ATK, false),
			statCell(rec.Stats.CritRate, true),
			statCell(rec.Stats.CritDMG, true))
	}
}

func statCell(stat roster.Stat, percent bool) string {
	if !stat.Known {
		return "-"
	}
	if percent {
		return fmt.Sprintf("%.1f%%", stat.Value)
	}
	return fmt.Sprintf("%.0f", stat.Value)
}
