package leaderboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"artimentor/internal/logging"
	"artimentor/internal/roster"
)

// deepConcurrency bounds parallel showcase fetches so the upstream API
// is not hammered.
const deepConcurrency = 4

// ShowcaseFetcher retrieves the public showcase roster for a UID.
type ShowcaseFetcher func(ctx context.Context, uid string) ([]roster.CharacterRecord, error)

// DeepRow pairs a leaderboard entry with the matching character build
// pulled from that player's showcase.
type DeepRow struct {
	Entry     Entry
	Character roster.CharacterRecord
}

// DeepFetch pulls the top leaderboard entries for a calculation, then
// fetches each ranked player's showcase and keeps only the target
// character's build. Players whose showcase is unavailable or does not
// contain the target are skipped, not treated as errors.
func DeepFetch(ctx context.Context, client *Client, fetch ShowcaseFetcher, calculationID, targetCharacter string, limit int) ([]DeepRow, error) {
	entries, err := client.Fetch(ctx, calculationID, limit)
	if err != nil {
		return nil, err
	}

	timer := logging.StartTimer(logging.CategoryLeaderboard, "deep fetch")
	defer timer.Stop()

	results := make([]*DeepRow, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(deepConcurrency)

	for i, entry := range entries {
		g.Go(func() error {
			if entry.UID == "" {
				return nil
			}
			characters, err := fetch(gctx, entry.UID)
			if err != nil {
				logging.Get(logging.CategoryLeaderboard).Warn("showcase fetch for %s failed: %v", entry.UID, err)
				return nil
			}
			for _, ch := range characters {
				if ch.DisplayName == targetCharacter {
					results[i] = &DeepRow{Entry: entry, Character: ch}
					break
				}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact in rank order.
	rows := make([]DeepRow, 0, len(entries))
	for _, r := range results {
		if r != nil {
			rows = append(rows, *r)
		}
	}
	return rows, nil
}
