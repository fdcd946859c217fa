package leaderboard

import "sort"

// SortEntries orders the final standings: score descending, then more
// attempted answers first, then earliest completion. Players who have not
// completed sort after those who have at the same score and attempt count.
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Attempted != b.Attempted {
			return a.Attempted > b.Attempted
		}
		switch {
		case a.CompletedAt == nil && b.CompletedAt == nil:
			return false
		case a.CompletedAt == nil:
			return false
		case b.CompletedAt == nil:
			return true
		default:
			return a.CompletedAt.Before(*b.CompletedAt)
		}
	})
}
