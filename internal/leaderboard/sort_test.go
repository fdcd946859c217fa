package leaderboard

import (
	"testing"
	"time"
)

func ts(offset int) *time.Time {
	t := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(offset) * time.Second)
	return &t
}

func TestSortEntriesScoreDescending(t *testing.T) {
	entries := []*Entry{
		{DisplayName: "low", Score: 10},
		{DisplayName: "high", Score: 50},
		{DisplayName: "mid", Score: 30},
	}
	SortEntries(entries)
	if entries[0].DisplayName != "high" || entries[1].DisplayName != "mid" || entries[2].DisplayName != "low" {
		t.Fatalf("unexpected order: %s, %s, %s", entries[0].DisplayName, entries[1].DisplayName, entries[2].DisplayName)
	}
}

func TestSortEntriesAttemptedBreaksScoreTies(t *testing.T) {
	entries := []*Entry{
		{DisplayName: "fewer", Score: 30, Attempted: 3, CompletedAt: ts(0)},
		{DisplayName: "more", Score: 30, Attempted: 5, CompletedAt: ts(10)},
	}
	SortEntries(entries)
	if entries[0].DisplayName != "more" {
		t.Fatalf("expected more attempts to rank first, got %s", entries[0].DisplayName)
	}
}

func TestSortEntriesEarlierCompletionBreaksFullTies(t *testing.T) {
	entries := []*Entry{
		{DisplayName: "late", Score: 30, Attempted: 4, CompletedAt: ts(60)},
		{DisplayName: "early", Score: 30, Attempted: 4, CompletedAt: ts(5)},
	}
	SortEntries(entries)
	if entries[0].DisplayName != "early" {
		t.Fatalf("expected earlier completion to rank first, got %s", entries[0].DisplayName)
	}
}

func TestSortEntriesIncompleteSortsLastInTie(t *testing.T) {
	entries := []*Entry{
		{DisplayName: "unfinished", Score: 30, Attempted: 4},
		{DisplayName: "finished", Score: 30, Attempted: 4, CompletedAt: ts(0)},
	}
	SortEntries(entries)
	if entries[0].DisplayName != "finished" {
		t.Fatalf("expected completed player to rank first, got %s", entries[0].DisplayName)
	}
}
