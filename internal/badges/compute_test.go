package badges

import (
	"slices"
	"testing"
)

func TestComputeNewUserHasNoBadges(t *testing.T) {
	if got := Compute(0, 0, 0); len(got) != 0 {
		t.Fatalf("expected no badges, got %v", got)
	}
}

func TestComputeFirstPlay(t *testing.T) {
	got := Compute(1, 10, 0)
	want := []string{"first_quiz"}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestComputeLaddersAccumulate(t *testing.T) {
	got := Compute(12, 250, 1)
	want := []string{
		"first_quiz", "quiz_enthusiast", "quiz_veteran",
		"point_collector", "point_hunter", "point_champion",
		"first_host",
	}
	if !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestComputeTopOfEveryLadder(t *testing.T) {
	got := Compute(50, 500, 10)
	if len(got) != 10 {
		t.Fatalf("expected all 10 badges, got %d: %v", len(got), got)
	}
}

func TestComputeExactThresholds(t *testing.T) {
	got := Compute(5, 50, 0)
	if !slices.Contains(got, "quiz_enthusiast") {
		t.Fatalf("expected quiz_enthusiast at exactly 5 plays, got %v", got)
	}
	if !slices.Contains(got, "point_collector") {
		t.Fatalf("expected point_collector at exactly 50 points, got %v", got)
	}
	if slices.Contains(got, "quiz_veteran") {
		t.Fatalf("did not expect quiz_veteran at 5 plays, got %v", got)
	}
}
