package play

import (
	"testing"

	"github.com/quizhive/backend/internal/models"
)

func TestGradeScalarCaseAndWhitespace(t *testing.T) {
	cases := []struct {
		submitted string
		correct   string
		want      bool
	}{
		{"Paris", "Paris", true},
		{"paris", "Paris", true},
		{"  PARIS  ", "Paris", true},
		{"Lyon", "Paris", false},
		{"", "Paris", false},
		{"", "", true},
	}
	for _, tc := range cases {
		if got := GradeScalar(tc.submitted, tc.correct); got != tc.want {
			t.Fatalf("GradeScalar(%q, %q) = %v, want %v", tc.submitted, tc.correct, got, tc.want)
		}
	}
}

func TestGradeRankingFullSequence(t *testing.T) {
	correct := []string{"first", "second", "third"}

	if !GradeRanking([]string{"First", " second", "THIRD"}, correct) {
		t.Fatal("expected case-insensitive full match to pass")
	}
	if GradeRanking([]string{"second", "first", "third"}, correct) {
		t.Fatal("expected swapped positions to fail")
	}
	if GradeRanking([]string{"first", "second"}, correct) {
		t.Fatal("expected shorter submission to fail")
	}
	if GradeRanking(nil, correct) {
		t.Fatal("expected nil submission to fail")
	}
	if GradeRanking(nil, nil) {
		t.Fatal("expected empty correct order to never pass")
	}
}

func TestGradeAwardsFullPointsOrZero(t *testing.T) {
	mcq := &models.Question{Type: models.QuestionMCQ, CorrectAnswer: "Paris", Points: 15}

	ok, pts := Grade(mcq, "paris", nil)
	if !ok || pts != 15 {
		t.Fatalf("expected (true, 15), got (%v, %d)", ok, pts)
	}
	ok, pts = Grade(mcq, "Lyon", nil)
	if ok || pts != 0 {
		t.Fatalf("expected (false, 0), got (%v, %d)", ok, pts)
	}
}

func TestGradeRankingQuestionUsesOrder(t *testing.T) {
	q := &models.Question{
		Type:         models.QuestionRanking,
		CorrectOrder: []string{"a", "b", "c"},
		Points:       20,
	}

	ok, pts := Grade(q, "", []string{"a", "b", "c"})
	if !ok || pts != 20 {
		t.Fatalf("expected (true, 20), got (%v, %d)", ok, pts)
	}
	ok, pts = Grade(q, "", []string{"a", "c", "b"})
	if ok || pts != 0 {
		t.Fatalf("expected (false, 0), got (%v, %d)", ok, pts)
	}
}
