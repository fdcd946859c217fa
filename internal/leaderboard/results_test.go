package leaderboard

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestResultEntryRankingTranscript(t *testing.T) {
	entry := ResultEntry{
		QuestionID:     uuid.New(),
		Question:       "Order the planets by distance from the sun",
		Type:           "ranking",
		Options:        []string{"Earth", "Mercury", "Venus"},
		CorrectOrder:   []string{"Mercury", "Venus", "Earth"},
		SubmittedOrder: []string{"Venus", "Mercury", "Earth"},
		IsCorrect:      false,
		PointsAwarded:  0,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var correctOrder, submittedOrder []string
	if err := json.Unmarshal(decoded["correct_order"], &correctOrder); err != nil {
		t.Fatalf("correct_order missing from transcript: %v", err)
	}
	if err := json.Unmarshal(decoded["submitted_order"], &submittedOrder); err != nil {
		t.Fatalf("submitted_order missing from transcript: %v", err)
	}
	if strings.Join(correctOrder, ",") != "Mercury,Venus,Earth" {
		t.Fatalf("unexpected correct_order: %v", correctOrder)
	}
	if strings.Join(submittedOrder, ",") != "Venus,Mercury,Earth" {
		t.Fatalf("unexpected submitted_order: %v", submittedOrder)
	}

	// Scalar fields stay out of a ranking row.
	if _, ok := decoded["correct_answer"]; ok {
		t.Fatal("empty correct_answer should be omitted")
	}
	if _, ok := decoded["submitted_answer"]; ok {
		t.Fatal("empty submitted_answer should be omitted")
	}
}

func TestResultEntryScalarTranscript(t *testing.T) {
	entry := ResultEntry{
		QuestionID:      uuid.New(),
		Question:        "Capital of France?",
		Type:            "mcq",
		Options:         []string{"Paris", "Lyon"},
		CorrectAnswer:   "Paris",
		SubmittedAnswer: "Paris",
		IsCorrect:       true,
		PointsAwarded:   10,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := decoded["correct_answer"]; !ok {
		t.Fatal("correct_answer missing from scalar transcript")
	}
	if _, ok := decoded["correct_order"]; ok {
		t.Fatal("empty correct_order should be omitted")
	}
}
