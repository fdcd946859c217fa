package sessions

import (
	"testing"

	"github.com/google/uuid"

	"github.com/quizhive/backend/internal/models"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{
			ID:            uuid.New(),
			Text:          "Capital of France?",
			Type:          models.QuestionMCQ,
			Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
			CorrectAnswer: "Paris",
			Points:        10,
		},
		{
			ID:            uuid.New(),
			Text:          "Largest ocean?",
			Type:          models.QuestionMCQ,
			Options:       []string{"Pacific", "Atlantic", "Indian", "Arctic"},
			CorrectAnswer: "Pacific",
			Points:        10,
		},
		{
			ID:           uuid.New(),
			Text:         "Order the planets by distance from the sun",
			Type:         models.QuestionRanking,
			Options:      []string{"Earth", "Mercury", "Venus"},
			CorrectOrder: []string{"Mercury", "Venus", "Earth"},
			Points:       20,
		},
	}
}

func TestShuffleForPlayerPreservesQuestions(t *testing.T) {
	questions := sampleQuestions()
	out := ShuffleForPlayer(questions)
	if len(out) != len(questions) {
		t.Fatalf("expected %d questions, got %d", len(questions), len(out))
	}
	byID := make(map[uuid.UUID]models.Question)
	for _, q := range questions {
		byID[q.ID] = q
	}
	for _, pq := range out {
		src, ok := byID[pq.ID]
		if !ok {
			t.Fatalf("unknown question id %s in output", pq.ID)
		}
		if pq.Text != src.Text || pq.Points != src.Points || pq.Type != src.Type {
			t.Fatalf("question %s mutated in shuffle", pq.ID)
		}
		if len(pq.Options) != len(src.Options) {
			t.Fatalf("question %s option count changed: %d vs %d", pq.ID, len(pq.Options), len(src.Options))
		}
	}
}

func TestShuffleForPlayerKeepsOptionSet(t *testing.T) {
	questions := sampleQuestions()
	out := ShuffleForPlayer(questions)
	for _, pq := range out {
		var src models.Question
		for _, q := range questions {
			if q.ID == pq.ID {
				src = q
			}
		}
		want := make(map[string]int)
		for _, o := range src.Options {
			want[o]++
		}
		for _, o := range pq.Options {
			want[o]--
		}
		for o, n := range want {
			if n != 0 {
				t.Fatalf("question %s option multiset changed at %q", pq.ID, o)
			}
		}
	}
}

func TestShuffleForPlayerDoesNotMutateInput(t *testing.T) {
	questions := sampleQuestions()
	original := append([]string(nil), questions[0].Options...)
	for i := 0; i < 20; i++ {
		ShuffleForPlayer(questions)
	}
	for i, o := range original {
		if questions[0].Options[i] != o {
			t.Fatal("shuffle mutated the source question options")
		}
	}
}
