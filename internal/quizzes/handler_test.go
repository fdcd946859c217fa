package quizzes

import (
	"testing"

	"github.com/quizhive/backend/internal/models"
)

func TestQuestionInputDefaultsTypeAndPoints(t *testing.T) {
	in := QuestionInput{
		Text:          "Capital of France?",
		Options:       []string{"Paris", "Lyon", "Nice", "Lille"},
		CorrectAnswer: "Paris",
	}
	q, err := in.toModel()
	if err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}
	if q.Type != models.QuestionMCQ {
		t.Fatalf("expected default type mcq, got %s", q.Type)
	}
	if q.Points != 10 {
		t.Fatalf("expected default 10 points, got %d", q.Points)
	}
}

func TestQuestionInputRejectsMissingText(t *testing.T) {
	in := QuestionInput{CorrectAnswer: "Paris"}
	if _, err := in.toModel(); err == nil {
		t.Fatal("expected error for missing text")
	}
}

func TestQuestionInputRejectsMissingAnswer(t *testing.T) {
	in := QuestionInput{Text: "Capital of France?"}
	if _, err := in.toModel(); err == nil {
		t.Fatal("expected error for missing correct answer")
	}
}

func TestQuestionInputRankingRequiresOrder(t *testing.T) {
	in := QuestionInput{
		Text: "Order the planets",
		Type: string(models.QuestionRanking),
	}
	if _, err := in.toModel(); err == nil {
		t.Fatal("expected error for ranking question without correct order")
	}

	in.CorrectOrder = []string{"Mercury", "Venus", "Earth"}
	q, err := in.toModel()
	if err != nil {
		t.Fatalf("expected valid ranking input, got %v", err)
	}
	if q.Type != models.QuestionRanking {
		t.Fatalf("expected ranking type, got %s", q.Type)
	}
}

func TestQuestionInputRejectsUnknownType(t *testing.T) {
	in := QuestionInput{Text: "?", Type: "essay", CorrectAnswer: "x"}
	if _, err := in.toModel(); err == nil {
		t.Fatal("expected error for unknown question type")
	}
}
