package aigen

import (
	"errors"
	"testing"
)

const validArray = `[
  {"question":"Capital of France?","options":["Paris","Lyon","Nice","Lille"],"correct_answer":"Paris"},
  {"question":"2+2?","options":["3","4","5","6"],"correct_answer":"4"}
]`

func TestParseQuestionsCleanArray(t *testing.T) {
	qs, err := ParseQuestions(validArray)
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[0].CorrectAnswer != "Paris" {
		t.Fatalf("unexpected correct answer %q", qs[0].CorrectAnswer)
	}
}

func TestParseQuestionsStripsCodeFences(t *testing.T) {
	raw := "```json\n" + validArray + "\n```"
	qs, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("expected fenced parse to succeed, got %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}

func TestParseQuestionsCoercesSingleObject(t *testing.T) {
	raw := `{"question":"Capital of France?","options":["Paris","Lyon","Nice","Lille"],"correct_answer":"Paris"}`
	qs, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("expected single object to parse, got %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question, got %d", len(qs))
	}
}

func TestParseQuestionsHealsMissingCommas(t *testing.T) {
	raw := `{"question":"A?","options":["1","2","3","4"],"correct_answer":"1"}
{"question":"B?","options":["1","2","3","4"],"correct_answer":"2"}`
	qs, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("expected healed parse to succeed, got %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
	if qs[1].CorrectAnswer != "2" {
		t.Fatalf("unexpected second answer %q", qs[1].CorrectAnswer)
	}
}

func TestParseQuestionsExtractsObjectsFromNoise(t *testing.T) {
	raw := `Here are your questions:
{"question":"A?","options":["1","2","3","4"],"correct_answer":"1"} and also
{"question":"B?","options":["1","2","3","4"],"correct_answer":"2"}
Hope this helps!`
	qs, err := ParseQuestions(raw)
	if err != nil {
		t.Fatalf("expected extraction to succeed, got %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(qs))
	}
}

func TestParseQuestionsUnparsable(t *testing.T) {
	_, err := ParseQuestions("sorry, I cannot help with that")
	if !errors.Is(err, ErrUnparsable) {
		t.Fatalf("expected ErrUnparsable, got %v", err)
	}
}

func TestFilterUsableDropsShortOptionLists(t *testing.T) {
	qs := []GeneratedQuestion{
		{Question: "A?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "1"},
		{Question: "B?", Options: []string{"1", "2"}, CorrectAnswer: "1"},
		{Question: "", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: "1"},
		{Question: "C?", Options: []string{"1", "2", "3", "4"}, CorrectAnswer: ""},
	}
	usable := FilterUsable(qs)
	if len(usable) != 1 {
		t.Fatalf("expected 1 usable question, got %d", len(usable))
	}
	if usable[0].Question != "A?" {
		t.Fatalf("unexpected survivor %q", usable[0].Question)
	}
}
