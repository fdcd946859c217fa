package aigen

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrUnparsable means no recovery step could turn the model output into questions.
var ErrUnparsable = errors.New("model output could not be parsed as questions")

// GeneratedQuestion is one question as emitted by the model.
type GeneratedQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

var (
	adjacentObjects = regexp.MustCompile(`\}\s*\{`)
	jsonObject      = regexp.MustCompile(`\{[^{}]*\}`)
)

// ParseQuestions recovers a question array from raw model output. Models
// wrap JSON in code fences, drop array brackets, or omit commas between
// objects often enough that a single json.Unmarshal is not sufficient.
// Recovery proceeds in order:
//  1. strip code fences and parse directly
//  2. heal missing commas between adjacent objects and re-parse
//  3. extract individual objects by regex and rebuild the array
//
// A bare single object is coerced to a one-element array at every step.
func ParseQuestions(raw string) ([]GeneratedQuestion, error) {
	clean := stripFences(raw)

	if qs, err := tryParse(clean); err == nil {
		return qs, nil
	}

	healed := adjacentObjects.ReplaceAllString(clean, "},{")
	if !strings.HasPrefix(strings.TrimSpace(healed), "[") {
		healed = "[" + healed + "]"
	}
	if qs, err := tryParse(healed); err == nil {
		return qs, nil
	}

	objects := jsonObject.FindAllString(clean, -1)
	if len(objects) > 0 {
		rebuilt := "[" + strings.Join(objects, ",") + "]"
		if qs, err := tryParse(rebuilt); err == nil {
			return qs, nil
		}
	}

	return nil, ErrUnparsable
}

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(strings.Trim(clean, "`"))
}

func tryParse(s string) ([]GeneratedQuestion, error) {
	var qs []GeneratedQuestion
	if err := json.Unmarshal([]byte(s), &qs); err == nil {
		return qs, nil
	}
	var single GeneratedQuestion
	if err := json.Unmarshal([]byte(s), &single); err == nil && single.Question != "" {
		return []GeneratedQuestion{single}, nil
	}
	return nil, ErrUnparsable
}

// FilterUsable drops questions that do not carry enough options to play.
// Dropping is silent; a partial batch is better than none.
func FilterUsable(qs []GeneratedQuestion) []GeneratedQuestion {
	out := qs[:0]
	for _, q := range qs {
		if q.Question == "" || q.CorrectAnswer == "" || len(q.Options) < 4 {
			continue
		}
		out = append(out, q)
	}
	return out
}
