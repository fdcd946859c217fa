package aigen

import "fmt"

const systemPrompt = `You generate multiple-choice quiz questions.

Rules:
1. Every question has exactly one correct answer.
2. Every question has at least 4 plausible options, including the correct one.
3. The correct answer must match one of the options exactly.
4. Distractors must be reasonable; do not make the correct answer obviously longer or more detailed.
5. Output pure, valid JSON only. No prose, no markdown, no text outside the JSON.

Expected format:

[
  {
    "question": "<question text>",
    "options": ["<option>", "<option>", "<option>", "<option>"],
    "correct_answer": "<exact text of the correct option>"
  }
]
`

// BuildPrompt assembles the full prompt for a topic and question count.
func BuildPrompt(topic string, count int) string {
	return fmt.Sprintf("%s\nGenerate %d multiple-choice questions about %q. Return only the JSON array.", systemPrompt, count, topic)
}
