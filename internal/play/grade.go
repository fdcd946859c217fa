package play

import (
	"strings"

	"github.com/quizhive/backend/internal/models"
)

// GradeScalar compares a submitted answer against the stored correct answer.
// Comparison is case-insensitive with surrounding whitespace ignored, so
// "Paris ", "paris" and "PARIS" all match "Paris".
func GradeScalar(submitted, correct string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(correct))
}

// GradeRanking compares a submitted ordering against the stored correct
// order element-wise. Every position must match for the answer to count;
// there is no partial credit.
func GradeRanking(submitted, correct []string) bool {
	if len(submitted) != len(correct) || len(correct) == 0 {
		return false
	}
	for i := range correct {
		if !GradeScalar(submitted[i], correct[i]) {
			return false
		}
	}
	return true
}

// Grade grades a submitted answer against its question and returns whether it
// is correct and the points awarded. Full points or zero.
func Grade(q *models.Question, submitted string, submittedOrder []string) (bool, int) {
	var correct bool
	if q.Type == models.QuestionRanking {
		correct = GradeRanking(submittedOrder, q.CorrectOrder)
	} else {
		correct = GradeScalar(submitted, q.CorrectAnswer)
	}
	if !correct {
		return false, 0
	}
	return true, q.Points
}
