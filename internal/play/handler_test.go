package play

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/quizhive/backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeStore struct {
	pq            *models.PlayerQuiz
	completeErr   error
	insertBatches int
	singleInserts int
	score         int
}

func (f *fakeStore) GetPlayerQuizByID(ctx context.Context, id uuid.UUID) (*models.PlayerQuiz, error) {
	if f.pq == nil {
		return nil, pgx.ErrNoRows
	}
	return f.pq, nil
}

func (f *fakeStore) InsertAnswer(ctx context.Context, a *models.Answer) error {
	f.singleInserts++
	return nil
}

func (f *fakeStore) InsertAnswers(ctx context.Context, answers []*models.Answer) error {
	f.insertBatches++
	return nil
}

func (f *fakeStore) RecomputeScore(ctx context.Context, playerQuizID uuid.UUID) (int, error) {
	return f.score, nil
}

func (f *fakeStore) SetCompleted(ctx context.Context, playerQuizID uuid.UUID) (time.Time, error) {
	if f.completeErr != nil {
		return time.Time{}, f.completeErr
	}
	return time.Now(), nil
}

type fakeQuestions struct {
	q *models.Question
}

func (f fakeQuestions) GetQuestion(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	if f.q == nil {
		return nil, pgx.ErrNoRows
	}
	return f.q, nil
}

func postJSON(body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestSubmitAnswerRejectsEmptyPayload(t *testing.T) {
	h := NewHandler(&fakeStore{}, fakeQuestions{}, nil, nil, nil, zap.NewNop())
	body := `{"player_quiz_id":"` + uuid.New().String() + `","question_id":"` + uuid.New().String() + `"}`

	c, w := postJSON(body)
	h.SubmitAnswer(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a submission with neither answer field, got %d", w.Code)
	}
}

func TestSubmitAnswerAcceptsOrderOnly(t *testing.T) {
	store := &fakeStore{pq: &models.PlayerQuiz{ID: uuid.New()}}
	question := &models.Question{
		ID:           uuid.New(),
		Type:         models.QuestionRanking,
		CorrectOrder: []string{"a", "b"},
		Points:       10,
	}
	h := NewHandler(store, fakeQuestions{q: question}, nil, nil, nil, zap.NewNop())
	body := `{"player_quiz_id":"` + uuid.New().String() + `","question_id":"` + question.ID.String() + `","submitted_order":["a","b"]}`

	c, w := postJSON(body)
	h.SubmitAnswer(c)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for an order-only submission, got %d: %s", w.Code, w.Body.String())
	}
	if store.singleInserts != 1 {
		t.Fatalf("expected one answer insert, got %d", store.singleInserts)
	}
}

func TestCompleteQuizRejectsMalformedQuestionID(t *testing.T) {
	store := &fakeStore{pq: &models.PlayerQuiz{ID: uuid.New()}}
	h := NewHandler(store, fakeQuestions{}, nil, nil, nil, zap.NewNop())
	body := `{"player_quiz_id":"` + uuid.New().String() + `","answers":[{"question_id":"not-a-uuid","submitted_answer":"x"}]}`

	c, w := postJSON(body)
	h.CompleteQuiz(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed question_id, got %d", w.Code)
	}
	if store.insertBatches != 0 {
		t.Fatal("no answers may be written for invalid input")
	}
}

func TestCompleteQuizRepeatConflictWritesNothing(t *testing.T) {
	question := &models.Question{ID: uuid.New(), Type: models.QuestionMCQ, CorrectAnswer: "x", Points: 5}
	// Completion already claimed elsewhere: SetCompleted finds no open row.
	store := &fakeStore{
		pq:          &models.PlayerQuiz{ID: uuid.New()},
		completeErr: pgx.ErrNoRows,
	}
	h := NewHandler(store, fakeQuestions{q: question}, nil, nil, nil, zap.NewNop())
	body := `{"player_quiz_id":"` + uuid.New().String() + `","answers":[{"question_id":"` + question.ID.String() + `","submitted_answer":"x"}]}`

	c, w := postJSON(body)
	h.CompleteQuiz(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a repeat completion, got %d", w.Code)
	}
	if store.insertBatches != 0 {
		t.Fatalf("losing completion must not insert answers, got %d batch inserts", store.insertBatches)
	}
}

func TestCompleteQuizAlreadyCompletedRecord(t *testing.T) {
	done := time.Now()
	store := &fakeStore{pq: &models.PlayerQuiz{ID: uuid.New(), CompletedAt: &done}}
	h := NewHandler(store, fakeQuestions{}, nil, nil, nil, zap.NewNop())
	body := `{"player_quiz_id":"` + uuid.New().String() + `","answers":[{"question_id":"` + uuid.New().String() + `","submitted_answer":"x"}]}`

	c, w := postJSON(body)
	h.CompleteQuiz(c)

	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for an already completed player quiz, got %d", w.Code)
	}
}
