package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"finlearn/internal/quiz"
)

func setupQuizRouter(handler *QuizHandler) *gin.Engine {
	r := gin.New()
	r.GET("/quiz/questions", handler.GetQuestions)
	r.POST("/quiz/start", handler.StartQuiz)
	r.POST("/quiz/submit", handler.SubmitQuiz)
	return r
}

func answersBody(t *testing.T, answers []int, seconds float64) string {
	t.Helper()
	data, err := json.Marshal(SubmitQuizRequest{Answers: answers, ElapsedSeconds: seconds})
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return string(data)
}

func TestQuizHandler_GetQuestions(t *testing.T) {
	f := newProgressFixture(t)
	r := setupQuizRouter(NewQuizHandler(f.svc, quiz.Default()))

	rec := doRequest(r, "GET", "/quiz/questions", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	questions := parseJSON(t, rec)["questions"].([]interface{})
	if len(questions) != 10 {
		t.Fatalf("expected 10 questions, got %d", len(questions))
	}
	for _, q := range questions {
		if _, leaked := q.(map[string]interface{})["answer"]; leaked {
			t.Fatal("answers must not be sent to clients")
		}
	}
}

func TestQuizHandler_StartQuiz(t *testing.T) {
	f := newProgressFixture(t)
	r := setupQuizRouter(NewQuizHandler(f.svc, quiz.Default()))

	first := parseJSON(t, doRequest(r, "POST", "/quiz/start", ""))
	second := parseJSON(t, doRequest(r, "POST", "/quiz/start", ""))
	if first["first_steps_unlocked"] != true || second["first_steps_unlocked"] != false {
		t.Errorf("expected first_steps once, got %v then %v", first, second)
	}
}

func TestQuizHandler_SubmitQuiz(t *testing.T) {
	bank := quiz.Default()

	t.Run("perfect and fast", func(t *testing.T) {
		f := newProgressFixture(t)
		r := setupQuizRouter(NewQuizHandler(f.svc, bank))

		rec := doRequest(r, "POST", "/quiz/submit", answersBody(t, bank.Key(), 12.5))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		outcome := parseJSON(t, rec)["outcome"].(map[string]interface{})
		if outcome["xp_earned"].(float64) != 275 {
			t.Errorf("expected 275 XP, got %v", outcome["xp_earned"])
		}
		result := outcome["result"].(map[string]interface{})
		if result["perfect"] != true || result["percentage"].(float64) != 100 {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("failing attempt", func(t *testing.T) {
		f := newProgressFixture(t)
		r := setupQuizRouter(NewQuizHandler(f.svc, bank))

		answers := make([]int, bank.Len())
		for i := range answers {
			answers[i] = 3
		}
		rec := doRequest(r, "POST", "/quiz/submit", answersBody(t, answers, 90))
		outcome := parseJSON(t, rec)["outcome"].(map[string]interface{})
		if outcome["result"].(map[string]interface{})["passed"] != false {
			t.Errorf("expected failed attempt, got %v", outcome)
		}
	})

	t.Run("returns 400 on wrong answer count", func(t *testing.T) {
		f := newProgressFixture(t)
		r := setupQuizRouter(NewQuizHandler(f.svc, bank))

		rec := doRequest(r, "POST", "/quiz/submit", answersBody(t, []int{1, 1}, 10))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on negative elapsed time", func(t *testing.T) {
		f := newProgressFixture(t)
		r := setupQuizRouter(NewQuizHandler(f.svc, bank))

		rec := doRequest(r, "POST", "/quiz/submit", answersBody(t, bank.Key(), -1))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if f.svc.Record().Experience != 0 {
			t.Error("rejected attempt should not grant XP")
		}
	})
}
