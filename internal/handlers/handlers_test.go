package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finlearn/internal/logger"
	"finlearn/internal/models"
	"finlearn/internal/progression"
	"finlearn/internal/services"
	"finlearn/internal/store"
	"finlearn/internal/testutil"
	"finlearn/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// --- mock progress service ---

// mockProgressService serves every call from a real engine unless the
// matching Fn field is set.
type mockProgressService struct {
	*progression.Engine
	grantExperienceFn   func(amount int) (progression.XPResult, error)
	completeChallengeFn func(id string) (bool, error)
	addBudgetEntryFn    func(in models.BudgetEntryInput) (models.BudgetEntry, error)
	updateGoalFn        func(goalID string, deposit decimal.Decimal) (models.SavingsGoal, error)
	resetFn             func() error
}

func (m *mockProgressService) GrantExperience(amount int) (progression.XPResult, error) {
	if m.grantExperienceFn != nil {
		return m.grantExperienceFn(amount)
	}
	return m.Engine.GrantExperience(amount)
}

func (m *mockProgressService) CompleteChallenge(id string) (bool, error) {
	if m.completeChallengeFn != nil {
		return m.completeChallengeFn(id)
	}
	return m.Engine.CompleteChallenge(id)
}

func (m *mockProgressService) AddBudgetEntry(in models.BudgetEntryInput) (models.BudgetEntry, error) {
	if m.addBudgetEntryFn != nil {
		return m.addBudgetEntryFn(in)
	}
	return m.Engine.AddBudgetEntry(in)
}

func (m *mockProgressService) UpdateSavingsGoalProgress(goalID string, deposit decimal.Decimal) (models.SavingsGoal, error) {
	if m.updateGoalFn != nil {
		return m.updateGoalFn(goalID, deposit)
	}
	return m.Engine.UpdateSavingsGoalProgress(goalID, deposit)
}

func (m *mockProgressService) Reset() error {
	if m.resetFn != nil {
		return m.resetFn()
	}
	return m.Engine.Reset()
}

var _ services.ProgressServicer = (*mockProgressService)(nil)

type progressFixture struct {
	svc   *mockProgressService
	store *store.MemoryStore
	clock *testutil.Clock
}

func newProgressFixture(t *testing.T) *progressFixture {
	t.Helper()
	mem := store.NewMemoryStore()
	clock := testutil.NewClock(2024, time.March, 4)
	engine := progression.New(mem, progression.WithClock(clock.Now), progression.WithLocation(time.UTC))
	return &progressFixture{
		svc:   &mockProgressService{Engine: engine},
		store: mem,
		clock: clock,
	}
}

// --- test helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}

func assertWarningCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	warn, ok := result["warning"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected warning object in response, got: %v", result)
	}
	if warn["code"] != code {
		t.Errorf("expected warning code %q, got %q", code, warn["code"])
	}
}
