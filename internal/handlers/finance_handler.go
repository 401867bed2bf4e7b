package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finlearn/internal/calculator"
	"finlearn/internal/currency"
	apperrors "finlearn/internal/errors"
	"finlearn/internal/models"
	"finlearn/internal/progression"
	"finlearn/internal/services"
)

// sipBreakdownMonths bounds the month-by-month table returned by CalculateSIP.
const sipBreakdownMonths = 60

// FinanceHandler handles budget, savings goal and investment requests.
type FinanceHandler struct {
	progress services.ProgressServicer
	money    currency.Formatter
}

// NewFinanceHandler creates a new FinanceHandler. Amounts in summaries are
// formatted in currencyCode.
func NewFinanceHandler(progress services.ProgressServicer, currencyCode string) *FinanceHandler {
	return &FinanceHandler{progress: progress, money: currency.NewFormatter(currencyCode)}
}

// CreateBudgetEntryRequest represents the request payload for a budget entry.
type CreateBudgetEntryRequest struct {
	Category    models.BudgetCategory `json:"category" binding:"omitempty,budget_category"`
	Amount      decimal.Decimal       `json:"amount" binding:"required,gt=0"`
	Description string                `json:"description" binding:"required,max=200"`
	Kind        models.EntryKind      `json:"kind" binding:"omitempty,entry_kind"`
}

// SplitBudgetRequest represents the request payload for a 50/30/20 split.
type SplitBudgetRequest struct {
	Income decimal.Decimal `json:"income" binding:"required,gt=0"`
}

// CreateGoalRequest represents the request payload for a savings goal.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount  decimal.Decimal `json:"target_amount" binding:"required,gt=0"`
	CurrentAmount decimal.Decimal `json:"current_amount" binding:"gte=0"`
	Deadline      string          `json:"deadline" binding:"omitempty,civil_date"`
}

// DepositRequest represents the request payload for a goal deposit.
type DepositRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,gt=0"`
}

// GoalTimelineRequest represents the request payload for a goal timeline.
type GoalTimelineRequest struct {
	GoalAmount          decimal.Decimal `json:"goal_amount" binding:"required,gt=0"`
	MonthlySaving       decimal.Decimal `json:"monthly_saving" binding:"required,gt=0"`
	AnnualReturnPercent decimal.Decimal `json:"annual_return_percent" binding:"gte=0,lte=100"`
}

// SIPRequest represents the request payload for recording or projecting a SIP.
type SIPRequest struct {
	MonthlyAmount       decimal.Decimal `json:"monthly_amount" binding:"required,gt=0"`
	Years               decimal.Decimal `json:"years" binding:"required,gt=0,lte=50"`
	AnnualReturnPercent decimal.Decimal `json:"annual_return_percent" binding:"gte=0,lte=100"`
}

// GetBudgetEntries lists budget entries in insertion order.
// @Summary     Get budget entries
// @Tags        budget
// @Produce     json
// @Success     200 {array} models.BudgetEntry "Entries"
// @Router      /budget/entries [get]
func (h *FinanceHandler) GetBudgetEntries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"entries": h.progress.BudgetEntries()})
}

// CreateBudgetEntry records an income or expense and re-checks Budget Master.
// @Summary     Create a budget entry
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       request body CreateBudgetEntryRequest true "Entry details"
// @Success     201 {object} models.BudgetEntry "Entry created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /budget/entries [post]
func (h *FinanceHandler) CreateBudgetEntry(c *gin.Context) {
	var req CreateBudgetEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	entry, err := h.progress.AddBudgetEntry(models.BudgetEntryInput{
		Category:    req.Category,
		Amount:      req.Amount,
		Description: req.Description,
		Kind:        req.Kind,
	})
	if failed(err) {
		respondWithError(c, err)
		return
	}

	master, checkErr := h.progress.CheckBudgetMaster(h.progress.Today())
	respond(c, http.StatusCreated, gin.H{
		"entry":                  entry,
		"budget_master_unlocked": master,
		"experience":             h.progress.Record().Experience,
	}, errors.Join(err, checkErr))
}

// CountBudgetEntries counts entries created on or after a day.
// @Summary     Count budget entries
// @Description Count entries since a date, defaulting to the Budget Master window start
// @Tags        budget
// @Produce     json
// @Param       since query string false "YYYY-MM-DD"
// @Success     200 {object} map[string]interface{} "Count"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budget/entries/count [get]
func (h *FinanceHandler) CountBudgetEntries(c *gin.Context) {
	since, err := parseDate("since", c.Query("since"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if since == nil {
		start := progression.BudgetWindowStart(h.progress.Today())
		since = &start
	}
	c.JSON(http.StatusOK, gin.H{"since": since, "count": h.progress.CountEntriesSince(*since)})
}

// SplitBudget applies the 50/30/20 rule to an income.
// @Summary     Split a budget
// @Tags        budget
// @Accept      json
// @Produce     json
// @Param       request body SplitBudgetRequest true "Income"
// @Success     200 {object} calculator.BudgetSplit "Split"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /budget/split [post]
func (h *FinanceHandler) SplitBudget(c *gin.Context) {
	var req SplitBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	split, err := calculator.SplitBudget(req.Income)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"split": split,
		"formatted": gin.H{
			"needs":   h.money.Format(split.Needs),
			"wants":   h.money.Format(split.Wants),
			"savings": h.money.Format(split.Savings),
		},
	})
}

// GetGoals lists savings goals.
// @Summary     Get savings goals
// @Tags        goals
// @Produce     json
// @Success     200 {array} models.SavingsGoal "Goals"
// @Router      /goals [get]
func (h *FinanceHandler) GetGoals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goals": h.progress.SavingsGoals()})
}

// CreateGoal creates a savings goal.
// @Summary     Create a savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body CreateGoalRequest true "Goal details"
// @Success     201 {object} models.SavingsGoal "Goal created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals [post]
func (h *FinanceHandler) CreateGoal(c *gin.Context) {
	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		respondWithError(c, err)
		return
	}

	goal, err := h.progress.AddSavingsGoal(models.SavingsGoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      deadline,
	})
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{"goal": goal}, err)
}

// GetGoal returns one savings goal.
// @Summary     Get a savings goal
// @Tags        goals
// @Produce     json
// @Param       id path string true "Goal ID"
// @Success     200 {object} models.SavingsGoal "Goal"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id} [get]
func (h *FinanceHandler) GetGoal(c *gin.Context) {
	goal, err := h.progress.Goal(c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"goal": goal, "progress_percent": goal.ProgressPercent()})
}

// DepositToGoal adds a deposit to a savings goal.
// @Summary     Deposit to a savings goal
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       id      path string         true "Goal ID"
// @Param       request body DepositRequest true "Deposit"
// @Success     200 {object} models.SavingsGoal "Updated goal"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Goal not found"
// @Router      /goals/{id}/deposits [post]
func (h *FinanceHandler) DepositToGoal(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	goal, err := h.progress.UpdateSavingsGoalProgress(c.Param("id"), req.Amount)
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusOK, gin.H{
		"goal":             goal,
		"completed":        goal.IsComplete(),
		"progress_percent": goal.ProgressPercent(),
	}, err)
}

// GoalTimeline estimates the months needed to reach a goal.
// @Summary     Goal timeline
// @Tags        goals
// @Accept      json
// @Produce     json
// @Param       request body GoalTimelineRequest true "Plan"
// @Success     200 {object} calculator.GoalTimeline "Timeline"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /goals/timeline [post]
func (h *FinanceHandler) GoalTimeline(c *gin.Context) {
	var req GoalTimelineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	timeline, err := calculator.MonthsToGoal(req.GoalAmount, req.MonthlySaving, req.AnnualReturnPercent)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	c.JSON(http.StatusOK, gin.H{"timeline": timeline})
}

// GetInvestments lists recorded SIP plans.
// @Summary     Get investments
// @Tags        investments
// @Produce     json
// @Success     200 {array} models.InvestmentRecord "Investments"
// @Router      /investments [get]
func (h *FinanceHandler) GetInvestments(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"investments": h.progress.Investments()})
}

// CreateInvestment records a SIP plan with its projected maturity value.
// @Summary     Record an investment
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       request body SIPRequest true "SIP plan"
// @Success     201 {object} models.InvestmentRecord "Investment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /investments [post]
func (h *FinanceHandler) CreateInvestment(c *gin.Context) {
	var req SIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	inv, err := h.progress.AddInvestment(models.InvestmentInput{
		MonthlyAmount:       req.MonthlyAmount,
		Years:               req.Years,
		AnnualReturnPercent: req.AnnualReturnPercent,
	})
	if failed(err) {
		respondWithError(c, err)
		return
	}
	respond(c, http.StatusCreated, gin.H{
		"investment":     inv,
		"maturity_value": h.money.Format(inv.MaturityValue),
	}, err)
}

// CalculateSIP projects a SIP without recording it.
// @Summary     Calculate a SIP
// @Tags        investments
// @Accept      json
// @Produce     json
// @Param       request body SIPRequest true "SIP plan"
// @Success     200 {object} calculator.Projection "Projection"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /sip/calculate [post]
func (h *FinanceHandler) CalculateSIP(c *gin.Context) {
	var req SIPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	months := calculator.MonthsFromYears(req.Years)
	if months < 1 {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "duration must cover at least one month"))
		return
	}
	rate := calculator.MonthlyRate(req.AnnualReturnPercent)
	projection, err := calculator.ProjectSIP(req.MonthlyAmount, months, rate)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	breakdown, err := calculator.SIPBreakdown(req.MonthlyAmount, months, rate, sipBreakdownMonths)
	if err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"months":     months,
		"projection": projection,
		"breakdown":  breakdown,
		"formatted": gin.H{
			"total_invested":  h.money.Format(projection.TotalInvested),
			"maturity_value":  h.money.Format(projection.MaturityValue),
			"estimated_gains": h.money.Format(projection.EstimatedGains),
		},
	})
}

// SummaryQuery selects the display currency of the summary. Empty means the
// configured default.
type SummaryQuery struct {
	Currency string `form:"currency" binding:"omitempty,iso4217"`
}

// GetSummary aggregates budget, savings and investment totals.
// @Summary     Get financial summary
// @Tags        summary
// @Produce     json
// @Param       currency query string false "ISO 4217 display currency"
// @Success     200 {object} progression.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Router      /summary [get]
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	var q SummaryQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}
	money := h.money
	if q.Currency != "" {
		money = currency.NewFormatter(q.Currency)
	}

	s := h.progress.Summary()
	c.JSON(http.StatusOK, gin.H{
		"summary":  s,
		"currency": money.Code(),
		"formatted": gin.H{
			"total_income":         money.Format(s.TotalIncome),
			"total_expenses":       money.Format(s.TotalExpenses),
			"balance":              money.Format(s.Balance),
			"total_saved":          money.Format(s.TotalSaved),
			"total_target":         money.Format(s.TotalTarget),
			"total_invested":       money.Format(s.TotalInvested),
			"total_maturity_value": money.Format(s.TotalMaturityValue),
		},
	})
}
