package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvestmentRecord is a SIP plan captured with the maturity value computed
// when it was recorded. The value is never recomputed.
type InvestmentRecord struct {
	ID                  string          `json:"id"`
	MonthlyAmount       decimal.Decimal `json:"monthly_amount"`
	Years               decimal.Decimal `json:"years"`
	AnnualReturnPercent decimal.Decimal `json:"annual_return_percent"`
	Months              int             `json:"months"`
	MaturityValue       decimal.Decimal `json:"maturity_value"`
	CreatedAt           time.Time       `json:"created_at"`
}

// TotalInvested is the sum of all monthly contributions.
func (i InvestmentRecord) TotalInvested() decimal.Decimal {
	return i.MonthlyAmount.Mul(decimal.NewFromInt(int64(i.Months)))
}

// InvestmentInput carries the caller-supplied fields of a new SIP plan.
type InvestmentInput struct {
	MonthlyAmount       decimal.Decimal
	Years               decimal.Decimal
	AnnualReturnPercent decimal.Decimal
}
