// Package calculator holds the pure money maths used by the progression
// engine and the API: SIP projections, budget splits and savings timelines.
// Every function is deterministic and works on shopspring decimals; rounding
// to currency minor units is left to the presentation layer.
package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// internalScale bounds the digits kept after exact exponentiation.
const internalScale = 20

// MaxYears is the longest SIP horizon accepted, and MaxMonths its length in
// monthly periods.
const (
	MaxYears  = 50
	MaxMonths = MaxYears * 12
)

var (
	one        = decimal.NewFromInt(1)
	twelve     = decimal.NewFromInt(12)
	twelveHund = decimal.NewFromInt(1200)

	// ErrNegativeInput is returned when an amount, rate or period is negative.
	ErrNegativeInput = errors.New("calculator: inputs must not be negative")

	// ErrHorizonTooLong is returned for horizons beyond MaxMonths.
	ErrHorizonTooLong = fmt.Errorf("calculator: horizon must not exceed %d years", MaxYears)

	maxYears = decimal.NewFromInt(MaxYears)
)

// Projection is the outcome of a SIP projection.
type Projection struct {
	TotalInvested  decimal.Decimal `json:"total_invested"`
	MaturityValue  decimal.Decimal `json:"maturity_value"`
	EstimatedGains decimal.Decimal `json:"estimated_gains"`
}

// MonthlyRate converts an annual percentage into a periodic monthly rate
// (annual ÷ 12 ÷ 100).
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(twelveHund)
}

// MonthsFromYears returns the whole number of months covered by years.
// Horizons beyond MaxYears are reported as MaxMonths+1 so callers reject them
// instead of overflowing.
func MonthsFromYears(years decimal.Decimal) int {
	if years.GreaterThan(maxYears) {
		return MaxMonths + 1
	}
	return int(years.Mul(twelve).Floor().IntPart())
}

// CheckYears rejects negative horizons and horizons beyond MaxYears.
func CheckYears(years decimal.Decimal) error {
	if years.IsNegative() {
		return ErrNegativeInput
	}
	if years.GreaterThan(maxYears) {
		return ErrHorizonTooLong
	}
	return nil
}

// ProjectSIP computes the future value of an annuity-due: a contribution of
// monthly made at the start of each of months periods, compounding at
// monthlyRate per period.
//
//	FV = P × ((1+r)^n − 1) / r × (1+r)
//
// A zero rate degenerates to P × n.
func ProjectSIP(monthly decimal.Decimal, months int, monthlyRate decimal.Decimal) (Projection, error) {
	if monthly.IsNegative() || months < 0 || monthlyRate.IsNegative() {
		return Projection{}, ErrNegativeInput
	}
	if months > MaxMonths {
		return Projection{}, ErrHorizonTooLong
	}

	invested := monthly.Mul(decimal.NewFromInt(int64(months)))
	if monthlyRate.IsZero() || months == 0 {
		return Projection{TotalInvested: invested, MaturityValue: invested, EstimatedGains: decimal.Zero}, nil
	}

	growth, err := compound(monthlyRate, months)
	if err != nil {
		return Projection{}, err
	}
	factor := growth.Sub(one).Div(monthlyRate).Mul(one.Add(monthlyRate))
	maturity := monthly.Mul(factor).Round(internalScale)

	return Projection{
		TotalInvested:  invested,
		MaturityValue:  maturity,
		EstimatedGains: maturity.Sub(invested),
	}, nil
}

// compound returns (1+rate)^periods using exact integer exponentiation, so no
// error accumulates over long horizons.
func compound(rate decimal.Decimal, periods int) (decimal.Decimal, error) {
	growth, err := one.Add(rate).PowInt32(int32(periods))
	if err != nil {
		return decimal.Zero, fmt.Errorf("calculator: compounding %d periods: %w", periods, err)
	}
	return growth.Round(internalScale), nil
}

// MonthPoint is one row of a SIP breakdown.
type MonthPoint struct {
	Month    int             `json:"month"`
	Invested decimal.Decimal `json:"invested"`
	Value    decimal.Decimal `json:"value"`
	Gains    decimal.Decimal `json:"gains"`
}

// SIPBreakdown projects the value at the end of each of the first
// min(months, limit) months.
func SIPBreakdown(monthly decimal.Decimal, months int, monthlyRate decimal.Decimal, limit int) ([]MonthPoint, error) {
	if months > MaxMonths {
		return nil, ErrHorizonTooLong
	}
	n := months
	if limit > 0 && n > limit {
		n = limit
	}
	points := make([]MonthPoint, 0, n)
	for m := 1; m <= n; m++ {
		p, err := ProjectSIP(monthly, m, monthlyRate)
		if err != nil {
			return nil, err
		}
		points = append(points, MonthPoint{
			Month:    m,
			Invested: p.TotalInvested,
			Value:    p.MaturityValue,
			Gains:    p.EstimatedGains,
		})
	}
	return points, nil
}
