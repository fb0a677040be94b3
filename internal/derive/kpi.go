package derive

import (
	"math"
	"time"

	"github.com/neomorfeo/tourify/internal/domain"
)

// ComputeKPIs aggregates the transactions dated in the month (monthly) or
// year (annual) containing now. The filter period chosen for list views is
// not consulted. An unknown granularity is treated as monthly.
//
// ProgressPercentage is capped at 100 but has no lower bound.
func ComputeKPIs(snapshot []domain.Transaction, g domain.Granularity, monthlyTarget float64, now time.Time) domain.KPIs {
	now = now.UTC()
	annual := g == domain.Annual

	var k domain.KPIs
	for _, t := range snapshot {
		d := t.Date.UTC()
		if d.Year() != now.Year() {
			continue
		}
		if !annual && d.Month() != now.Month() {
			continue
		}
		switch t.Type {
		case domain.TypeIncome:
			k.TotalIncome += t.Amount
		case domain.TypeExpense:
			k.TotalExpenses += t.Amount
		}
	}

	k.NetProfit = k.TotalIncome - k.TotalExpenses
	k.Target = monthlyTarget
	if annual {
		k.Target = monthlyTarget * 12
	}
	if k.Target > 0 {
		k.ProgressPercentage = math.Min(100, 100*k.NetProfit/k.Target)
	}
	return k
}

// MonthTotals holds the income and expenses of one calendar month.
type MonthTotals struct {
	Month    time.Month
	Income   float64
	Expenses float64
}

// MonthlySeries returns twelve buckets, January first, with the totals of
// every transaction dated in year.
func MonthlySeries(snapshot []domain.Transaction, year int) []MonthTotals {
	series := make([]MonthTotals, 12)
	for i := range series {
		series[i].Month = time.Month(i + 1)
	}

	for _, t := range snapshot {
		d := t.Date.UTC()
		if d.Year() != year {
			continue
		}
		b := &series[d.Month()-1]
		switch t.Type {
		case domain.TypeIncome:
			b.Income += t.Amount
		case domain.TypeExpense:
			b.Expenses += t.Amount
		}
	}
	return series
}
