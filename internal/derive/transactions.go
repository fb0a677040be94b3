package derive

import (
	"slices"
	"strconv"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Transactions returns the transactions matching every set field of c, most
// recent date first.
func Transactions(snapshot []domain.Transaction, c domain.TransactionCriteria) []domain.Transaction {
	inPeriod := periodMatcher(c.Granularity, c.Period)

	out := make([]domain.Transaction, 0, len(snapshot))
	for _, t := range snapshot {
		if c.Type.Valid() && t.Type != c.Type {
			continue
		}
		if c.Category != "" && t.Category != c.Category {
			continue
		}
		if inPeriod != nil && !inPeriod(t) {
			continue
		}
		out = append(out, t)
	}

	slices.SortStableFunc(out, func(a, b domain.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}

// periodMatcher returns nil when the period imposes no constraint.
func periodMatcher(g domain.Granularity, period string) func(domain.Transaction) bool {
	switch g {
	case domain.Monthly:
		if !validMonth(period) {
			return nil
		}
		return func(t domain.Transaction) bool {
			return t.Date.UTC().Format("2006-01") == period
		}
	case domain.Annual:
		year, err := strconv.Atoi(period)
		if err != nil || len(period) != 4 {
			return nil
		}
		return func(t domain.Transaction) bool {
			return t.Date.UTC().Year() == year
		}
	default:
		return nil
	}
}

func validMonth(period string) bool {
	if len(period) != 7 || period[4] != '-' {
		return false
	}
	if _, err := strconv.Atoi(period[:4]); err != nil {
		return false
	}
	m, err := strconv.Atoi(period[5:])
	return err == nil && m >= 1 && m <= 12
}
