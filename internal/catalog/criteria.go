package catalog

import (
	"strings"

	"github.com/neomorfeo/tourify/internal/domain"
)

// ProspectCriteria builds prospect criteria from raw filter input. Values
// the catalog does not know are dropped so they impose no constraint.
func (c *Catalog) ProspectCriteria(search, status, service, assignedTo, tag string) domain.ProspectCriteria {
	var crit domain.ProspectCriteria
	crit.Search = strings.TrimSpace(search)
	if s := domain.Status(status); c.HasStatus(s) {
		crit.Status = s
	}
	if c.HasService(service) {
		crit.Service = service
	}
	if c.HasUser(assignedTo) {
		crit.AssignedTo = assignedTo
	}
	if c.HasTag(tag) {
		crit.Tag = tag
	}
	return crit
}

// TransactionCriteria builds transaction criteria from raw filter input.
// "all", empty and unknown values impose no constraint.
func (c *Catalog) TransactionCriteria(typ, category, granularity, period string) domain.TransactionCriteria {
	var crit domain.TransactionCriteria
	if t := domain.TransactionType(typ); t.Valid() {
		crit.Type = t
	}
	if c.HasCategory(domain.TypeIncome, category) || c.HasCategory(domain.TypeExpense, category) {
		crit.Category = category
	}
	if g := domain.Granularity(granularity); g.Valid() {
		crit.Granularity = g
		crit.Period = strings.TrimSpace(period)
	}
	return crit
}
