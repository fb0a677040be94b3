package derive

import (
	"slices"
	"strings"

	"github.com/neomorfeo/tourify/internal/domain"
)

// Prospects returns the prospects matching every set field of c, most
// recently created first.
func Prospects(snapshot []domain.Prospect, c domain.ProspectCriteria) []domain.Prospect {
	search := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]domain.Prospect, 0, len(snapshot))
	for _, p := range snapshot {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if c.Status != "" && c.Status.Valid() && p.Status != c.Status {
			continue
		}
		if c.Service != "" && p.Service != c.Service {
			continue
		}
		if c.AssignedTo != "" && p.AssignedTo != c.AssignedTo {
			continue
		}
		if c.Tag != "" && !p.HasTag(c.Tag) {
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b domain.Prospect) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func matchesSearch(p domain.Prospect, needle string) bool {
	return strings.Contains(strings.ToLower(p.ContactName), needle) ||
		strings.Contains(strings.ToLower(p.Company), needle) ||
		strings.Contains(strings.ToLower(p.Email), needle)
}

// Column is one board column: a status and the prospects currently in it.
type Column struct {
	Status    domain.Status
	Prospects []domain.Prospect
}

// GroupByStatus splits prospects into one column per status, in the given
// order. Prospects whose status is not listed are left out.
func GroupByStatus(snapshot []domain.Prospect, statuses []domain.Status) []Column {
	index := make(map[domain.Status]int, len(statuses))
	cols := make([]Column, len(statuses))
	for i, s := range statuses {
		index[s] = i
		cols[i] = Column{Status: s, Prospects: []domain.Prospect{}}
	}

	for _, p := range snapshot {
		if i, ok := index[p.Status]; ok {
			cols[i].Prospects = append(cols[i].Prospects, p)
		}
	}

	for i := range cols {
		slices.SortStableFunc(cols[i].Prospects, func(a, b domain.Prospect) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
	}
	return cols
}
