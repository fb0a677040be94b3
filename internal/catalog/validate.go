package catalog

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"strings"

	"github.com/neomorfeo/tourify/internal/domain"
)

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}

// ValidateProspect checks a prospect draft and returns it with surrounding
// whitespace trimmed and duplicate tags collapsed. Every tag must come from
// the catalog so it can later be used as a filter.
func (c *Catalog) ValidateProspect(p domain.Prospect) (domain.Prospect, error) {
	p.ContactName = strings.TrimSpace(p.ContactName)
	p.Company = strings.TrimSpace(p.Company)
	p.Email = strings.TrimSpace(p.Email)
	p.Phone = strings.TrimSpace(p.Phone)

	if err := required("contactName", p.ContactName); err != nil {
		return domain.Prospect{}, err
	}
	if err := required("email", p.Email); err != nil {
		return domain.Prospect{}, err
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return domain.Prospect{}, &domain.ValidationError{Field: "email", Reason: "is not a valid address"}
	}
	if !c.HasService(p.Service) {
		return domain.Prospect{}, &domain.ValidationError{Field: "service", Reason: "is not an offered service"}
	}
	if p.Status == "" {
		p.Status = domain.StatusNew
	}
	if !c.HasStatus(p.Status) {
		return domain.Prospect{}, &domain.ValidationError{Field: "status", Reason: "is not a pipeline status"}
	}
	if p.AssignedTo != "" && !c.HasUser(p.AssignedTo) {
		return domain.Prospect{}, &domain.ValidationError{Field: "assignedTo", Reason: "is not a known user"}
	}

	tags := make([]string, 0, len(p.Tags))
	seen := make(map[string]bool, len(p.Tags))
	for _, t := range p.Tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		if !c.HasTag(t) {
			return domain.Prospect{}, &domain.ValidationError{Field: "tags", Reason: fmt.Sprintf("%q is not a known tag", t)}
		}
		seen[t] = true
		tags = append(tags, t)
	}
	p.Tags = tags

	return p, nil
}

// ValidateTransaction checks a transaction draft: the category must belong
// to the list for its type and the amount must be a non-negative number.
func (c *Catalog) ValidateTransaction(t domain.Transaction) (domain.Transaction, error) {
	t.Description = strings.TrimSpace(t.Description)

	if !t.Type.Valid() {
		return domain.Transaction{}, &domain.ValidationError{Field: "type", Reason: "must be income or expense"}
	}
	if !c.HasCategory(t.Type, t.Category) {
		return domain.Transaction{}, &domain.ValidationError{Field: "category", Reason: "does not belong to the " + string(t.Type) + " categories"}
	}
	if math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) || t.Amount < 0 {
		return domain.Transaction{}, &domain.ValidationError{Field: "amount", Reason: "must be a non-negative number"}
	}
	if t.Date.IsZero() {
		return domain.Transaction{}, &domain.ValidationError{Field: "date", Reason: "is required"}
	}
	return t, nil
}

// ValidateTour checks that url, title and label are present and that url is
// an absolute http(s) address.
func (c *Catalog) ValidateTour(t domain.Tour) (domain.Tour, error) {
	t.URL = strings.TrimSpace(t.URL)
	t.Title = strings.TrimSpace(t.Title)
	t.Label = strings.TrimSpace(t.Label)

	if err := required("url", t.URL); err != nil {
		return domain.Tour{}, err
	}
	if err := required("title", t.Title); err != nil {
		return domain.Tour{}, err
	}
	if err := required("label", t.Label); err != nil {
		return domain.Tour{}, err
	}

	u, err := url.Parse(t.URL)
	if err != nil || !u.IsAbs() || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return domain.Tour{}, &domain.ValidationError{Field: "url", Reason: "must be an absolute http(s) URL"}
	}
	return t, nil
}
