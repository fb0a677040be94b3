// Package catalog holds the configurable value sets of the dashboard:
// pipeline statuses, services, tags, transaction categories, the monthly
// profit target and the operator credential table.
//
// The catalog is the single source of truth for both draft validation and
// filter normalisation.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/neomorfeo/tourify/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

// Account is a credential table entry.
type Account struct {
	domain.User `yaml:",inline"`
	Password    string `yaml:"password"`
}

// Catalog is the parsed catalog document.
type Catalog struct {
	Statuses      []domain.Status                     `yaml:"statuses"`
	Services      []string                            `yaml:"services"`
	Tags          []string                            `yaml:"tags"`
	Categories    map[domain.TransactionType][]string `yaml:"categories"`
	MonthlyTarget float64                             `yaml:"monthly_target"`
	Accounts      []Account                           `yaml:"users"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or returns the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(c.Statuses) == 0 {
		c.Statuses = slices.Clone(domain.Statuses)
	}
	if err := c.check(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

func (c *Catalog) check() error {
	for _, s := range c.Statuses {
		if !s.Valid() {
			return fmt.Errorf("unknown status %q", s)
		}
	}
	if len(c.Services) == 0 {
		return errors.New("no services defined")
	}
	for _, t := range []domain.TransactionType{domain.TypeIncome, domain.TypeExpense} {
		if len(c.Categories[t]) == 0 {
			return fmt.Errorf("no %s categories defined", t)
		}
	}
	for t := range c.Categories {
		if !t.Valid() {
			return fmt.Errorf("unknown transaction type %q", t)
		}
	}
	if c.MonthlyTarget <= 0 {
		return errors.New("monthly_target must be positive")
	}

	seen := make(map[string]bool, len(c.Accounts))
	for _, a := range c.Accounts {
		if a.ID == "" || a.Email == "" || a.Password == "" {
			return fmt.Errorf("user %q needs id, email and password", a.Name)
		}
		if seen[a.Email] {
			return fmt.Errorf("duplicate user email %q", a.Email)
		}
		seen[a.Email] = true
	}
	return nil
}

// HasStatus reports whether s is an enabled pipeline status.
func (c *Catalog) HasStatus(s domain.Status) bool {
	return slices.Contains(c.Statuses, s)
}

// HasService reports whether s is an offered service.
func (c *Catalog) HasService(s string) bool {
	return slices.Contains(c.Services, s)
}

// HasTag reports whether tag is a known prospect tag.
func (c *Catalog) HasTag(tag string) bool {
	return slices.Contains(c.Tags, tag)
}

// HasCategory reports whether category belongs to the list for t.
func (c *Catalog) HasCategory(t domain.TransactionType, category string) bool {
	return slices.Contains(c.Categories[t], category)
}

// HasUser reports whether id names an operator.
func (c *Catalog) HasUser(id string) bool {
	return slices.ContainsFunc(c.Accounts, func(a Account) bool { return a.ID == id })
}

// Users returns the operator table without credentials.
func (c *Catalog) Users() []domain.User {
	out := make([]domain.User, len(c.Accounts))
	for i, a := range c.Accounts {
		out[i] = a.User
	}
	return out
}
