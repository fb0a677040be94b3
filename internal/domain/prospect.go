package domain

import (
	"slices"
	"time"
)

// Status represents the sales pipeline stage of a prospect.
type Status string

const (
	StatusNew         Status = "Nuevo"
	StatusContacted   Status = "Contactado"
	StatusNegotiating Status = "En Negociación"
	StatusWon         Status = "Ganado"
	StatusLost        Status = "Perdido"
	StatusStandBy     Status = "Stand-by"
)

// Statuses lists the pipeline stages in board order.
var Statuses = []Status{
	StatusNew,
	StatusContacted,
	StatusNegotiating,
	StatusWon,
	StatusLost,
	StatusStandBy,
}

// Valid reports whether s is one of the known pipeline stages.
func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

// Prospect is a potential customer tracked through the sales pipeline.
type Prospect struct {
	ID          string    `json:"id"`
	ContactName string    `json:"contactName"`
	Company     string    `json:"company"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Service     string    `json:"service"`
	Status      Status    `json:"status"`
	AssignedTo  string    `json:"assignedTo"`
	Tags        []string  `json:"tags"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (p Prospect) Identity() string   { return p.ID }
func (p Prospect) Created() time.Time { return p.CreatedAt }

func (p Prospect) WithIdentity(id string, createdAt time.Time) Prospect {
	p.ID = id
	p.CreatedAt = createdAt
	p.Tags = append([]string(nil), p.Tags...)
	return p
}

// HasTag reports whether the prospect carries tag.
func (p Prospect) HasTag(tag string) bool {
	return slices.Contains(p.Tags, tag)
}
