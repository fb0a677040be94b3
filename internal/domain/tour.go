package domain

import "time"

// Tour is an embeddable virtual tour.
type Tour struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Title string `json:"title"`
	Label string `json:"label"`
}

func (t Tour) Identity() string { return t.ID }

// Created is always zero: tours carry no creation time.
func (t Tour) Created() time.Time { return time.Time{} }

func (t Tour) WithIdentity(id string, _ time.Time) Tour {
	t.ID = id
	return t
}
