package domain

import "time"

// Meta is the identity and audit stamp carried by every stored record.
type Meta struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Metadata gives the store access to the embedded stamp.
func (m *Meta) Metadata() *Meta {
	return m
}
