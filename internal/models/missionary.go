package models

import "time"

// Missionary is a profile card for a supported field worker.
type Missionary struct {
	ID        string     `db:"id" json:"id"`
	FirstName string     `db:"first_name" json:"first_name"`
	LastName  string     `db:"last_name" json:"last_name"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	City      string     `db:"city" json:"city"`
	Country   string     `db:"country" json:"country"`
	ImageURL  string     `db:"image_url" json:"image_url"`
	Summary   string     `db:"summary" json:"summary"`
	Story     string     `db:"story" json:"story"`
}

// FullName joins the missionary's names for public listings.
func (m Missionary) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}
