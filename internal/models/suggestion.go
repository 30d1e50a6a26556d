package models

import "time"

// SuggestionStatus captures the moderation state of a public submission.
type SuggestionStatus string

const (
	SuggestionStatusPending  SuggestionStatus = "PENDING"
	SuggestionStatusApproved SuggestionStatus = "APPROVED"
	SuggestionStatusRefused  SuggestionStatus = "REFUSED"
)

// Suggestion is a visitor-submitted post-it proposal awaiting moderation.
// Approved suggestions are promoted into a real post-it on the same board;
// approved and refused records are kept as moderation history.
type Suggestion struct {
	ID         string           `db:"id" json:"id"`
	BoardID    string           `db:"board_id" json:"board_id"`
	AuthorName string           `db:"author_name" json:"author_name"`
	Content    string           `db:"content" json:"content"`
	Status     SuggestionStatus `db:"status" json:"status"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
	ReviewedAt *time.Time       `db:"reviewed_at" json:"reviewed_at,omitempty"`
}

// StatusLabel renders a human-readable status for admin history lists.
func (s Suggestion) StatusLabel() string {
	switch s.Status {
	case SuggestionStatusPending:
		return "Pending review"
	case SuggestionStatusApproved:
		return "Approved"
	case SuggestionStatusRefused:
		return "Refused"
	default:
		return string(s.Status)
	}
}
