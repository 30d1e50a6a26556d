package models

import "time"

// PrayerClock anchors a full 24-hour volunteer roster to one calendar date.
type PrayerClock struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	Date      time.Time `db:"date" json:"date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// VolunteerSlot assigns a named volunteer to one hour of a prayer clock.
type VolunteerSlot struct {
	ID            string `db:"id" json:"id"`
	ClockID       string `db:"clock_id" json:"clock_id"`
	VolunteerName string `db:"volunteer_name" json:"volunteer_name"`
	Hour          int    `db:"hour" json:"hour"`
}

// PrayerRequest is a free-text intention scoped to a prayer clock.
type PrayerRequest struct {
	ID          string `db:"id" json:"id"`
	ClockID     string `db:"clock_id" json:"clock_id"`
	Description string `db:"description" json:"description"`
}

// AvailableSlotName labels roster hours nobody has claimed yet.
const AvailableSlotName = "Available"

// ClockView is the public rendition of the current prayer clock: all 24
// hours present, unclaimed ones synthesised with the placeholder name.
type ClockView struct {
	Clock          *PrayerClock    `json:"clock,omitempty"`
	Volunteers     []VolunteerSlot `json:"volunteers"`
	PrayerRequests []string        `json:"prayer_requests"`
}
