package dto

// ClockRequest carries the payload for creating or updating a prayer clock.
// Dates travel as plain calendar days.
type ClockRequest struct {
	Title string `json:"title" validate:"required,max=160"`
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
}

// VolunteerRequest claims or moves one hour of a clock's roster.
type VolunteerRequest struct {
	VolunteerName string `json:"volunteer_name" validate:"required,max=120"`
	Hour          int    `json:"hour" validate:"gte=0,lte=23"`
}

// PrayerRequestPayload adds or edits an intention on a clock.
type PrayerRequestPayload struct {
	Description string `json:"description" validate:"required,max=500"`
}
