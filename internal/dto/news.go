package dto

// NewsRequest carries the payload for creating or updating a news item.
type NewsRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Body      string `json:"body" validate:"required"`
	ImagePath string `json:"image_path" validate:"omitempty,max=500"`
}

// MissionaryRequest carries the payload for creating or updating a
// missionary profile.
type MissionaryRequest struct {
	FirstName string `json:"first_name" validate:"required,max=120"`
	LastName  string `json:"last_name" validate:"required,max=120"`
	BirthDate string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	City      string `json:"city" validate:"omitempty,max=120"`
	Country   string `json:"country" validate:"omitempty,max=120"`
	ImageURL  string `json:"image_url" validate:"omitempty,max=500"`
	Summary   string `json:"summary" validate:"omitempty,max=500"`
	Story     string `json:"story" validate:"omitempty"`
}
