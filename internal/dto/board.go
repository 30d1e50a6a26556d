package dto

// BoardRequest carries the payload for creating or updating a board.
type BoardRequest struct {
	Title     string `json:"title" validate:"required,max=160"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// CreatePostItRequest pins a new note to a board.
type CreatePostItRequest struct {
	BoardID string `json:"board_id" validate:"required,uuid4"`
	Content string `json:"content" validate:"required,max=500"`
}

// UpdatePostItRequest edits an existing note's text.
type UpdatePostItRequest struct {
	Content string `json:"content" validate:"required,max=500"`
}
