package dto

// CreateSuggestionRequest is the public submission form payload. The target
// board is never chosen by the visitor; it is always the currently active
// one.
type CreateSuggestionRequest struct {
	AuthorName string `json:"author_name" validate:"required,max=120"`
	Content    string `json:"content" validate:"required,max=500"`
}
