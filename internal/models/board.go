package models

import "time"

// Board is a dated collection of post-its shown on the public site while
// today falls inside [StartDate, EndDate]. Board ranges never overlap, so at
// most one board is active on any given day.
type Board struct {
	ID        string    `db:"id" json:"id"`
	Title     string    `db:"title" json:"title"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PostIt is one teaching note pinned to a board.
type PostIt struct {
	ID      string `db:"id" json:"id"`
	BoardID string `db:"board_id" json:"board_id"`
	Content string `db:"content" json:"content"`
}

// PostItDetail joins a post-it with its owning board's title for admin lists.
type PostItDetail struct {
	PostIt
	BoardTitle *string `db:"board_title" json:"board_title,omitempty"`
}

// BoardView is the public rendition of the currently active board.
type BoardView struct {
	Board   *Board   `json:"board,omitempty"`
	PostIts []PostIt `json:"post_its"`
}
