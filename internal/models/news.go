package models

import "time"

// NewsItem is an announcement card on the public site.
type NewsItem struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Body        string    `db:"body" json:"body"`
	ImagePath   string    `db:"image_path" json:"image_path"`
	PublishedAt time.Time `db:"published_at" json:"published_at"`
}
