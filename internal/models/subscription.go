package models

import "time"

// PushSubscription stores one browser's Web Push endpoint and keys.
type PushSubscription struct {
	ID        string    `db:"id" json:"id"`
	Endpoint  string    `db:"endpoint" json:"endpoint"`
	P256dh    string    `db:"p256dh" json:"p256dh"`
	Auth      string    `db:"auth" json:"auth"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
