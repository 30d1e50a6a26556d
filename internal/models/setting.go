package models

import "time"

// SettingType constrains how a setting value is parsed.
type SettingType string

const (
	SettingTypeBoolean SettingType = "BOOLEAN"
	SettingTypeString  SettingType = "STRING"
)

// Site setting keys known to the admin API.
const (
	SettingMaintenanceMode    = "maintenance_mode"
	SettingEnablePixDonations = "enable_pix_donations"
	SettingSiteAnnouncement   = "site_announcement"
)

// Setting is a key/value toggle governing public site behaviour.
type Setting struct {
	Key       string      `db:"key" json:"key"`
	Value     string      `db:"value" json:"value"`
	Type      SettingType `db:"type" json:"type"`
	UpdatedBy *string     `db:"updated_by" json:"updated_by,omitempty"`
	UpdatedAt time.Time   `db:"updated_at" json:"updated_at"`
}
