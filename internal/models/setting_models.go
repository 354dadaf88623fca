package models

import "time"

// Setting keys the services read. Both are seeded by db/schema.sql and
// editable through the settings endpoints.
const (
	SettingPurchaseSafetyMargin    = "purchase_safety_margin"
	SettingMaintenanceIntervalDays = "maintenance_interval_days"
)

// ApplicationSetting represents a key-value pair for application configuration.
type ApplicationSetting struct {
	ID           int64     `json:"id" db:"id"`
	SettingKey   string    `json:"setting_key" db:"setting_key" binding:"required"`
	SettingValue string    `json:"setting_value" db:"setting_value" binding:"required"`
	Description  *string   `json:"description,omitempty" db:"description"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
