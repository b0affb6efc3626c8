package model

import "time"

// Well-known setting keys read by scoring logic.
const (
	SettingTypingTargetStandard = "typing_target_wpm_standard"
	SettingTypingCapStandard    = "typing_cap_standard"
	SettingTypingTargetNew      = "typing_target_wpm_new"
	SettingTypingCapNew         = "typing_cap_new"
)

// AppSetting represents a key-value pair for global application configuration.
type AppSetting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSettingsRequest is the payload for bulk updating settings.
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required"`
}
