package domain

import "time"

// Settings holds per-user presentation preferences.
type Settings struct {
	Notifications bool   `json:"notifications"`
	DarkMode      bool   `json:"darkMode"`
	Language      string `json:"language"`
}

// DefaultSettings returns the preferences assigned at sign-up.
func DefaultSettings() Settings {
	return Settings{Notifications: true, Language: "en"}
}

// UsageStats carries running reading totals. Document and storage usage is
// deliberately absent: those are derived from live document rows so the
// entitlement check can never drift from what is actually stored.
type UsageStats struct {
	DocumentsUploaded  int `json:"documentsUploaded"`
	ReadingTimeMinutes int `json:"readingTime"`
	CompletedBooks     int `json:"completedBooks"`
}

// User represents an account within the platform.
type User struct {
	ID        string
	Email     string
	Name      string
	AvatarURL string
	PlanID    PlanID
	Settings  Settings
	Usage     UsageStats
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Session is a signed-in device. Destroyed on sign-out or expiry.
type Session struct {
	ID        string
	UserID    string
	IP        string
	Country   string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is past its lifetime at now.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
