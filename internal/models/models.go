package models

import "time"

// User represents an account that owns video summaries.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Summary is the persisted result of one orchestration run. Rows are immutable once written.
type Summary struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	VideoURL     string    `json:"videoUrl"`
	VideoTitle   string    `json:"videoTitle"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	KeyPoints    string    `json:"keyPoints"`
	Summary      string    `json:"summary"`
	AIAnalysis   string    `json:"aiAnalysis"`
	VideoPurpose string    `json:"videoPurpose"`
	Conclusions  string    `json:"conclusions"`
	CreatedAt    time.Time `json:"createdAt"`
}

// SessionToken is the bearer credential issued on login.
type SessionToken struct {
	Token     string
	ExpiresAt time.Time
}
