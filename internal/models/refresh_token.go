package models

import "time"

// RefreshToken stores the SHA-256 hash of an issued refresh token. Rotation
// revokes the old row and links it to its replacement.
type RefreshToken struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	UserID       uint       `gorm:"index;not null" json:"user_id"`
	TokenHash    string     `gorm:"uniqueIndex;size:64;not null" json:"-"`
	ExpiresAt    time.Time  `gorm:"index;not null" json:"expires_at"`
	RevokedAt    *time.Time `gorm:"index" json:"revoked_at,omitempty"`
	ReplacedByID *uint      `json:"replaced_by_id,omitempty"`
	CreatedByIP  string     `gorm:"size:64" json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }
