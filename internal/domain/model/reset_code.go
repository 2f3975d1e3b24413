package model

import "time"

// PasswordResetCode is a one-time 6-digit code mailed to the user. At most
// one row per user is live: re-requesting deletes earlier rows first, and a
// successful reset deletes the row.
type PasswordResetCode struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	Email     string    `gorm:"type:varchar(200)" json:"email"`
	Code      string    `gorm:"type:varchar(10);not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (c *PasswordResetCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
