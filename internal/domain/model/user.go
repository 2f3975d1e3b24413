package model

import "time"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	FullName     string `gorm:"type:varchar(200)" json:"full_name"`
	Email        string `gorm:"type:varchar(200);uniqueIndex;not null" json:"email"`
	Address      string `gorm:"type:text" json:"address"`
	Phone        string `gorm:"type:varchar(50)" json:"phone"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'USER'" json:"role"`
	// Avatar is the stored filename under the upload directory, empty when unset.
	Avatar       string     `gorm:"type:text" json:"avatar"`
	TokenVersion int        `gorm:"not null;default:0" json:"-"`
	LastLoginAt  *time.Time `json:"-"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"-"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
