package models

import "time"

// User is an account able to authenticate against the API.
// Staff users are the "admins" managed through /api/v1/accounts and the
// recipients of product update notifications.
type User struct {
	ID          uint      `gorm:"primaryKey"`
	Email       string    `gorm:"uniqueIndex;size:254;not null"`
	Password    string    `gorm:"size:128;not null"` // bcrypt hash
	FirstName   string    `gorm:"size:150"`
	LastName    string    `gorm:"size:150"`
	IsActive    bool      `gorm:"not null"`
	IsStaff     bool      `gorm:"not null;index"`
	IsSuperuser bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"column:created;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:modified;autoUpdateTime"`
}
