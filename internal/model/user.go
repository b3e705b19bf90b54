package model

import (
	"time"
)

// User 以 OAuth subject 作为主键, 每次登录时整体覆盖
type User struct {
	ID              string  `gorm:"primaryKey;type:varchar(255)"`
	Email           *string `gorm:"type:varchar(255);uniqueIndex:idx_users_email"`
	FirstName       *string `gorm:"type:varchar(255)"`
	LastName        *string `gorm:"type:varchar(255)"`
	ProfileImageURL *string `gorm:"type:varchar(1024)"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (User) TableName() string {
	return "users"
}
