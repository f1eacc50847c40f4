package model

import (
	"time"
)

// User 账户模型，密码只存 bcrypt 哈希.
type User struct {
	ID             uint      `gorm:"primaryKey"           json:"id"`
	Username       string    `gorm:"size:255;uniqueIndex" json:"username"`
	Email          string    `gorm:"size:255;uniqueIndex" json:"email"`
	HashedPassword string    `gorm:"size:128"             json:"-"`
	IsAdmin        bool      `json:"is_admin"`
	CreatedAt      time.Time `json:"created_at"`
}
