package models

import "time"

// User can sign in to the dashboard. Password is a bcrypt hash.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null;index" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Name      string `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
