package models

import "time"

// Client types
const (
	ClientIndividual = "individual"
	ClientCompany    = "company"
)

// Client entity
type Client struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null;index" json:"name"`
	Type        string `gorm:"not null;default:'company'" json:"type"` // individual | company
	ContactInfo string `json:"contact_info"`
	AccessCode  string `gorm:"size:4" json:"access_code"` // PIN for the client portal
	CreatedAt   time.Time `json:"created_at"`
}
