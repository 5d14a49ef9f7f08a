package models

import "time"

// WorkLog records labor spent on an order (or unassigned shop work).
// Cost is frozen at creation; M2Painted is informational only.
type WorkLog struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	OrderID    *uint    `gorm:"index" json:"order_id"` // nullable: general shop work
	WorkerName string   `gorm:"not null;index" json:"worker_name"`
	Operation  string   `gorm:"not null" json:"operation"`
	Date       string   `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Hours      float64  `gorm:"not null" json:"hours"`
	HourlyRate float64  `gorm:"not null" json:"hourly_rate"`
	Cost       float64  `gorm:"not null" json:"cost"`
	M2Painted  *float64 `json:"m2_painted"`
	CreatedAt  time.Time `json:"created_at"`
}

// Worker is a roster entry used to prefill the hourly rate on new logs.
// Free-form names on logs are still accepted.
type Worker struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null;unique" json:"name"`
	DefaultHourlyRate float64 `gorm:"not null" json:"default_hourly_rate"`
}
