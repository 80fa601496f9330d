package models

import "time"

// Appointment is one scheduled visit. Date and Time are kept as the
// calendar strings the client booked (YYYY-MM-DD, HH:MM) in lab local time.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:160;not null;index" json:"email"`
	Phone   string `gorm:"size:20;not null" json:"phone"`
	Service string `gorm:"size:120;not null" json:"service"`

	Date string `gorm:"size:10;not null;index" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	Notes  string `gorm:"size:1000" json:"notes"`
	Status string `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
