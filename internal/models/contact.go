package models

import "time"

// Contact is an inbound inquiry from the public contact form.
type Contact struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:160;not null;index" json:"email"`
	Phone   string `gorm:"size:20" json:"phone"`
	Subject string `gorm:"size:200" json:"subject"`
	Message string `gorm:"type:text;not null" json:"message"`

	Status   string `gorm:"size:20;not null;default:'new';index" json:"status"`
	Priority string `gorm:"size:10;not null;default:'medium'" json:"priority"`
	Source   string `gorm:"size:40;default:'website'" json:"source"`

	AdminNotes string `gorm:"type:text" json:"admin_notes"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
