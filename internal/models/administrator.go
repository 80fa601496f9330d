package models

import (
	"time"

	"gorm.io/datatypes"
)

// Permissions is the per-capability flag set of an administrator.
type Permissions struct {
	Dashboard    bool `json:"dashboard"`
	Contacts     bool `json:"contacts"`
	Appointments bool `json:"appointments"`
	Reports      bool `json:"reports"`
	Settings     bool `json:"settings"`
	Users        bool `json:"users"`
	CreateUsers  bool `json:"createUsers"`
	DeleteUsers  bool `json:"deleteUsers"`
	ExportData   bool `json:"exportData"`
}

// Administrator is keyed by the identity provider subject. Email is a
// denormalised copy that follows the provider.
type Administrator struct {
	Subject string `gorm:"primaryKey;size:128" json:"subject"`
	Email   string `gorm:"size:160;uniqueIndex;not null" json:"email"`
	Name    string `gorm:"size:120" json:"name"`

	Role        string                          `gorm:"size:20;not null" json:"role"`
	Permissions datatypes.JSONType[Permissions] `json:"permissions"`
	Status      string                          `gorm:"size:20;not null;default:'active'" json:"status"`

	PasswordHash string     `gorm:"size:255" json:"-"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
