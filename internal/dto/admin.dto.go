package dto

import (
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type AdminDTO struct {
	Subject     string             `json:"subject"`
	Email       string             `json:"email"`
	Name        string             `json:"name"`
	Role        string             `json:"role"`
	Status      string             `json:"status"`
	Permissions models.Permissions `json:"permissions"`
	LastLoginAt *time.Time         `json:"last_login_at"`
	CreatedAt   time.Time          `json:"created_at"`
}

func Admin(a *models.Administrator) AdminDTO {
	return AdminDTO{
		Subject:     a.Subject,
		Email:       a.Email,
		Name:        a.Name,
		Role:        a.Role,
		Status:      a.Status,
		Permissions: a.Permissions.Data(),
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}

func Admins(list []models.Administrator) []AdminDTO {
	out := make([]AdminDTO, 0, len(list))
	for i := range list {
		out = append(out, Admin(&list[i]))
	}
	return out
}
