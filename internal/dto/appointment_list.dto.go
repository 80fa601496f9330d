package dto

import (
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

// AppointmentListDTO is the row shown in the admin agenda.
type AppointmentListDTO struct {
	ID        string    `json:"id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    string    `json:"status"`
	Name      string    `json:"name"`
	Service   string    `json:"service"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

func AppointmentList(list []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(list))
	for _, ap := range list {
		out = append(out, AppointmentListDTO{
			ID:        ap.ID,
			Date:      ap.Date,
			Time:      ap.Time,
			Status:    ap.Status,
			Name:      ap.Name,
			Service:   ap.Service,
			Email:     ap.Email,
			Phone:     ap.Phone,
			CreatedAt: ap.CreatedAt,
		})
	}
	return out
}

// BookingCreatedDTO is what the public site gets back after booking.
type BookingCreatedDTO struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

func BookingCreated(ap *models.Appointment) BookingCreatedDTO {
	return BookingCreatedDTO{ID: ap.ID, Status: ap.Status, Date: ap.Date, Time: ap.Time}
}
