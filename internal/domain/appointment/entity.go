package appointment

import (
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// ChangeStatus applies a status change when the transition table allows it.
func ChangeStatus(ap *models.Appointment, to Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), to); err != nil {
		return err
	}

	ap.Status = string(to)
	ap.UpdatedAt = now
	return nil
}

// Patch holds the editable fields of an appointment. Nil means unchanged.
type Patch struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Service *string `json:"service"`
	Date    *string `json:"date"`
	Time    *string `json:"time"`
	Notes   *string `json:"notes"`
}

// MovesSlot reports whether applying p changes the booked date or time.
func (p Patch) MovesSlot(ap *models.Appointment) bool {
	return (p.Date != nil && *p.Date != ap.Date) || (p.Time != nil && *p.Time != ap.Time)
}

// Apply copies the set fields onto a request built from ap.
func (p Patch) Apply(ap *models.Appointment) BookingRequest {
	req := RequestFrom(ap)
	if p.Name != nil {
		req.Name = *p.Name
	}
	if p.Email != nil {
		req.Email = *p.Email
	}
	if p.Phone != nil {
		req.Phone = *p.Phone
	}
	if p.Service != nil {
		req.Service = *p.Service
	}
	if p.Date != nil {
		req.Date = *p.Date
	}
	if p.Time != nil {
		req.Time = *p.Time
	}
	if p.Notes != nil {
		req.Notes = *p.Notes
	}
	return req
}

func RequestFrom(ap *models.Appointment) BookingRequest {
	return BookingRequest{
		Name:    ap.Name,
		Email:   ap.Email,
		Phone:   ap.Phone,
		Service: ap.Service,
		Date:    ap.Date,
		Time:    ap.Time,
		Notes:   ap.Notes,
	}
}
