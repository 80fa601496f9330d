package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
	"github.com/BruksfildServices01/dental-lab/internal/validators"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

type ListFilter struct {
	Date  string
	Email string
	Limit int
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists by date when given, then by email, and otherwise the newest
// appointments up to the limit.
func (uc *ListAppointments) Execute(ctx context.Context, f ListFilter) ([]models.Appointment, error) {
	switch {
	case f.Date != "":
		if _, err := timezone.ParseDate(f.Date, timezone.Location(timezone.DefaultTimezone)); err != nil {
			return nil, httperr.ErrValidation([]string{domain.MsgDateInvalid})
		}
		return uc.repo.ListByDate(ctx, f.Date)

	case strings.TrimSpace(f.Email) != "":
		return uc.repo.ListByEmail(ctx, validators.NormalizeEmail(f.Email))

	default:
		limit := f.Limit
		if limit <= 0 {
			limit = defaultListLimit
		}
		if limit > maxListLimit {
			limit = maxListLimit
		}
		return uc.repo.ListAll(ctx, limit)
	}
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id string) (*models.Appointment, error) {
	return uc.repo.GetByID(ctx, id)
}

// IsSlotTaken reports whether a live appointment holds (date, hm).
func (uc *GetAppointment) IsSlotTaken(ctx context.Context, date, hm string) (bool, error) {
	return uc.repo.IsSlotTaken(ctx, date, hm, "")
}
