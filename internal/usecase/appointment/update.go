package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

type UpdateAppointment struct {
	repo   domain.Repository
	audit  Auditor
	policy Policy
	now    func() time.Time
}

func NewUpdateAppointment(repo domain.Repository, auditor Auditor, policy Policy, now func() time.Time) *UpdateAppointment {
	if auditor == nil {
		auditor = nopAuditor{}
	}
	return &UpdateAppointment{repo: repo, audit: auditor, policy: policy, now: now}
}

// Execute applies an admin edit. Moving the booking re-runs the date rules
// and the slot check against every other live appointment.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	actor string,
	id string,
	patch domain.Patch,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	moved := patch.MovesSlot(ap)
	req := patch.Apply(ap).Normalize()

	if errs := domain.ValidateEdit(req, now, uc.policy.MaxDaysAhead, moved); len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	if moved {
		day, _ := timezone.ParseDate(req.Date, now.Location())
		if timezone.StartOfDay(now).Equal(day) && !domain.StartsAfter(day, req.Time, now.Add(uc.policy.Lead)) {
			return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
		}
	}

	ap.Name = req.Name
	ap.Email = req.Email
	ap.Phone = req.Phone
	ap.Service = req.Service
	ap.Date = req.Date
	ap.Time = req.Time
	ap.Notes = req.Notes
	ap.UpdatedAt = now

	if err := uc.repo.Update(ctx, ap, moved); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorSubject: &actor,
		Action:       "appointment_updated",
		Entity:       "appointment",
		EntityID:     ap.ID,
		Metadata:     map[string]bool{"moved": moved},
	})

	return ap, nil
}
