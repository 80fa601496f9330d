package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit Auditor
	now   func() time.Time
}

func NewUpdateStatus(repo domain.Repository, auditor Auditor, now func() time.Time) *UpdateStatus {
	if auditor == nil {
		auditor = nopAuditor{}
	}
	return &UpdateStatus{repo: repo, audit: auditor, now: now}
}

// Execute moves the appointment along the status workflow. Setting the
// current status again changes nothing and is not audited.
func (uc *UpdateStatus) Execute(
	ctx context.Context,
	actor string,
	id string,
	to domain.Status,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	from := domain.Status(ap.Status)
	if err := domain.ChangeStatus(ap, to, uc.now()); err != nil {
		return nil, err
	}
	if from == to {
		return ap, nil
	}

	if err := uc.repo.Update(ctx, ap, false); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorSubject: &actor,
		Action:       "appointment_" + string(to),
		Entity:       "appointment",
		EntityID:     ap.ID,
		Metadata:     map[string]string{"from": string(from), "to": string(to)},
	})

	return ap, nil
}
