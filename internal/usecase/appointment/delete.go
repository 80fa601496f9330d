package appointment

import (
	"context"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit Auditor
}

func NewDeleteAppointment(repo domain.Repository, auditor Auditor) *DeleteAppointment {
	if auditor == nil {
		auditor = nopAuditor{}
	}
	return &DeleteAppointment{repo: repo, audit: auditor}
}

func (uc *DeleteAppointment) Execute(ctx context.Context, actor, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorSubject: &actor,
		Action:       "appointment_deleted",
		Entity:       "appointment",
		EntityID:     id,
	})
	return nil
}
