package contact

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type Notifier interface {
	ContactReceived(c models.Contact)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

const (
	defaultListLimit = 100
	maxListLimit     = 500
)

// Service groups the contact inbox operations.
type Service struct {
	repo     domain.Repository
	notifier Notifier
	audit    Auditor
	now      func() time.Time
}

func NewService(repo domain.Repository, notifier Notifier, auditor Auditor, now func() time.Time) *Service {
	return &Service{repo: repo, notifier: notifier, audit: auditor, now: now}
}

func (s *Service) Create(ctx context.Context, in domain.Request) (*models.Contact, error) {
	if errs := domain.Validate(in); len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	now := s.now()
	c := domain.Build(in)
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.ContactReceived(*c)
	}
	s.dispatch(nil, "contact_created", c.ID, map[string]string{"subject": c.Subject})

	return c, nil
}

func (s *Service) Get(ctx context.Context, id string) (*models.Contact, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context, f domain.Filter) ([]models.Contact, error) {
	var errs []string
	if f.Status != "" && !domain.Status(f.Status).Valid() {
		errs = append(errs, domain.MsgStatus)
	}
	if f.Priority != "" && !domain.Priority(f.Priority).Valid() {
		errs = append(errs, domain.MsgPriority)
	}
	if len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	if f.Limit <= 0 {
		f.Limit = defaultListLimit
	}
	if f.Limit > maxListLimit {
		f.Limit = maxListLimit
	}
	return s.repo.List(ctx, f)
}

func (s *Service) Update(ctx context.Context, actor, id string, p domain.Patch) (*models.Contact, error) {
	if errs := p.Validate(); len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(c)
	c.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	s.dispatch(&actor, "contact_updated", c.ID, map[string]string{"status": c.Status, "priority": c.Priority})
	return c, nil
}

func (s *Service) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.dispatch(&actor, "contact_deleted", id, nil)
	return nil
}

func (s *Service) dispatch(actor *string, action, id string, meta any) {
	if s.audit == nil {
		return
	}
	s.audit.Dispatch(audit.Event{
		ActorSubject: actor,
		Action:       action,
		Entity:       "contact",
		EntityID:     id,
		Metadata:     meta,
	})
}
