package appointment

import (
	"context"
	"log/slog"
	"time"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

type GetAvailability struct {
	repo   domain.Repository
	policy Policy
	now    func() time.Time
	log    *slog.Logger
}

func NewGetAvailability(repo domain.Repository, policy Policy, now func() time.Time, log *slog.Logger) *GetAvailability {
	return &GetAvailability{repo: repo, policy: policy, now: now, log: log.With("module", "availability")}
}

// Execute returns the bookable slots of date (YYYY-MM-DD) in grid order.
// Dates outside the booking window have no slots.
func (uc *GetAvailability) Execute(ctx context.Context, date string) ([]string, error) {
	now := uc.now()

	day, err := timezone.ParseDate(date, now.Location())
	if err != nil {
		return nil, httperr.ErrValidation([]string{domain.MsgDateInvalid})
	}
	in := domain.AvailabilityInput{Date: day}

	today := timezone.StartOfDay(now)
	if in.Date.Before(today) || in.Date.After(today.AddDate(0, 0, uc.policy.MaxDaysAhead)) {
		return []string{}, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.policy.StoreTimeout)
	defer cancel()

	existing, err := uc.repo.ListByDate(storeCtx, date)
	if err != nil {
		if !uc.policy.FailOpen {
			return nil, err
		}
		// degraded: every grid slot is offered, the lead time still applies
		uc.log.Warn("availability.degraded", "date", date, "err", err)
		return domain.FreeSlots(nil, in.Date, now, uc.policy.Lead), nil
	}

	return domain.FreeSlots(existing, in.Date, now, uc.policy.Lead), nil
}
