package appointment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/infra/slotlock"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo     domain.Repository
	locker   slotlock.Locker
	notifier Notifier
	audit    Auditor
	policy   Policy
	now      func() time.Time
	log      *slog.Logger
}

func NewCreateAppointment(
	repo domain.Repository,
	locker slotlock.Locker,
	notifier Notifier,
	auditor Auditor,
	policy Policy,
	now func() time.Time,
	log *slog.Logger,
) *CreateAppointment {
	if locker == nil {
		locker = slotlock.Nop{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if auditor == nil {
		auditor = nopAuditor{}
	}
	return &CreateAppointment{
		repo:     repo,
		locker:   locker,
		notifier: notifier,
		audit:    auditor,
		policy:   policy,
		now:      now,
		log:      log.With("module", "booking"),
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in domain.BookingRequest,
) (*models.Appointment, error) {

	now := uc.now()
	req := in.Normalize()

	// --------------------------------------------------
	// 1️⃣ Validación
	// --------------------------------------------------
	if errs := domain.Validate(req, now, uc.policy.MaxDaysAhead); len(errs) > 0 {
		return nil, httperr.ErrValidation(errs)
	}

	// --------------------------------------------------
	// 2️⃣ Anticipación mínima
	// --------------------------------------------------
	day, _ := timezone.ParseDate(req.Date, now.Location())
	if timezone.StartOfDay(now).Equal(day) && !domain.StartsAfter(day, req.Time, now.Add(uc.policy.Lead)) {
		return nil, httperr.ErrBusiness(httperr.CodeTooSoon)
	}

	// --------------------------------------------------
	// 3️⃣ Bloqueo del horario
	// --------------------------------------------------
	release, err := uc.locker.Acquire(ctx, req.Date, req.Time)
	switch {
	case errors.Is(err, slotlock.ErrHeld):
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	case err != nil:
		// the unique index still guards the slot
		uc.log.Warn("booking.lock.unavailable", "date", req.Date, "time", req.Time, "err", err)
	default:
		defer release()
	}

	// --------------------------------------------------
	// 4️⃣ Creación (verificación y escritura en una transacción)
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Notes:     req.Notes,
		Status:    string(domain.InitialStatus()),
		CreatedAt: now,
		UpdatedAt: now,
	}

	storeCtx, cancel := context.WithTimeout(ctx, uc.policy.StoreTimeout)
	defer cancel()

	if err := uc.repo.CreateIfSlotFree(storeCtx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Notificaciones y auditoría (sin esperar)
	// --------------------------------------------------
	uc.notifier.AppointmentBooked(*ap)

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]string{"date": ap.Date, "time": ap.Time},
	})

	return ap, nil
}
