package appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	"github.com/BruksfildServices01/dental-lab/internal/db/dbtest"
	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/infra/repository"
	"github.com/BruksfildServices01/dental-lab/internal/infra/slotlock"
	"github.com/BruksfildServices01/dental-lab/internal/logger"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

var lima = timezone.Location(timezone.DefaultTimezone)

func clockAt(date, hm string) func() time.Time {
	t, err := timezone.ParseDateTime(date, hm, lima)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return t }
}

type recordingNotifier struct {
	mu     sync.Mutex
	booked []models.Appointment
}

func (n *recordingNotifier) AppointmentBooked(ap models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.booked = append(n.booked, ap)
}

type recordingAuditor struct {
	mu     sync.Mutex
	events []audit.Event
}

func (a *recordingAuditor) Dispatch(ev audit.Event) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, ev)
}

// failingRepo answers every call with err.
type failingRepo struct {
	domain.Repository
	err error
}

func (f failingRepo) ListByDate(context.Context, string) ([]models.Appointment, error) {
	return nil, f.err
}

type heldLocker struct{}

func (heldLocker) Acquire(context.Context, string, string) (slotlock.Release, error) {
	return nil, slotlock.ErrHeld
}

type brokenLocker struct{}

func (brokenLocker) Acquire(context.Context, string, string) (slotlock.Release, error) {
	return nil, errors.New("redis: connection refused")
}

type fixture struct {
	repo     *repository.AppointmentGormRepository
	notifier *recordingNotifier
	auditor  *recordingAuditor
	create   *CreateAppointment
	avail    *GetAvailability
	get      *GetAppointment
}

func newFixture(t *testing.T, now func() time.Time) *fixture {
	t.Helper()

	repo := repository.NewAppointmentGormRepository(dbtest.New(t), logger.Discard())
	n := &recordingNotifier{}
	a := &recordingAuditor{}
	p := DefaultPolicy()

	return &fixture{
		repo:     repo,
		notifier: n,
		auditor:  a,
		create:   NewCreateAppointment(repo, nil, n, a, p, now, logger.Discard()),
		avail:    NewGetAvailability(repo, p, now, logger.Discard()),
		get:      NewGetAppointment(repo),
	}
}

func anaRequest(date, hm string) domain.BookingRequest {
	return domain.BookingRequest{
		Name:    "Ana Pérez",
		Email:   "ana@example.com",
		Phone:   "987654321",
		Service: "Limpieza dental",
		Date:    date,
		Time:    hm,
		Notes:   "primera vez",
	}
}

// ======================================================
// Create
// ======================================================

func TestCreate_BookThenSlotIsTaken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	ap, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)
	require.NotEmpty(t, ap.ID)

	taken, err := f.get.IsSlotTaken(ctx, "2026-03-11", "10:00")
	require.NoError(t, err)
	assert.True(t, taken)

	got, err := f.get.Execute(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.Name)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "987654321", got.Phone)
	assert.Equal(t, "Limpieza dental", got.Service)
	assert.Equal(t, "2026-03-11", got.Date)
	assert.Equal(t, "10:00", got.Time)
	assert.Equal(t, "primera vez", got.Notes)
	assert.Equal(t, "pending", got.Status)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())

	require.Len(t, f.notifier.booked, 1)
	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "appointment_created", f.auditor.events[0].Action)
}

func TestCreate_ValidationAggregates(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	_, err := f.create.Execute(context.Background(), domain.BookingRequest{Name: "A", Email: "bad", Phone: "123"})

	msgs, ok := httperr.ValidationMessages(err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(msgs), 5)
	assert.Empty(t, f.notifier.booked)
}

func TestCreate_SecondBookingSameSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	_, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)

	_, err = f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
	assert.Len(t, f.notifier.booked, 1)
}

func TestCreate_TooSoonToday(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	_, err := f.create.Execute(context.Background(), anaRequest("2026-03-10", "10:30"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeTooSoon))

	_, err = f.create.Execute(context.Background(), anaRequest("2026-03-10", "11:00"))
	assert.NoError(t, err)
}

func TestCreate_ConcurrentSameSlotOneWins(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	const n = 6
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.create.Execute(context.Background(), anaRequest("2026-03-12", "15:00"))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	ok := 0
	for err := range results {
		if err == nil {
			ok++
			continue
		}
		assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken), err)
	}
	assert.Equal(t, 1, ok)
}

func TestCreate_LockHeldIsSlotTaken(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))
	uc := NewCreateAppointment(f.repo, heldLocker{}, nil, nil, DefaultPolicy(), clockAt("2026-03-10", "09:00"), logger.Discard())

	_, err := uc.Execute(context.Background(), anaRequest("2026-03-11", "10:00"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestCreate_LockOutageStillBooks(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))
	uc := NewCreateAppointment(f.repo, brokenLocker{}, nil, nil, DefaultPolicy(), clockAt("2026-03-10", "09:00"), logger.Discard())

	_, err := uc.Execute(context.Background(), anaRequest("2026-03-11", "10:00"))
	assert.NoError(t, err)
}

// ======================================================
// Availability
// ======================================================

func TestAvailability_ExcludesBookedSlot(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	_, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)

	slots, err := f.avail.Execute(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Len(t, slots, 19)
	assert.NotContains(t, slots, "10:00")

	again, err := f.avail.Execute(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}

func TestAvailability_StoreFailureFailsOpen(t *testing.T) {
	now := clockAt("2026-03-10", "09:00")
	uc := NewGetAvailability(failingRepo{err: context.DeadlineExceeded}, DefaultPolicy(), now, logger.Discard())

	slots, err := uc.Execute(context.Background(), "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, domain.BaseGrid(), slots)
	assert.Len(t, slots, 20)
}

func TestAvailability_StoreFailureTodayKeepsLeadTime(t *testing.T) {
	now := clockAt("2026-03-10", "09:00")
	uc := NewGetAvailability(failingRepo{err: context.DeadlineExceeded}, DefaultPolicy(), now, logger.Discard())

	slots, err := uc.Execute(context.Background(), "2026-03-10")
	require.NoError(t, err)
	require.Len(t, slots, 14)
	assert.Equal(t, "11:00", slots[0])
	assert.Equal(t, "17:30", slots[len(slots)-1])
}

func TestAvailability_StoreFailureFailClosed(t *testing.T) {
	p := DefaultPolicy()
	p.FailOpen = false
	uc := NewGetAvailability(failingRepo{err: errors.New("down")}, p, clockAt("2026-03-10", "09:00"), logger.Discard())

	_, err := uc.Execute(context.Background(), "2026-03-11")
	assert.Error(t, err)
}

func TestAvailability_OutsideWindow(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "09:00"))

	past, err := f.avail.Execute(context.Background(), "2026-03-09")
	require.NoError(t, err)
	assert.Empty(t, past)

	far, err := f.avail.Execute(context.Background(), "2026-12-31")
	require.NoError(t, err)
	assert.Empty(t, far)

	_, err = f.avail.Execute(context.Background(), "mañana")
	_, isValidation := httperr.ValidationMessages(err)
	assert.True(t, isValidation)
}

func TestAvailability_TodayLateEvening(t *testing.T) {
	f := newFixture(t, clockAt("2026-03-10", "16:00"))

	slots, err := f.avail.Execute(context.Background(), "2026-03-10")
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

// ======================================================
// Status / edit / delete / list / stats
// ======================================================

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	now := clockAt("2026-03-10", "09:00")
	f := newFixture(t, now)
	uc := NewUpdateStatus(f.repo, f.auditor, now)

	ap, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)

	_, err = uc.Execute(ctx, "sub-1", ap.ID, domain.StatusCompleted)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	got, err := uc.Execute(ctx, "sub-1", ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", got.Status)

	// same status is a no-op
	_, err = uc.Execute(ctx, "sub-1", ap.ID, domain.StatusConfirmed)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, "sub-1", ap.ID, domain.StatusCancelled)
	require.NoError(t, err)

	// cancelling frees the slot
	slots, err := f.avail.Execute(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Contains(t, slots, "10:00")

	actions := []string{}
	for _, ev := range f.auditor.events {
		actions = append(actions, ev.Action)
	}
	assert.Equal(t, []string{"appointment_created", "appointment_confirmed", "appointment_cancelled"}, actions)

	_, err = uc.Execute(ctx, "sub-1", "missing", domain.StatusConfirmed)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()
	now := clockAt("2026-03-10", "09:00")
	f := newFixture(t, now)
	uc := NewUpdateAppointment(f.repo, f.auditor, DefaultPolicy(), now)

	a, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)
	b, err := f.create.Execute(ctx, anaRequest("2026-03-11", "11:00"))
	require.NoError(t, err)

	taken := "10:00"
	_, err = uc.Execute(ctx, "sub-1", b.ID, domain.Patch{Time: &taken})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))

	offGrid := "10:10"
	_, err = uc.Execute(ctx, "sub-1", b.ID, domain.Patch{Time: &offGrid})
	msgs, ok := httperr.ValidationMessages(err)
	require.True(t, ok)
	assert.Equal(t, []string{domain.MsgTimeOffGrid}, msgs)

	free, notes := "12:30", "reprogramada"
	got, err := uc.Execute(ctx, "sub-1", b.ID, domain.Patch{Time: &free, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, "12:30", got.Time)
	assert.Equal(t, "reprogramada", got.Notes)

	name := "Ana María Pérez"
	got, err = uc.Execute(ctx, "sub-1", a.ID, domain.Patch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "10:00", got.Time)
}

func TestDeleteAndList(t *testing.T) {
	ctx := context.Background()
	now := clockAt("2026-03-10", "09:00")
	f := newFixture(t, now)
	list := NewListAppointments(f.repo)
	del := NewDeleteAppointment(f.repo, f.auditor)

	a, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)
	luis := anaRequest("2026-03-12", "10:00")
	luis.Email = "Luis@Example.com"
	_, err = f.create.Execute(ctx, luis)
	require.NoError(t, err)

	byDate, err := list.Execute(ctx, ListFilter{Date: "2026-03-11"})
	require.NoError(t, err)
	assert.Len(t, byDate, 1)

	byEmail, err := list.Execute(ctx, ListFilter{Email: "LUIS@example.com"})
	require.NoError(t, err)
	assert.Len(t, byEmail, 1)

	all, err := list.Execute(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = list.Execute(ctx, ListFilter{Date: "11/03/2026"})
	assert.Error(t, err)

	require.NoError(t, del.Execute(ctx, "sub-1", a.ID))
	assert.True(t, httperr.IsBusiness(del.Execute(ctx, "sub-1", a.ID), httperr.CodeNotFound))
}

func TestGetStats(t *testing.T) {
	ctx := context.Background()
	now := clockAt("2026-03-10", "09:00")
	f := newFixture(t, now)

	_, err := f.create.Execute(ctx, anaRequest("2026-03-11", "10:00"))
	require.NoError(t, err)
	_, err = f.create.Execute(ctx, anaRequest("2026-03-11", "10:30"))
	require.NoError(t, err)

	s, err := NewGetStats(f.repo, now).Execute(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 2, s.ByStatus["pending"])
	assert.Equal(t, 0, s.ByStatus["confirmed"])
	assert.Len(t, s.ByStatus, 4)
	assert.Equal(t, 2, s.CurrentMonth)
}
