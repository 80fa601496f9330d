package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/BruksfildServices01/dental-lab/internal/db/dbtest"
	"github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/logger"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

func newAppointment(date, hm, status string) *models.Appointment {
	return &models.Appointment{
		ID:      uuid.NewString(),
		Name:    "Ana Pérez",
		Email:   "ana@example.com",
		Phone:   "987654321",
		Service: "Limpieza dental",
		Date:    date,
		Time:    hm,
		Status:  status,
	}
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func TestAppointmentRepo_CreateAndRead(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	ap := newAppointment("2026-03-11", "10:00", "pending")
	ap.Notes = "primera visita"
	require.NoError(t, repo.CreateIfSlotFree(ctx, ap))

	got, err := repo.GetByID(ctx, ap.ID)
	require.NoError(t, err)
	assert.Equal(t, ap.Name, got.Name)
	assert.Equal(t, ap.Notes, got.Notes)
	assert.Equal(t, "pending", got.Status)
	assert.False(t, got.CreatedAt.IsZero())

	taken, err := repo.IsSlotTaken(ctx, "2026-03-11", "10:00", "")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = repo.IsSlotTaken(ctx, "2026-03-11", "10:00", ap.ID)
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestAppointmentRepo_GetMissing(t *testing.T) {
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
	assert.True(t, httperr.IsBusiness(repo.Delete(context.Background(), "nope"), httperr.CodeNotFound))
}

func TestAppointmentRepo_SlotTakenOnlyByLive(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment("2026-03-11", "10:00", "cancelled")))
	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment("2026-03-11", "10:00", "completed")))
	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment("2026-03-11", "10:00", "pending")))

	err := repo.CreateIfSlotFree(ctx, newAppointment("2026-03-11", "10:00", "pending"))
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestAppointmentRepo_ConcurrentCreateSingleWinner(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	const attempts = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.CreateIfSlotFree(ctx, newAppointment("2026-03-11", "09:30", "pending"))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case httperr.IsBusiness(err, httperr.CodeSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, attempts-1, taken)

	list, err := repo.ListByDate(ctx, "2026-03-11")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAppointmentRepo_Lists(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, hm := range []string{"11:00", "08:00", "09:30"} {
		ap := newAppointment("2026-03-11", hm, "pending")
		ap.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if i == 2 {
			ap.Email = "luis@example.com"
		}
		require.NoError(t, repo.CreateIfSlotFree(ctx, ap))
	}
	require.NoError(t, repo.CreateIfSlotFree(ctx, newAppointment("2026-03-12", "08:00", "pending")))

	byDate, err := repo.ListByDate(ctx, "2026-03-11")
	require.NoError(t, err)
	require.Len(t, byDate, 3)
	assert.Equal(t, []string{"08:00", "09:30", "11:00"}, []string{byDate[0].Time, byDate[1].Time, byDate[2].Time})

	all, err := repo.ListAll(ctx, 2)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.True(t, !all[0].CreatedAt.Before(all[1].CreatedAt))

	byEmail, err := repo.ListByEmail(ctx, "luis@example.com")
	require.NoError(t, err)
	require.Len(t, byEmail, 1)
	assert.Equal(t, "09:30", byEmail[0].Time)
}

func TestAppointmentRepo_UpdateMovingSlot(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	a := newAppointment("2026-03-11", "10:00", "pending")
	b := newAppointment("2026-03-11", "11:00", "confirmed")
	require.NoError(t, repo.CreateIfSlotFree(ctx, a))
	require.NoError(t, repo.CreateIfSlotFree(ctx, b))

	b.Time = "10:00"
	err := repo.Update(ctx, b, true)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))

	b.Time = "12:00"
	require.NoError(t, repo.Update(ctx, b, true))

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:00", got.Time)

	// re-saving its own slot is not a conflict
	got.Notes = "traer radiografía"
	require.NoError(t, repo.Update(ctx, got, true))
}

func TestAppointmentRepo_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentGormRepository(dbtest.New(t), logger.Discard())

	ap := newAppointment("2026-03-11", "10:00", "pending")
	require.NoError(t, repo.CreateIfSlotFree(ctx, ap))
	require.NoError(t, repo.Delete(ctx, ap.ID))

	taken, err := repo.IsSlotTaken(ctx, "2026-03-11", "10:00", "")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestAppointmentRepo_ClosedDatabaseIsClassified(t *testing.T) {
	gdb := dbtest.New(t)
	repo := NewAppointmentGormRepository(gdb, logger.Discard())

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.ListByDate(context.Background(), "2026-03-11")
	require.Error(t, err)

	var se *httperr.StoreError
	assert.ErrorAs(t, err, &se)
}

// --------------------------------------------------
// Contacts
// --------------------------------------------------

func TestContactRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewContactGormRepository(dbtest.New(t), logger.Discard())

	for i, p := range []string{"low", "high", "high"} {
		c := contact.Build(contact.Request{Name: "Luis", Email: "luis@example.com", Message: "Quiero una cotización", Priority: p})
		c.ID = uuid.NewString()
		c.CreatedAt = time.Date(2026, 3, 1, i, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, c))
	}

	all, err := repo.List(ctx, contact.Filter{})
	require.NoError(t, err)
	require.Len(t, all, 3)

	high, err := repo.List(ctx, contact.Filter{Priority: "high", Limit: 1})
	require.NoError(t, err)
	require.Len(t, high, 1)

	got, err := repo.GetByID(ctx, high[0].ID)
	require.NoError(t, err)
	got.Status = "read"
	require.NoError(t, repo.Update(ctx, got))

	read, err := repo.List(ctx, contact.Filter{Status: "read"})
	require.NoError(t, err)
	assert.Len(t, read, 1)

	require.NoError(t, repo.Delete(ctx, got.ID))
	_, err = repo.GetByID(ctx, got.ID)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNotFound))
}

// --------------------------------------------------
// Administrators
// --------------------------------------------------

func TestAdminRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewAdminGormRepository(dbtest.New(t), logger.Discard())

	a := &models.Administrator{
		Subject:     "sub-1",
		Email:       "jefa@lab.pe",
		Role:        "admin",
		Status:      "active",
		Permissions: datatypes.NewJSONType(models.Permissions{Dashboard: true, Contacts: true}),
	}
	require.NoError(t, repo.Save(ctx, a))

	got, err := repo.GetBySubject(ctx, "sub-1")
	require.NoError(t, err)
	assert.True(t, got.Permissions.Data().Contacts)
	assert.False(t, got.Permissions.Data().Users)

	got.Email = "nueva@lab.pe"
	require.NoError(t, repo.Save(ctx, got))

	byEmail, err := repo.GetByEmail(ctx, "nueva@lab.pe")
	require.NoError(t, err)
	assert.Equal(t, "sub-1", byEmail.Subject)

	dup := &models.Administrator{Subject: "sub-2", Email: "nueva@lab.pe", Role: "viewer", Status: "active"}
	assert.Error(t, repo.Save(ctx, dup))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.Delete(ctx, "sub-1"))
	assert.Error(t, repo.Delete(ctx, "sub-1"))
}

// --------------------------------------------------
// Audit
// --------------------------------------------------

func TestAuditRepo_Filters(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditGormRepository(dbtest.New(t), logger.Discard())

	day := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	entries := []models.AuditLog{
		{Action: "appointment_created", Entity: "appointment", CreatedAt: day},
		{Action: "appointment_created", Entity: "appointment", CreatedAt: day.AddDate(0, 0, 1)},
		{Action: "contact_created", Entity: "contact", CreatedAt: day},
	}
	for i := range entries {
		require.NoError(t, repo.Create(ctx, &entries[i]))
	}

	logs, total, err := repo.List(ctx, AuditFilter{Action: "appointment_created", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, logs, 1)
	assert.Equal(t, entries[1].ID, logs[0].ID)

	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	logs, total, err = repo.List(ctx, AuditFilter{From: &from, To: &from, Limit: 50})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, logs, 2)
}
