package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type AppointmentGormRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewAppointmentGormRepository(db *gorm.DB, log *slog.Logger) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, log: log.With("module", "appointment_repo")}
}

var _ domain.Repository = (*AppointmentGormRepository)(nil)

// --------------------------------------------------
// Slot
// --------------------------------------------------

func slotTaken(tx *gorm.DB, date, hm, excludeID string) (bool, error) {
	q := tx.Model(&models.Appointment{}).
		Where(`"date" = ? AND "time" = ? AND status IN ?`, date, hm, domain.LiveStatuses())
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) IsSlotTaken(
	ctx context.Context,
	date, hm, excludeID string,
) (bool, error) {

	taken, err := slotTaken(r.db.WithContext(ctx), date, hm, excludeID)
	if err != nil {
		return false, translate(r.log, "appointment.is_slot_taken", err)
	}
	return taken, nil
}

// --------------------------------------------------
// Create
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slotTaken(tx, ap.Date, ap.Time, "")
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		return tx.Create(ap).Error
	})

	// the partial unique index catches the request that lost the race
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return translate(r.log, "appointment.create", err)
}

// --------------------------------------------------
// Read
// --------------------------------------------------

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&ap).Error; err != nil {
		return nil, translate(r.log, "appointment.get", err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(`"date" = ?`, date).
		Order(`"time" ASC`).
		Find(&out).Error; err != nil {
		return nil, translate(r.log, "appointment.list_by_date", err)
	}
	return out, nil
}

// ListAll returns the newest appointments first. limit <= 0 means no limit.
func (r *AppointmentGormRepository) ListAll(
	ctx context.Context,
	limit int,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.Appointment
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(r.log, "appointment.list_all", err)
	}
	return out, nil
}

func (r *AppointmentGormRepository) ListByEmail(
	ctx context.Context,
	email string,
) ([]models.Appointment, error) {

	var out []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&out).Error; err != nil {
		return nil, translate(r.log, "appointment.list_by_email", err)
	}
	return out, nil
}

// --------------------------------------------------
// Mutations
// --------------------------------------------------

func (r *AppointmentGormRepository) Update(
	ctx context.Context,
	ap *models.Appointment,
	slotMoved bool,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if slotMoved && domain.Status(ap.Status).IsLive() {
			taken, err := slotTaken(tx, ap.Date, ap.Time, ap.ID)
			if err != nil {
				return err
			}
			if taken {
				return httperr.ErrBusiness(httperr.CodeSlotTaken)
			}
		}
		return tx.Save(ap).Error
	})

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return translate(r.log, "appointment.update", err)
}

func (r *AppointmentGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Appointment{})
	if res.Error != nil {
		return translate(r.log, "appointment.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
