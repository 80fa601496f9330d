package repository

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/admin"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type AdminGormRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewAdminGormRepository(db *gorm.DB, log *slog.Logger) *AdminGormRepository {
	return &AdminGormRepository{db: db, log: log.With("module", "admin_repo")}
}

var _ domain.Repository = (*AdminGormRepository)(nil)

func (r *AdminGormRepository) GetBySubject(ctx context.Context, subject string) (*models.Administrator, error) {
	var a models.Administrator
	if err := r.db.WithContext(ctx).Where("subject = ?", subject).First(&a).Error; err != nil {
		return nil, translate(r.log, "admin.get", err)
	}
	return &a, nil
}

func (r *AdminGormRepository) GetByEmail(ctx context.Context, email string) (*models.Administrator, error) {
	var a models.Administrator
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(r.log, "admin.get_by_email", err)
	}
	return &a, nil
}

func (r *AdminGormRepository) List(ctx context.Context) ([]models.Administrator, error) {
	var out []models.Administrator
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&out).Error; err != nil {
		return nil, translate(r.log, "admin.list", err)
	}
	return out, nil
}

// Insert adds a new administrator. A taken subject or e-mail is
// admin_exists.
func (r *AdminGormRepository) Insert(ctx context.Context, a *models.Administrator) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return httperr.ErrBusiness(httperr.CodeAdminExists)
	}
	return translate(r.log, "admin.insert", err)
}

// Save inserts or updates by subject.
func (r *AdminGormRepository) Save(ctx context.Context, a *models.Administrator) error {
	return translate(r.log, "admin.save", r.db.WithContext(ctx).Save(a).Error)
}

func (r *AdminGormRepository) Delete(ctx context.Context, subject string) error {
	res := r.db.WithContext(ctx).Where("subject = ?", subject).Delete(&models.Administrator{})
	if res.Error != nil {
		return translate(r.log, "admin.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
