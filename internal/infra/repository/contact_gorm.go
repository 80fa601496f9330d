package repository

import (
	"context"
	"log/slog"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/httperr"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type ContactGormRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewContactGormRepository(db *gorm.DB, log *slog.Logger) *ContactGormRepository {
	return &ContactGormRepository{db: db, log: log.With("module", "contact_repo")}
}

var _ domain.Repository = (*ContactGormRepository)(nil)

func (r *ContactGormRepository) Create(ctx context.Context, c *models.Contact) error {
	return translate(r.log, "contact.create", r.db.WithContext(ctx).Create(c).Error)
}

func (r *ContactGormRepository) GetByID(ctx context.Context, id string) (*models.Contact, error) {
	var c models.Contact
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, translate(r.log, "contact.get", err)
	}
	return &c, nil
}

func (r *ContactGormRepository) List(ctx context.Context, f domain.Filter) ([]models.Contact, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var out []models.Contact
	if err := q.Find(&out).Error; err != nil {
		return nil, translate(r.log, "contact.list", err)
	}
	return out, nil
}

func (r *ContactGormRepository) Update(ctx context.Context, c *models.Contact) error {
	return translate(r.log, "contact.update", r.db.WithContext(ctx).Save(c).Error)
}

func (r *ContactGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Contact{})
	if res.Error != nil {
		return translate(r.log, "contact.delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeNotFound)
	}
	return nil
}
