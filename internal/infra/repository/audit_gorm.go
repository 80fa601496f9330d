package repository

import (
	"context"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type AuditFilter struct {
	Action string
	Entity string
	From   *time.Time
	// To is inclusive of the whole day.
	To     *time.Time
	Limit  int
	Offset int
}

type AuditGormRepository struct {
	db  *gorm.DB
	log *slog.Logger
}

func NewAuditGormRepository(db *gorm.DB, log *slog.Logger) *AuditGormRepository {
	return &AuditGormRepository{db: db, log: log.With("module", "audit_repo")}
}

func (r *AuditGormRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	return translate(r.log, "audit.create", r.db.WithContext(ctx).Create(entry).Error)
}

// List returns one page of entries, newest first, plus the filtered total.
func (r *AuditGormRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", f.To.Add(24*time.Hour))
	}

	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(r.log, "audit.count", err)
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Find(&logs).Error; err != nil {
		return nil, 0, translate(r.log, "audit.list", err)
	}

	return logs, total, nil
}
