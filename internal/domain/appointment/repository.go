package appointment

import (
	"context"

	"github.com/BruksfildServices01/dental-lab/internal/models"
)

type Repository interface {
	// -------- Create / slot --------
	// CreateIfSlotFree inserts ap unless a live appointment already holds
	// its (date, time). The loser gets a slot_taken business error.
	CreateIfSlotFree(ctx context.Context, ap *models.Appointment) error

	IsSlotTaken(ctx context.Context, date, hm string, excludeID string) (bool, error)

	// -------- Read --------
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	ListAll(ctx context.Context, limit int) ([]models.Appointment, error)
	ListByEmail(ctx context.Context, email string) ([]models.Appointment, error)

	// -------- Mutations --------
	// Update saves ap. When the slot moved it re-checks it inside the same
	// transaction.
	Update(ctx context.Context, ap *models.Appointment, slotMoved bool) error
	Delete(ctx context.Context, id string) error
}
