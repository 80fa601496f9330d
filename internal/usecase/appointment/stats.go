package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/dental-lab/internal/domain/appointment"
	"github.com/BruksfildServices01/dental-lab/internal/usecase/dashboard"
)

type Stats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"by_status"`
	CurrentMonth int            `json:"current_month"`
}

type GetStats struct {
	repo domain.Repository
	now  func() time.Time
}

func NewGetStats(repo domain.Repository, now func() time.Time) *GetStats {
	return &GetStats{repo: repo, now: now}
}

// Execute loads every appointment and counts in memory.
func (uc *GetStats) Execute(ctx context.Context) (*Stats, error) {
	list, err := uc.repo.ListAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	c := dashboard.SummarizeAppointments(list, uc.now())
	byStatus := make(map[string]int, len(domain.AllStatuses))
	for _, s := range domain.AllStatuses {
		byStatus[string(s)] = c.ByStatus[string(s)]
	}

	return &Stats{
		Total:        c.Total,
		ByStatus:     byStatus,
		CurrentMonth: c.ThisMonth,
	}, nil
}
