package appointment

import (
	"time"

	"github.com/BruksfildServices01/dental-lab/internal/audit"
	"github.com/BruksfildServices01/dental-lab/internal/models"
)

// Policy holds the booking rules that come from configuration.
type Policy struct {
	Lead         time.Duration
	MaxDaysAhead int
	StoreTimeout time.Duration
	// FailOpen makes availability return the grid when the store fails.
	FailOpen bool
}

func DefaultPolicy() Policy {
	return Policy{
		Lead:         120 * time.Minute,
		MaxDaysAhead: 90,
		StoreTimeout: 8 * time.Second,
		FailOpen:     true,
	}
}

type Notifier interface {
	AppointmentBooked(ap models.Appointment)
}

type Auditor interface {
	Dispatch(ev audit.Event)
}

type nopNotifier struct{}

func (nopNotifier) AppointmentBooked(models.Appointment) {}

type nopAuditor struct{}

func (nopAuditor) Dispatch(audit.Event) {}
