package appointment

import (
	"slices"

	"github.com/BruksfildServices01/dental-lab/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = []Status{StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled}

// transitions lists the statuses reachable from each state. Completed and
// cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func (s Status) Valid() bool {
	return slices.Contains(AllStatuses, s)
}

// IsLive reports whether an appointment in this status occupies its slot.
func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

func LiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// ===============================
// Validations
// ===============================

// CanTransition checks the move from -> to. Setting the current status
// again is accepted as a no-op.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrValidation([]string{"Estado no válido."})
	}
	if from == to {
		return nil
	}
	if !slices.Contains(transitions[from], to) {
		return httperr.ErrBusiness(httperr.CodeInvalidTransition)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
