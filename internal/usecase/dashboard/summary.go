// Package dashboard aggregates the back office numbers. Everything is
// recomputed from the full record set on every call.
package dashboard

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/BruksfildServices01/dental-lab/internal/domain/contact"
	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

type Counts struct {
	Total     int            `json:"total"`
	ByStatus  map[string]int `json:"by_status"`
	Today     int            `json:"today"`
	ThisWeek  int            `json:"this_week"`
	ThisMonth int            `json:"this_month"`
}

type Summary struct {
	Appointments Counts `json:"appointments"`
	Contacts     Counts `json:"contacts"`
	// contacts still in status new
	UnreadContacts int `json:"unread_contacts"`
}

// SummarizeAppointments counts "today" by the booked calendar date, the week
// as creations in the trailing 7 days and the month as creations in the
// current calendar month.
func SummarizeAppointments(list []models.Appointment, now time.Time) Counts {
	today := now.Format(timezone.DateLayout)

	return Counts{
		Total: len(list),
		ByStatus: lo.CountValuesBy(list, func(ap models.Appointment) string {
			return ap.Status
		}),
		Today: lo.CountBy(list, func(ap models.Appointment) bool {
			return ap.Date == today
		}),
		ThisWeek: lo.CountBy(list, func(ap models.Appointment) bool {
			return inTrailingWeek(ap.CreatedAt, now)
		}),
		ThisMonth: lo.CountBy(list, func(ap models.Appointment) bool {
			return sameMonth(ap.CreatedAt, now)
		}),
	}
}

func SummarizeContacts(list []models.Contact, now time.Time) Counts {
	today := timezone.StartOfDay(now)

	return Counts{
		Total: len(list),
		ByStatus: lo.CountValuesBy(list, func(c models.Contact) string {
			return c.Status
		}),
		Today: lo.CountBy(list, func(c models.Contact) bool {
			return !c.CreatedAt.In(now.Location()).Before(today)
		}),
		ThisWeek: lo.CountBy(list, func(c models.Contact) bool {
			return inTrailingWeek(c.CreatedAt, now)
		}),
		ThisMonth: lo.CountBy(list, func(c models.Contact) bool {
			return sameMonth(c.CreatedAt, now)
		}),
	}
}

func inTrailingWeek(t, now time.Time) bool {
	return !t.Before(now.AddDate(0, 0, -7)) && !t.After(now)
}

func sameMonth(t, now time.Time) bool {
	t = t.In(now.Location())
	return t.Year() == now.Year() && t.Month() == now.Month()
}

// NewContacts is the triage backlog shown on the dashboard badge.
func NewContacts(list []models.Contact) int {
	return lo.CountBy(list, func(c models.Contact) bool {
		return c.Status == string(contact.StatusNew)
	})
}

// --------------------------------------------------
// Use case
// --------------------------------------------------

type AppointmentLister interface {
	ListAll(ctx context.Context, limit int) ([]models.Appointment, error)
}

type ContactLister interface {
	List(ctx context.Context, f contact.Filter) ([]models.Contact, error)
}

type GetSummary struct {
	appointments AppointmentLister
	contacts     ContactLister
	now          func() time.Time
}

func NewGetSummary(a AppointmentLister, c ContactLister, now func() time.Time) *GetSummary {
	return &GetSummary{appointments: a, contacts: c, now: now}
}

func (uc *GetSummary) Execute(ctx context.Context) (*Summary, error) {
	aps, err := uc.appointments.ListAll(ctx, 0)
	if err != nil {
		return nil, err
	}

	cs, err := uc.contacts.List(ctx, contact.Filter{})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	return &Summary{
		Appointments: SummarizeAppointments(aps, now),
		Contacts:     SummarizeContacts(cs, now),

		UnreadContacts: NewContacts(cs),
	}, nil
}
