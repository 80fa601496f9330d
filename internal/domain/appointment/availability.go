package appointment

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/BruksfildServices01/dental-lab/internal/models"
	"github.com/BruksfildServices01/dental-lab/internal/timezone"
)

const (
	SlotStep      = 30 * time.Minute
	firstSlotHour = 8
	// last slot starts at 17:30 and ends at 18:00
	lastSlotMinute = 17*60 + 30
)

var baseGrid = buildGrid()

func buildGrid() []string {
	var grid []string
	for m := firstSlotHour * 60; m <= lastSlotMinute; m += int(SlotStep / time.Minute) {
		grid = append(grid, time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format(timezone.TimeLayout))
	}
	return grid
}

// BaseGrid returns a fresh copy of the 08:00..17:30 half-hour grid.
func BaseGrid() []string {
	return slices.Clone(baseGrid)
}

// OnGrid reports whether hm is one of the bookable slot starts.
func OnGrid(hm string) bool {
	return lo.Contains(baseGrid, hm)
}

type AvailabilityInput struct {
	// Date is midnight of the requested day in lab local time.
	Date time.Time
}

// FreeSlots removes from the grid every slot held by a live appointment and,
// when date is today, every slot starting less than lead after now.
func FreeSlots(existing []models.Appointment, date, now time.Time, lead time.Duration) []string {
	taken := lo.SliceToMap(
		lo.Filter(existing, func(ap models.Appointment, _ int) bool {
			return ap.Date == date.Format(timezone.DateLayout) && Status(ap.Status).IsLive()
		}),
		func(ap models.Appointment) (string, struct{}) { return ap.Time, struct{}{} },
	)

	sameDay := timezone.StartOfDay(date).Equal(timezone.StartOfDay(now.In(date.Location())))
	cutoff := now.Add(lead)

	return lo.Filter(BaseGrid(), func(hm string, _ int) bool {
		if _, ok := taken[hm]; ok {
			return false
		}
		if sameDay && !StartsAfter(date, hm, cutoff) {
			return false
		}
		return true
	})
}

// StartsAfter reports whether the slot hm on date starts at or after t.
func StartsAfter(date time.Time, hm string, t time.Time) bool {
	start, err := timezone.ParseDateTime(date.Format(timezone.DateLayout), hm, date.Location())
	if err != nil {
		return false
	}
	return !start.Before(t)
}
