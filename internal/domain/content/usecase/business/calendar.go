package business

import (
	"time"

	"github.com/Conte777/brewquest/internal/domain/content/entities"
	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
)

const day = 24 * time.Hour

// WeekAnchor returns the moment a state's week is counted from: the time it became current,
// or startDate shifted by one week per preceding state. ok is false when neither is known.
func WeekAnchor(state *journeyentities.State, startDate time.Time) (time.Time, bool) {
	if state.BecameCurrentAt != nil {
		return *state.BecameCurrentAt, true
	}
	if startDate.IsZero() || state.WeekNumber < 1 {
		return time.Time{}, false
	}
	return startDate.AddDate(0, 0, 7*(state.WeekNumber-1)), true
}

// DueDay returns how many days of the week are due on asOf: whole calendar days between
// the anchor date and asOf in loc, clamped to [0, 7]. A Sunday evening anchor makes Monday day 1.
func DueDay(anchor, asOf time.Time, loc *time.Location) int {
	if loc == nil {
		loc = time.UTC
	}

	elapsed := int(calendarDate(asOf, loc).Sub(calendarDate(anchor, loc)) / day)
	switch {
	case elapsed < 0:
		return 0
	case elapsed > entities.DaysPerWeek:
		return entities.DaysPerWeek
	default:
		return elapsed
	}
}

// calendarDate drops the clock in loc and re-expresses the date in UTC so DST never skews the difference
func calendarDate(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
