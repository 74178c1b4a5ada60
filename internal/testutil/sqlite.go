// Package testutil provides sqlite-backed gorm databases for repository and use case tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	journeyentities "github.com/Conte777/brewquest/internal/domain/journey/entities"
)

// StateNames lists journey states in week order
var StateNames = []struct{ Code, Name string }{
	{"AL", "Alabama"}, {"AK", "Alaska"}, {"AZ", "Arizona"}, {"AR", "Arkansas"}, {"CA", "California"},
	{"CO", "Colorado"}, {"CT", "Connecticut"}, {"DE", "Delaware"}, {"FL", "Florida"}, {"GA", "Georgia"},
	{"HI", "Hawaii"}, {"ID", "Idaho"}, {"IL", "Illinois"}, {"IN", "Indiana"}, {"IA", "Iowa"},
	{"KS", "Kansas"}, {"KY", "Kentucky"}, {"LA", "Louisiana"}, {"ME", "Maine"}, {"MD", "Maryland"},
	{"MA", "Massachusetts"}, {"MI", "Michigan"}, {"MN", "Minnesota"}, {"MS", "Mississippi"}, {"MO", "Missouri"},
	{"MT", "Montana"}, {"NE", "Nebraska"}, {"NV", "Nevada"}, {"NH", "New Hampshire"}, {"NJ", "New Jersey"},
	{"NM", "New Mexico"}, {"NY", "New York"}, {"NC", "North Carolina"}, {"ND", "North Dakota"}, {"OH", "Ohio"},
	{"OK", "Oklahoma"}, {"OR", "Oregon"}, {"PA", "Pennsylvania"}, {"RI", "Rhode Island"}, {"SC", "South Carolina"},
	{"SD", "South Dakota"}, {"TN", "Tennessee"}, {"TX", "Texas"}, {"UT", "Utah"}, {"VT", "Vermont"},
	{"VA", "Virginia"}, {"WA", "Washington"}, {"WV", "West Virginia"}, {"WI", "Wisconsin"}, {"WY", "Wyoming"},
}

// NewSQLiteDB opens an isolated in-memory database and migrates models into it.
// The single-current partial index is recreated when journey states are migrated.
func NewSQLiteDB(t testing.TB, models ...interface{}) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	if db.Migrator().HasTable(&journeyentities.State{}) {
		err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_journey_states_single_current
			ON journey_states (status) WHERE status = 'current'`).Error
		if err != nil {
			t.Fatalf("create partial index: %v", err)
		}
	}

	return db
}

// SeedStates inserts the first len(statuses) journey states with the given statuses.
// Current states get became_current_at = anchor, completed states get completed_at = anchor.
func SeedStates(t testing.TB, db *gorm.DB, anchor time.Time, statuses ...journeyentities.Status) []journeyentities.State {
	t.Helper()

	if len(statuses) > len(StateNames) {
		t.Fatalf("cannot seed %d states", len(statuses))
	}

	states := make([]journeyentities.State, 0, len(statuses))
	for i, status := range statuses {
		s := journeyentities.State{
			Code:       StateNames[i].Code,
			Name:       StateNames[i].Name,
			WeekNumber: i + 1,
			Status:     status,
		}
		at := anchor
		switch status {
		case journeyentities.StatusCurrent:
			s.BecameCurrentAt = &at
		case journeyentities.StatusCompleted:
			s.BecameCurrentAt = &at
			s.CompletedAt = &at
		}
		states = append(states, s)
	}

	if err := db.Create(&states).Error; err != nil {
		t.Fatalf("seed states: %v", err)
	}
	return states
}

// Statuses builds a status list: the given prefix followed by upcoming states up to total.
func Statuses(total int, prefix ...journeyentities.Status) []journeyentities.Status {
	out := make([]journeyentities.Status, total)
	for i := range out {
		if i < len(prefix) {
			out[i] = prefix[i]
		} else {
			out[i] = journeyentities.StatusUpcoming
		}
	}
	return out
}

// MustStatus loads a state's status or fails the test
func MustStatus(t testing.TB, db *gorm.DB, code string) journeyentities.Status {
	t.Helper()
	var s journeyentities.State
	if err := db.Where("code = ?", code).First(&s).Error; err != nil {
		t.Fatalf("load %s: %v", code, err)
	}
	return s.Status
}

// CountCurrent returns how many states are current
func CountCurrent(t testing.TB, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&journeyentities.State{}).Where("status = ?", string(journeyentities.StatusCurrent)).Count(&n).Error; err != nil {
		t.Fatalf("count current: %v", err)
	}
	return n
}

// Describe formats a state for test failure messages
func Describe(s *journeyentities.State) string {
	if s == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(week %d, %s)", s.Code, s.WeekNumber, s.Status)
}
