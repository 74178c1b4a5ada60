package entities

import "time"

// Status is the lifecycle position of a state in the journey
type Status string

const (
	StatusUpcoming  Status = "upcoming"
	StatusCurrent   Status = "current"
	StatusCompleted Status = "completed"
)

// TotalStates is the number of states in a full journey
const TotalStates = 50

// State is one of the 50 journey states, visited one per week
type State struct {
	Code            string     `gorm:"column:code;type:char(2);primaryKey"`
	Name            string     `gorm:"column:name;type:varchar(64);not null"`
	WeekNumber      int        `gorm:"column:week_number;not null;uniqueIndex"`
	Status          Status     `gorm:"column:status;type:varchar(16);not null;default:upcoming"`
	BecameCurrentAt *time.Time `gorm:"column:became_current_at"`
	CompletedAt     *time.Time `gorm:"column:completed_at"`
	CollectionID    *string    `gorm:"column:collection_id;type:varchar(64)"`
	CreatedAt       time.Time  `gorm:"column:created_at"`
	UpdatedAt       time.Time  `gorm:"column:updated_at"`
}

func (State) TableName() string {
	return "journey_states"
}

// IsFinal reports whether this is the last week of the journey
func (s *State) IsFinal() bool {
	return s.WeekNumber == TotalStates
}

// Progress summarises the journey position
type Progress struct {
	Total     int
	Upcoming  int
	Current   int
	Completed int
	// CurrentState is nil before the journey starts and after it ends.
	CurrentState *State
	NextState    *State
}

// PercentComplete returns completed states as a percentage of all states
func (p Progress) PercentComplete() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Completed) * 100 / float64(p.Total)
}
