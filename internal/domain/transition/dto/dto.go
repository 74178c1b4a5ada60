package dto

import (
	"time"

	newsletterentities "github.com/Conte777/brewquest/internal/domain/newsletter/entities"
)

// StateTransitionedEvent is written to journey.state_transitioned after every mutation
type StateTransitionedEvent struct {
	EventID         string    `json:"event_id"`
	CompletedState  string    `json:"completed_state,omitempty"`
	NewState        string    `json:"new_state,omitempty"`
	JourneyComplete bool      `json:"journey_complete"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// Command is a message on the commands topic
type Command struct {
	Command string `json:"command"`
	Force   bool   `json:"force,omitempty"`
	// AsOf overrides the clock for publish_due_items.
	AsOf *time.Time `json:"as_of,omitempty"`
}

// DigestResponse is returned by POST /api/cron/weekly-digest
type DigestResponse struct {
	newsletterentities.DispatchResult
	EmailError string `json:"email_error,omitempty"`
}
