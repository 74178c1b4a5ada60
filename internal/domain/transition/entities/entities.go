package entities

// Options tunes a weekly transition run
type Options struct {
	// Force skips the minimum-interval guard.
	Force bool
}

// Result reports what a weekly transition did. JourneyComplete is a normal outcome, not an error.
type Result struct {
	Transitioned     bool   `json:"transitioned"`
	CompletedState   string `json:"completed_state,omitempty"`
	NewState         string `json:"new_state,omitempty"`
	CatchUpPublished int    `json:"catch_up_published"`
	EmailsSent       int    `json:"emails_sent"`
	EmailsFailed     int    `json:"emails_failed"`
	EmailsTotal      int    `json:"emails_total"`
	EmailError       string `json:"email_error,omitempty"`
	JourneyComplete  bool   `json:"journey_complete"`
	NoPriorState     bool   `json:"no_prior_state"`
}

// Outcome labels a run for metrics
func (r *Result) Outcome() string {
	switch {
	case r.JourneyComplete && !r.Transitioned:
		return "journey_complete"
	case r.JourneyComplete:
		return "final_state_completed"
	case r.NoPriorState:
		return "promoted_only"
	default:
		return "transitioned"
	}
}
