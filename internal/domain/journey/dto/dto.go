package dto

import (
	"time"

	"github.com/Conte777/brewquest/internal/domain/journey/entities"
)

// StateResponse is the public view of a journey state
type StateResponse struct {
	Code            string     `json:"code"`
	Name            string     `json:"name"`
	WeekNumber      int        `json:"week_number"`
	Status          string     `json:"status"`
	BecameCurrentAt *time.Time `json:"became_current_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	CollectionID    *string    `json:"collection_id,omitempty"`
}

// ProgressResponse is returned by GET /api/journey
type ProgressResponse struct {
	Total           int            `json:"total"`
	Upcoming        int            `json:"upcoming"`
	Current         int            `json:"current"`
	Completed       int            `json:"completed"`
	PercentComplete float64        `json:"percent_complete"`
	CurrentState    *StateResponse `json:"current_state"`
	NextState       *StateResponse `json:"next_state"`
	JourneyComplete bool           `json:"journey_complete"`
}

// FromState converts an entity to its response
func FromState(s *entities.State) *StateResponse {
	if s == nil {
		return nil
	}
	return &StateResponse{
		Code:            s.Code,
		Name:            s.Name,
		WeekNumber:      s.WeekNumber,
		Status:          string(s.Status),
		BecameCurrentAt: s.BecameCurrentAt,
		CompletedAt:     s.CompletedAt,
		CollectionID:    s.CollectionID,
	}
}

// FromProgress converts journey progress to its response
func FromProgress(p *entities.Progress) ProgressResponse {
	return ProgressResponse{
		Total:           p.Total,
		Upcoming:        p.Upcoming,
		Current:         p.Current,
		Completed:       p.Completed,
		PercentComplete: p.PercentComplete(),
		CurrentState:    FromState(p.CurrentState),
		NextState:       FromState(p.NextState),
		JourneyComplete: p.Total > 0 && p.Completed == p.Total,
	}
}
