package dto

import "time"

// BeersPublishedEvent is written to content.beers_published after a publish that changed rows
type BeersPublishedEvent struct {
	StateCode   string    `json:"state_code"`
	Trigger     string    `json:"trigger"`
	ThroughDay  int       `json:"through_day"`
	Published   int       `json:"published"`
	PublishedAt time.Time `json:"published_at"`
}

// PublishDueResponse is returned by POST /api/cron/publish-due
type PublishDueResponse struct {
	StateCode string `json:"state_code,omitempty"`
	Published int    `json:"published"`
}

// BeersResponse is returned by GET /api/beers
type BeersResponse struct {
	StateCode string      `json:"state_code"`
	Count     int         `json:"count"`
	Beers     interface{} `json:"beers"`
}
