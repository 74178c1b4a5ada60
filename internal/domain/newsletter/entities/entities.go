package entities

import (
	"time"

	"github.com/google/uuid"
)

// Subscriber is an email address opted into newsletter mail
type Subscriber struct {
	ID               uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Email            string     `gorm:"column:email;type:varchar(320);not null;uniqueIndex"`
	IsActive         bool       `gorm:"column:is_active;not null;default:true"`
	WeeklyDigest     bool       `gorm:"column:weekly_digest;not null;default:true"`
	StateUpdates     bool       `gorm:"column:state_updates;not null;default:true"`
	UnsubscribeToken uuid.UUID  `gorm:"column:unsubscribe_token;type:uuid;not null;uniqueIndex"`
	SubscribedAt     time.Time  `gorm:"column:subscribed_at;not null"`
	UnsubscribedAt   *time.Time `gorm:"column:unsubscribed_at"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	UpdatedAt        time.Time  `gorm:"column:updated_at"`
}

func (Subscriber) TableName() string {
	return "subscribers"
}

// Preference selects which opt-in a mailing honours
type Preference string

const (
	PreferenceStateUpdates Preference = "state_updates"
	PreferenceWeeklyDigest Preference = "weekly_digest"
)

// Kind names a mailing for metrics and idempotency keys
type Kind string

const (
	KindStateTransition Kind = "state_transition"
	KindWeeklyDigest    Kind = "weekly_digest"
)

// DispatchResult aggregates one mailing. Per-subscriber detail is only logged.
type DispatchResult struct {
	Successful int `json:"successful"`
	Failed     int `json:"failed"`
	Total      int `json:"total"`
}
