package entities

import "time"

// ContentType names what an approval entry gates
type ContentType string

const (
	ContentTypeBeerReview ContentType = "beer_review"
	ContentTypeStateIntro ContentType = "state_intro"
	ContentTypeSocialPost ContentType = "social_post"
)

func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeBeerReview, ContentTypeStateIntro, ContentTypeSocialPost:
		return true
	}
	return false
}

// Status is the review state of an approval entry
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Approval is one piece of content waiting for or past admin review
type Approval struct {
	ID          uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ContentType ContentType `gorm:"column:content_type;type:varchar(32);not null" json:"content_type"`
	ContentRef  string      `gorm:"column:content_ref;type:varchar(255);not null" json:"content_ref"`
	Status      Status      `gorm:"column:status;type:varchar(16);not null;default:pending;index:idx_content_approvals_status,priority:1" json:"status"`
	Reviewer    *string     `gorm:"column:reviewer;type:varchar(128)" json:"reviewer,omitempty"`
	Notes       *string     `gorm:"column:notes;type:text" json:"notes,omitempty"`
	ReviewedAt  *time.Time  `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
	CreatedAt   time.Time   `gorm:"column:created_at;index:idx_content_approvals_status,priority:2" json:"created_at"`
	UpdatedAt   time.Time   `gorm:"column:updated_at" json:"updated_at"`
}

func (Approval) TableName() string {
	return "content_approvals"
}

func (a *Approval) IsPending() bool {
	return a.Status == StatusPending
}
