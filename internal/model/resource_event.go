package model

import "time"

const (
	EventResourceCreated = "resource.created"
	EventResourceUpdated = "resource.updated"
	EventResourceDeleted = "resource.deleted"
)

// ResourceEvent describes a change to a stored resource. It is published
// to the broker and later persisted as one row of the activity log.
type ResourceEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id,omitempty"`
	Kind       string    `gorm:"size:32;not null" json:"kind"`
	ResourceID string    `gorm:"size:36;index;not null" json:"resource_id"`
	Title      string    `gorm:"type:text" json:"title,omitempty"`
	Type       string    `gorm:"size:16" json:"type,omitempty"`
	OccurredAt time.Time `gorm:"index" json:"occurred_at"`
}

func (ResourceEvent) TableName() string {
	return "resource_events"
}
