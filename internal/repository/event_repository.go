package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"resource-library/internal/model"
)

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *model.ResourceEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("create resource event failed: %w", err)
	}
	return nil
}

// ListRecent returns the newest events first. An empty resourceID lists
// events for every resource.
func (r *EventRepository) ListRecent(ctx context.Context, resourceID string, limit int) ([]model.ResourceEvent, error) {
	query := r.db.WithContext(ctx).Order("occurred_at DESC").Order("id DESC").Limit(limit)
	if resourceID != "" {
		query = query.Where("resource_id = ?", resourceID)
	}

	var events []model.ResourceEvent
	if err := query.Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list resource events failed: %w", err)
	}
	return events, nil
}
