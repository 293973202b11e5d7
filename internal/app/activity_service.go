package app

import (
	"context"
	"fmt"

	"resource-library/internal/model"
	"resource-library/internal/repository"
)

const (
	DefaultActivityLimit = 50
	MaxActivityLimit     = 200
)

// ActivityService reads the resource event log filled by the event worker.
type ActivityService struct {
	repo *repository.EventRepository
}

func NewActivityService(repo *repository.EventRepository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Recent lists the newest events, optionally for one resource. A zero
// limit means DefaultActivityLimit.
func (s *ActivityService) Recent(ctx context.Context, resourceID string, limit int) ([]model.ResourceEvent, error) {
	switch {
	case limit == 0:
		limit = DefaultActivityLimit
	case limit < 0 || limit > MaxActivityLimit:
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidInput, MaxActivityLimit)
	}
	return s.repo.ListRecent(ctx, resourceID, limit)
}
