package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"resource-library/internal/model"
)

// ResourceRepository persists resources. Every call runs in its own gorm
// session bound to ctx, so the pooled connection is returned when it ends.
type ResourceRepository struct {
	db *gorm.DB
}

func NewResourceRepository(db *gorm.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	if err := r.db.WithContext(ctx).Create(resource).Error; err != nil {
		return fmt.Errorf("create resource failed: %w", err)
	}
	return nil
}

func (r *ResourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	var list []model.Resource
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list resources failed: %w", err)
	}
	return list, nil
}

// GetByID returns nil, nil when no row matches.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*model.Resource, error) {
	var resource model.Resource
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&resource).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource failed: %w", err)
	}
	return &resource, nil
}

// UpdateNotesAndTags overwrites the two mutable columns only.
func (r *ResourceRepository) UpdateNotesAndTags(ctx context.Context, id, notes, tags string) error {
	err := r.db.WithContext(ctx).
		Model(&model.Resource{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"notes": notes,
			"tags":  tags,
		}).Error
	if err != nil {
		return fmt.Errorf("update resource failed: %w", err)
	}
	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Resource{}).Error; err != nil {
		return fmt.Errorf("delete resource failed: %w", err)
	}
	return nil
}
