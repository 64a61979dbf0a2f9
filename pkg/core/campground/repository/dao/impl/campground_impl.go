package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/core/campground/model"
	"yelpcamp/pkg/core/campground/repository/dao"
)

type GormCampgroundRepository struct {
	db *gorm.DB
}

var _ dao.CampgroundRepository = (*GormCampgroundRepository)(nil)

func NewGormCampgroundRepository(db *gorm.DB) *GormCampgroundRepository {
	return &GormCampgroundRepository{db: db}
}

func (r *GormCampgroundRepository) List(ctx context.Context) ([]model.Campground, error) {
	var campgrounds []model.Campground
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("id").
		Find(&campgrounds).Error
	if err != nil {
		return nil, fmt.Errorf("list campgrounds: %w", apperrors.WrapGormError(err, nil))
	}
	return campgrounds, nil
}

func (r *GormCampgroundRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Campground, error) {
	var campgrounds []model.Campground
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&campgrounds).Error
	if err != nil {
		return nil, fmt.Errorf("list owner campgrounds: %w", apperrors.WrapGormError(err, nil))
	}
	return campgrounds, nil
}

// ListIDs 按列表顺序返回全部营地 ID
func (r *GormCampgroundRepository) ListIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.Campground{}).
		Order("id").
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list campground ids: %w", apperrors.WrapGormError(err, nil))
	}
	return ids, nil
}

func (r *GormCampgroundRepository) QueryByID(ctx context.Context, id int64) (model.Campground, error) {
	var campground model.Campground
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("id = ?", id).
		First(&campground).Error
	if err != nil {
		return model.Campground{}, apperrors.WrapGormError(err, apperrors.ErrCampgroundNotFound)
	}
	return campground, nil
}

func (r *GormCampgroundRepository) Create(ctx context.Context, campground *model.Campground) error {
	err := r.db.WithContext(ctx).
		Omit("Owner").
		Create(campground).Error
	if err != nil {
		return fmt.Errorf("create campground: %w", apperrors.WrapGormError(err, nil))
	}
	return nil
}

// Update 覆盖可编辑列，所有者不变
func (r *GormCampgroundRepository) Update(ctx context.Context, campground *model.Campground) error {
	result := r.db.WithContext(ctx).
		Model(&model.Campground{}).
		Where("id = ?", campground.ID).
		Updates(map[string]interface{}{
			"name":        campground.Name,
			"image":       campground.Image,
			"description": campground.Description,
			"posted_at":   campground.PostedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("update campground: %w", apperrors.WrapGormError(result.Error, nil))
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCampgroundNotFound
	}
	return nil
}

func (r *GormCampgroundRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&model.Campground{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete campground: %w", apperrors.WrapGormError(result.Error, nil))
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrCampgroundNotFound
	}
	return nil
}
