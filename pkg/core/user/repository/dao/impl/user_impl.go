package dao

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/core/user/model"
	"yelpcamp/pkg/core/user/repository/dao"
)

type GormUserRepository struct {
	db *gorm.DB
}

var _ dao.UserRepository = (*GormUserRepository)(nil)

func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) QueryByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error
	if err != nil {
		return model.User{}, apperrors.WrapGormError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

// QueryByEmail 加载完整记录，包含密码哈希
func (r *GormUserRepository) QueryByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		return model.User{}, apperrors.WrapGormError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *GormUserRepository) IsEmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check email: %w", apperrors.WrapGormError(err, nil))
	}
	return count > 0, nil
}

func (r *GormUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if apperrors.IsDuplicateError(err) {
				return apperrors.ErrDuplicateEntry
			}
			return fmt.Errorf("create user: %w", apperrors.WrapGormError(err, nil))
		}
		return nil
	})
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&count).Error; err != nil {
		return 0, apperrors.WrapGormError(err, nil)
	}
	return count, nil
}
