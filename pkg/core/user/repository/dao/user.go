package dao

import (
	"context"

	"yelpcamp/pkg/core/user/model"
)

type UserRepository interface {
	QueryByID(ctx context.Context, id int64) (model.User, error)
	QueryByEmail(ctx context.Context, email string) (model.User, error)
	IsEmailExists(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	Count(ctx context.Context) (int64, error)
}
