package dao

import (
	"context"

	"yelpcamp/pkg/core/campground/model"
)

type CampgroundRepository interface {
	List(ctx context.Context) ([]model.Campground, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Campground, error)
	ListIDs(ctx context.Context) ([]int64, error)
	QueryByID(ctx context.Context, id int64) (model.Campground, error)
	Create(ctx context.Context, campground *model.Campground) error
	Update(ctx context.Context, campground *model.Campground) error
	Delete(ctx context.Context, id int64) error
}
