package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"yelpcamp/pkg/common/authctx"
	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/common/testutil"
	"yelpcamp/pkg/core/campground/model"
	campdao "yelpcamp/pkg/core/campground/repository/dao/impl"
	"yelpcamp/pkg/core/campground/service"
	usermodel "yelpcamp/pkg/core/user/model"
)

var posted = time.Date(2024, time.May, 1, 12, 30, 0, 0, time.UTC)

type fixture struct {
	db    *gorm.DB
	repo  *campdao.GormCampgroundRepository
	alice int64
	bob   int64
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.OpenDB(t)

	alice := usermodel.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x"}
	bob := usermodel.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)

	return fixture{db: db, repo: campdao.NewGormCampgroundRepository(db), alice: alice.ID, bob: bob.ID}
}

func (f fixture) service(opts ...service.Option) *service.CampgroundService {
	opts = append([]service.Option{service.WithClock(func() time.Time { return posted })}, opts...)
	return service.NewCampgroundService(f.repo, opts...)
}

func input(name string) service.Input {
	return service.Input{Name: name, Image: "https://img.example.com/" + name + ".jpg", Description: "A " + name + " site"}
}

func as(userID int64) context.Context {
	return authctx.WithUserID(context.Background(), userID)
}

func TestCreateStampsOwnerAndTime(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	created, err := svc.Create(as(f.alice), input("Granite Hill"))
	require.NoError(t, err)
	require.NotNil(t, created.OwnerID)
	assert.Equal(t, f.alice, *created.OwnerID)
	assert.True(t, created.PostedAt.Equal(posted))

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, f.alice, *stored.OwnerID)
	require.NotNil(t, stored.Owner)
	assert.Equal(t, "Alice", stored.Owner.Name)
	assert.True(t, stored.PostedAt.Equal(posted), "posted at %v", stored.PostedAt)
}

func TestCreateUsesClockPerCall(t *testing.T) {
	f := newFixture(t)
	now := posted
	svc := service.NewCampgroundService(f.repo, service.WithClock(func() time.Time {
		now = now.Add(time.Hour)
		return now
	}))

	first, err := svc.Create(as(f.alice), input("First"))
	require.NoError(t, err)
	second, err := svc.Create(as(f.alice), input("Second"))
	require.NoError(t, err)

	assert.True(t, second.PostedAt.After(first.PostedAt))
}

func TestCreateAnonymous(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.Create(context.Background(), input("Nowhere"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestShowPosition(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		c, err := svc.Create(as(f.alice), input(name))
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}
	require.NoError(t, svc.Delete(context.Background(), ids[0]))

	detail, err := svc.Show(context.Background(), ids[2])
	require.NoError(t, err)
	assert.Equal(t, "C", detail.Campground.Name)
	assert.Equal(t, 2, detail.Position)
	assert.Equal(t, 2, detail.Total)
}

func TestShowUnknown(t *testing.T) {
	f := newFixture(t)

	_, err := f.service().Show(context.Background(), 404)
	assert.ErrorIs(t, err, apperrors.ErrCampgroundNotFound)
}

func TestUpdateOverwritesFieldsAndDate(t *testing.T) {
	f := newFixture(t)
	created, err := f.service().Create(as(f.alice), input("Old"))
	require.NoError(t, err)

	later := posted.Add(48 * time.Hour)
	svc := f.service(service.WithClock(func() time.Time { return later }))

	updated, err := svc.Update(context.Background(), created.ID, input("New"))
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Name)

	stored, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Name)
	assert.Equal(t, "https://img.example.com/New.jpg", stored.Image)
	assert.True(t, stored.PostedAt.Equal(later))
	require.NotNil(t, stored.OwnerID)
	assert.Equal(t, f.alice, *stored.OwnerID, "owner is not editable")
}

func TestDeletePermissiveRemovesOnlyTarget(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	keep, err := svc.Create(as(f.alice), input("Keep"))
	require.NoError(t, err)
	drop, err := svc.Create(as(f.alice), input("Drop"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(as(f.bob), drop.ID))

	all, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	assert.ErrorIs(t, svc.Delete(context.Background(), drop.ID), apperrors.ErrCampgroundNotFound)
}

func TestOwnerOnlyPolicy(t *testing.T) {
	f := newFixture(t)
	svc := f.service(service.WithOwnerOnly(true))

	c, err := svc.Create(as(f.alice), input("Mine"))
	require.NoError(t, err)

	_, err = svc.Update(as(f.bob), c.ID, input("Stolen"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	_, err = svc.Update(context.Background(), c.ID, input("Stolen"))
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(as(f.bob), c.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(context.Background(), c.ID), apperrors.ErrForbidden)

	_, err = svc.Update(as(f.alice), c.ID, input("Still mine"))
	assert.NoError(t, err)
	assert.NoError(t, svc.Delete(as(f.alice), c.ID))
}

func TestOwnerOnlyPolicyUnownedRow(t *testing.T) {
	f := newFixture(t)
	legacy := model.Campground{Name: "Legacy", Image: "x", Description: "y", PostedAt: posted}
	require.NoError(t, f.db.Create(&legacy).Error)

	svc := f.service(service.WithOwnerOnly(true))
	assert.ErrorIs(t, svc.Delete(as(f.alice), legacy.ID), apperrors.ErrForbidden)

	assert.NoError(t, f.service().Delete(context.Background(), legacy.ID))
}

func TestListByOwner(t *testing.T) {
	f := newFixture(t)
	svc := f.service()

	_, err := svc.Create(as(f.alice), input("A1"))
	require.NoError(t, err)
	_, err = svc.Create(as(f.bob), input("B1"))
	require.NoError(t, err)
	_, err = svc.Create(as(f.alice), input("A2"))
	require.NoError(t, err)

	mine, err := svc.ListByOwner(context.Background(), f.alice)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "A1", mine[0].Name)
	assert.Equal(t, "A2", mine[1].Name)
}
