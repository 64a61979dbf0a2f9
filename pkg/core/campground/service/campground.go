package service

import (
	"context"
	"strings"
	"time"

	"yelpcamp/pkg/common/authctx"
	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/core/campground/model"
	"yelpcamp/pkg/core/campground/repository/dao"
)

// Input 营地的可编辑字段
type Input struct {
	Name        string
	Image       string
	Description string
}

// Detail 营地及其在完整列表中的位置
type Detail struct {
	Campground model.Campground
	Position   int // 从 1 开始
	Total      int
}

type CampgroundService struct {
	repo      dao.CampgroundRepository
	now       func() time.Time
	ownerOnly bool
}

type Option func(*CampgroundService)

// WithClock 替换发布时间使用的 time.Now
func WithClock(now func() time.Time) Option {
	return func(s *CampgroundService) {
		s.now = now
	}
}

// WithOwnerOnly 仅允许所有者编辑与删除
func WithOwnerOnly(enabled bool) Option {
	return func(s *CampgroundService) {
		s.ownerOnly = enabled
	}
}

func NewCampgroundService(repo dao.CampgroundRepository, opts ...Option) *CampgroundService {
	s := &CampgroundService{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CampgroundService) OwnerOnly() bool {
	return s.ownerOnly
}

func (s *CampgroundService) List(ctx context.Context) ([]model.Campground, error) {
	return s.repo.List(ctx)
}

func (s *CampgroundService) ListByOwner(ctx context.Context, ownerID int64) ([]model.Campground, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *CampgroundService) Get(ctx context.Context, id int64) (model.Campground, error) {
	return s.repo.QueryByID(ctx, id)
}

// Show 加载营地及其在按 ID 排序列表中的位置
func (s *CampgroundService) Show(ctx context.Context, id int64) (Detail, error) {
	campground, err := s.repo.QueryByID(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	ids, err := s.repo.ListIDs(ctx)
	if err != nil {
		return Detail{}, err
	}

	detail := Detail{Campground: campground, Total: len(ids)}
	for i, other := range ids {
		if other == id {
			detail.Position = i + 1
			break
		}
	}
	return detail, nil
}

// Create 以 ctx 中的登录用户为所有者创建营地，并记录当前时间
func (s *CampgroundService) Create(ctx context.Context, in Input) (model.Campground, error) {
	ownerID, ok := authctx.UserIDFromContext(ctx)
	if !ok {
		return model.Campground{}, apperrors.ErrForbidden
	}

	campground := model.Campground{
		Name:        strings.TrimSpace(in.Name),
		Image:       strings.TrimSpace(in.Image),
		Description: in.Description,
		PostedAt:    s.now(),
		OwnerID:     &ownerID,
	}
	if err := s.repo.Create(ctx, &campground); err != nil {
		return model.Campground{}, err
	}
	return campground, nil
}

// Authorize 判断 ctx 中的请求者能否修改营地，未启用所有者策略时全部放行
func (s *CampgroundService) Authorize(ctx context.Context, campground model.Campground) error {
	if !s.ownerOnly {
		return nil
	}
	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok || !campground.OwnedBy(userID) {
		return apperrors.ErrForbidden
	}
	return nil
}

// Update 覆盖可编辑字段与发布时间
func (s *CampgroundService) Update(ctx context.Context, id int64, in Input) (model.Campground, error) {
	campground, err := s.repo.QueryByID(ctx, id)
	if err != nil {
		return model.Campground{}, err
	}
	if err := s.Authorize(ctx, campground); err != nil {
		return model.Campground{}, err
	}

	campground.Name = strings.TrimSpace(in.Name)
	campground.Image = strings.TrimSpace(in.Image)
	campground.Description = in.Description
	campground.PostedAt = s.now()
	if err := s.repo.Update(ctx, &campground); err != nil {
		return model.Campground{}, err
	}
	return campground, nil
}

func (s *CampgroundService) Delete(ctx context.Context, id int64) error {
	if s.ownerOnly {
		campground, err := s.repo.QueryByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.Authorize(ctx, campground); err != nil {
			return err
		}
	}
	return s.repo.Delete(ctx, id)
}
