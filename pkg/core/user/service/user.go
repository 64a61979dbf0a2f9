package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/core/user/model"
	"yelpcamp/pkg/core/user/repository/dao"
)

// MaxPasswordBytes 是 bcrypt 能处理的最大密码长度
const MaxPasswordBytes = 72

// UserService 负责注册与凭证校验
type UserService struct {
	repo     dao.UserRepository
	hashCost int
}

type Option func(*UserService)

// WithHashCost 覆盖 bcrypt.DefaultCost，测试使用 bcrypt.MinCost
func WithHashCost(cost int) Option {
	return func(s *UserService) {
		s.hashCost = cost
	}
}

func NewUserService(repo dao.UserRepository, opts ...Option) *UserService {
	s := &UserService{repo: repo, hashCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register 检查邮箱未被占用后创建用户，占用时返回 apperrors.ErrDuplicateEntry
func (s *UserService) Register(ctx context.Context, name, email, password string) (model.User, error) {
	if len(password) > MaxPasswordBytes {
		return model.User{}, apperrors.ErrPasswordTooLong
	}
	email = NormalizeEmail(email)

	exists, err := s.repo.IsEmailExists(ctx, email)
	if err != nil {
		return model.User{}, err
	}
	if exists {
		return model.User{}, apperrors.ErrDuplicateEntry
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Authenticate 邮箱不存在与密码错误统一返回 apperrors.ErrInvalidCredentials
func (s *UserService) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	if len(password) > MaxPasswordBytes {
		return model.User{}, apperrors.ErrInvalidCredentials
	}
	user, err := s.repo.QueryByEmail(ctx, NormalizeEmail(email))
	if errors.Is(err, apperrors.ErrUserNotFound) {
		return model.User{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return model.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.User{}, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (model.User, error) {
	return s.repo.QueryByID(ctx, id)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
