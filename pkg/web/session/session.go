// Package session 签发并校验会话 Cookie 中的签名令牌
package session

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"yelpcamp/pkg/common/config"
)

// IdentityKey 保存用户 ID 的声明字段
const IdentityKey = "user_id"

var ErrInvalidToken = errors.New("invalid session token")

type Claims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret     []byte
	issuer     string
	maxAge     time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewManager(cfg config.SessionConfig) *Manager {
	return &Manager{
		secret:     []byte(cfg.SecretKey),
		issuer:     cfg.Issuer,
		maxAge:     cfg.MaxAge,
		cookieName: cfg.CookieName,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

func (m *Manager) CookieName() string {
	return m.cookieName
}

// MaxAge 令牌有效期
func (m *Manager) MaxAge() time.Duration {
	return m.maxAge
}

// Issue 为 userID 签发令牌，并返回过期时间
func (m *Manager) Issue(userID int64) (string, time.Time, error) {
	now := m.now()
	expires := now.Add(m.maxAge)
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, expires, nil
}

// Parse 校验令牌并返回其中的用户 ID
func (m *Manager) Parse(token string) (int64, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.UserID <= 0 {
		return 0, ErrInvalidToken
	}
	return claims.UserID, nil
}

// Start 签发令牌并写入会话 Cookie
func (m *Manager) Start(c *app.RequestContext, userID int64) error {
	token, _, err := m.Issue(userID)
	if err != nil {
		return err
	}
	c.SetCookie(m.cookieName, token, int(m.maxAge.Seconds()), "/", "", protocol.CookieSameSiteLaxMode, m.secure, true)
	return nil
}

// Clear 使会话 Cookie 过期
func (m *Manager) Clear(c *app.RequestContext) {
	c.SetCookie(m.cookieName, "", -1, "/", "", protocol.CookieSameSiteLaxMode, m.secure, true)
}
