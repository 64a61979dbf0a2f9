package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	jwt "github.com/hertz-contrib/jwt"

	"yelpcamp/pkg/common/authctx"
	"yelpcamp/pkg/common/config"
	apperrors "yelpcamp/pkg/common/errors"
	usermodel "yelpcamp/pkg/core/user/model"
	"yelpcamp/pkg/web/session"
)

// UserLookup 确认会话对应的用户仍然存在
type UserLookup interface {
	Get(ctx context.Context, id int64) (usermodel.User, error)
}

// SessionMiddleware 将会话 Cookie 解析为请求上下文中的身份，无效时按匿名处理
func SessionMiddleware(sessions *session.Manager, users UserLookup) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		token := ctx.Cookie(sessions.CookieName())
		if len(token) == 0 {
			ctx.Next(c)
			return
		}

		userID, err := sessions.Parse(string(token))
		if err != nil {
			hlog.CtxDebugf(c, "dropping session cookie: %v", err)
			sessions.Clear(ctx)
			ctx.Next(c)
			return
		}

		if users != nil {
			if _, err := users.Get(c, userID); err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					sessions.Clear(ctx)
				} else {
					hlog.CtxErrorf(c, "session user lookup failed: %v", err)
				}
				ctx.Next(c)
				return
			}
		}

		ctx.Next(authctx.WithUserID(c, userID))
	}
}

// RequireLogin 无有效会话时重定向到登录页
func RequireLogin(cfg config.SessionConfig) app.HandlerFunc {
	authMiddleware, err := jwt.New(&jwt.HertzJWTMiddleware{
		Realm:            cfg.Issuer,
		SigningAlgorithm: "HS256",
		Key:              []byte(cfg.SecretKey),
		Timeout:          cfg.MaxAge,
		TimeFunc:         time.Now,
		IdentityKey:      session.IdentityKey,
		TokenLookup:      "cookie:" + cfg.CookieName,
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			hlog.CtxInfof(ctx, "login required (code=%d) path=%s: %s", code, c.Path(), message)
			c.Redirect(consts.StatusFound, []byte("/login"))
		},
	})
	if err != nil {
		panic(fmt.Sprintf("login middleware init failed: %v", err))
	}
	return authMiddleware.MiddlewareFunc()
}
