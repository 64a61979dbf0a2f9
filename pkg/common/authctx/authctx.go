// Package authctx 通过 context.Context 传递请求的登录身份（可选）
package authctx

import "context"

type userIDContextKey struct{}

// WithUserID 将登录用户 ID 存入 ctx
func WithUserID(ctx context.Context, userID int64) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDContextKey{}, userID)
}

// UserIDFromContext 返回登录用户 ID（如有）
func UserIDFromContext(ctx context.Context) (int64, bool) {
	if ctx == nil {
		return 0, false
	}
	id, ok := ctx.Value(userIDContextKey{}).(int64)
	return id, ok
}

// IsAuthenticated ctx 中是否带有身份
func IsAuthenticated(ctx context.Context) bool {
	_, ok := UserIDFromContext(ctx)
	return ok
}
