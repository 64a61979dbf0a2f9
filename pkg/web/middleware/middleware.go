package middleware

import (
	"context"
	"fmt"
	"html/template"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server/render"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/hertz-contrib/cors"

	"yelpcamp/pkg/common/config"
)

// HTMLRenderMiddleware 为每个请求挂载页面模板渲染器
func HTMLRenderMiddleware(tmpl *template.Template) app.HandlerFunc {
	renderer := render.HTMLProduction{Template: tmpl}
	return func(c context.Context, ctx *app.RequestContext) {
		ctx.HTMLRender = renderer
		ctx.Next(c)
	}
}

// LoggerMiddleware 结构化的请求日志记录，附带处理器通过 c.Error 记录的最后一个错误
func LoggerMiddleware() app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		start := time.Now()
		ctx.Next(c) // 放行到后续处理器
		latency := time.Since(start)

		hlog.CtxInfof(c, "| %3d | %13v | %15s | %-7s | %s",
			ctx.Response.StatusCode(),
			latency,
			ctx.ClientIP(),
			ctx.Method(),
			ctx.Path(),
		)
		if last := ctx.Errors.Last(); last != nil {
			hlog.CtxWarnf(c, "request error path=%s: %v", ctx.Path(), last.Err)
		}
	}
}

// RecoveryMiddleware 异常捕获，渲染错误页；仅非生产环境显示堆栈
func RecoveryMiddleware(cfg *config.Config) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())
				hlog.CtxErrorf(c, "[PANIC RECOVERED] %v\n%s", err, stack)

				data := utils.H{
					"Title":   "Server Error",
					"Status":  http.StatusInternalServerError,
					"Message": panicMessage,
				}
				if !cfg.IsProd() { // 开发环境显示详细错误
					data["Detail"] = fmt.Sprintf("%v\n\n%s", err, stack)
				}
				renderPanicPage(c, ctx, data)
				ctx.Abort()
			}
		}()
		ctx.Next(c)
	}
}

const panicMessage = "Something went wrong."

// renderPanicPage 渲染失败时退回纯文本，恢复路径自身不能再次 panic
func renderPanicPage(c context.Context, ctx *app.RequestContext, data utils.H) {
	defer func() {
		if err := recover(); err != nil {
			hlog.CtxErrorf(c, "error page render failed: %v", err)
			ctx.Response.Reset()
			ctx.String(http.StatusInternalServerError, panicMessage)
		}
	}()
	if ctx.HTMLRender == nil {
		ctx.String(http.StatusInternalServerError, panicMessage)
		return
	}
	ctx.HTML(http.StatusInternalServerError, "error.html", data)
}

// CORSMiddleware 跨域配置
func CORSMiddleware(corsConfig config.CORSConfig) app.HandlerFunc {
	return cors.New(
		cors.Config{
			AllowOrigins:     corsConfig.AllowOrigins,
			AllowMethods:     corsConfig.AllowMethods,
			AllowHeaders:     corsConfig.AllowHeaders,
			ExposeHeaders:    corsConfig.ExposeHeaders,
			AllowCredentials: corsConfig.AllowCredentials,
			MaxAge:           corsConfig.MaxAge,
			AllowOriginFunc: func(origin string) bool { // 动态校验来源
				for _, domain := range corsConfig.TrustedDomains {
					if strings.Contains(origin, domain) {
						return true
					}
				}
				return false
			},
		},
	)
}

// TimeoutMiddleware 为请求上下文设置截止时间，仓储层查询随之取消
func TimeoutMiddleware(seconds int) app.HandlerFunc {
	return func(c context.Context, ctx *app.RequestContext) {
		if seconds <= 0 {
			ctx.Next(c)
			return
		}
		timeoutCtx, cancel := context.WithTimeout(c, time.Duration(seconds)*time.Second)
		defer cancel()

		ctx.Next(timeoutCtx) // 传入超时上下文

		if timeoutCtx.Err() == context.DeadlineExceeded {
			hlog.CtxWarnf(c, "request timeout path=%s", ctx.Path())
		}
	}
}

// RateLimitMiddleware 令牌桶算法限流，rate 非正数时关闭
func RateLimitMiddleware(rate int, interval time.Duration) app.HandlerFunc {
	if rate <= 0 || interval <= 0 {
		return func(c context.Context, ctx *app.RequestContext) {
			ctx.Next(c)
		}
	}
	limiter := NewTokenBucket(rate, interval)

	return func(c context.Context, ctx *app.RequestContext) {
		if !limiter.Allow() {
			hlog.CtxInfof(c, "[RATE LIMIT] path=%s", ctx.Path())
			ctx.AbortWithMsg("too many requests", http.StatusTooManyRequests)
			return
		}
		ctx.Next(c)
	}
}

// 令牌桶实现
type TokenBucket struct {
	capacity int
	tokens   chan struct{}
	rate     time.Duration
}

// NewTokenBucket 初始装满，每 interval/rate 补充一个令牌
func NewTokenBucket(rate int, interval time.Duration) *TokenBucket {
	tb := &TokenBucket{
		capacity: rate,
		tokens:   make(chan struct{}, rate),
		rate:     interval / time.Duration(rate),
	}
	if tb.rate <= 0 {
		tb.rate = time.Nanosecond
	}
	for i := 0; i < rate; i++ {
		tb.tokens <- struct{}{}
	}

	// 定时器生产令牌
	go func() {
		ticker := time.NewTicker(tb.rate)
		for range ticker.C {
			select {
			case tb.tokens <- struct{}{}:
			default:
			}
		}
	}()
	return tb
}

func (tb *TokenBucket) Allow() bool {
	select {
	case <-tb.tokens:
		return true
	default:
		return false
	}
}

// SecurityCheckMiddleware 全局安全校验：请求体大小与 HTTP 方法白名单
func SecurityCheckMiddleware(cfg config.SecurityConfig) app.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.AllowedMethods))
	for _, m := range cfg.AllowedMethods {
		allowed[strings.ToUpper(m)] = true
	}

	return func(c context.Context, ctx *app.RequestContext) {
		// 请求体大小限制
		if cfg.MaxBodySize > 0 && int64(ctx.Request.Header.ContentLength()) > cfg.MaxBodySize {
			securityResponse(c, ctx, "request body exceeds max size", http.StatusRequestEntityTooLarge)
			return
		}

		// 检查HTTP方法
		if len(allowed) > 0 && !allowed[string(ctx.Method())] {
			securityResponse(c, ctx, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx.Next(c)
	}
}

// 安全响应统一处理
func securityResponse(c context.Context, ctx *app.RequestContext, msg string, status int) {
	hlog.CtxWarnf(c, "SecurityAlert[%d]: %s path=%s", status, msg, ctx.Path())
	ctx.AbortWithMsg(msg, status)
}
