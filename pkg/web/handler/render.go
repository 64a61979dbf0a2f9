package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"yelpcamp/pkg/common/authctx"
	apperrors "yelpcamp/pkg/common/errors"
)

const flashCookie = "flash"

// 面向用户的提示信息
const (
	MsgDuplicateEmail     = "That email is already registered. Please log in instead."
	MsgInvalidCredentials = "Email or password incorrect, please try again."
	MsgLoggedOut          = "You have been logged out."
	MsgPermissionDenied   = "You do not have permission to view that page."
	MsgCampgroundDeleted  = "Campground deleted."
	MsgInvalidForm        = "The form could not be read."
)

// render 填充所有页面共用的数据并渲染模板
func render(ctx context.Context, c *app.RequestContext, code int, page string, data utils.H) {
	if data == nil {
		data = utils.H{}
	}
	userID, ok := authctx.UserIDFromContext(ctx)
	data["LoggedIn"] = ok
	data["UserID"] = userID
	if msg := takeFlash(c); msg != "" {
		data["Flash"] = msg
	}
	c.HTML(code, page, data)
}

// renderError 将错误挂载到请求，并以对应状态码渲染错误页
func renderError(ctx context.Context, c *app.RequestContext, err error) {
	status := apperrors.HTTPStatus(err)
	_ = c.Error(err)
	if status >= http.StatusInternalServerError {
		hlog.CtxErrorf(ctx, "%s %s: %v", c.Method(), c.Path(), err)
	}
	render(ctx, c, status, "error.html", utils.H{
		"Title":   http.StatusText(status),
		"Status":  status,
		"Message": publicMessage(err),
	})
}

func publicMessage(err error) string {
	var hzErr *hzte.Error
	if errors.As(err, &hzErr) && hzErr.IsType(hzte.ErrorTypePublic) {
		return hzErr.Error()
	}
	return "Something went wrong."
}

func notFound(ctx context.Context, c *app.RequestContext) {
	renderError(ctx, c, apperrors.ErrCampgroundNotFound)
}

func redirect(c *app.RequestContext, location string) {
	c.Redirect(consts.StatusFound, []byte(location))
}

// deny 带权限提示重定向到首页
func deny(c *app.RequestContext) {
	setFlash(c, MsgPermissionDenied)
	redirect(c, "/")
}

func setFlash(c *app.RequestContext, msg string) {
	c.SetCookie(flashCookie, url.QueryEscape(msg), 60, "/", "", protocol.CookieSameSiteLaxMode, false, true)
}

func takeFlash(c *app.RequestContext) string {
	raw := c.Cookie(flashCookie)
	if len(raw) == 0 {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", protocol.CookieSameSiteLaxMode, false, true)
	msg, err := url.QueryUnescape(string(raw))
	if err != nil {
		return ""
	}
	return msg
}

func pathID(c *app.RequestContext) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
