package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	"yelpcamp/pkg/common/authctx"
	apperrors "yelpcamp/pkg/common/errors"
	campservice "yelpcamp/pkg/core/campground/service"
	"yelpcamp/pkg/core/user/service"
	"yelpcamp/pkg/web/model"
	"yelpcamp/pkg/web/session"
)

type UserHandler struct {
	users       *service.UserService
	campgrounds *campservice.CampgroundService
	sessions    *session.Manager
}

func NewUserHandler(users *service.UserService, campgrounds *campservice.CampgroundService, sessions *session.Manager) *UserHandler {
	return &UserHandler{
		users:       users,
		campgrounds: campgrounds,
		sessions:    sessions,
	}
}

func (h *UserHandler) RegisterPage(ctx context.Context, c *app.RequestContext) {
	renderRegister(ctx, c, http.StatusOK, model.RegisterForm{}, nil, "")
}

func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	var form model.RegisterForm
	if err := c.Bind(&form); err != nil {
		renderRegister(ctx, c, http.StatusBadRequest, form, nil, MsgInvalidForm)
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderRegister(ctx, c, http.StatusBadRequest, form, errs, "")
		return
	}

	user, err := h.users.Register(ctx, form.Name, form.Email, form.Password)
	switch {
	case errors.Is(err, apperrors.ErrDuplicateEntry):
		_ = c.Error(err)
		renderRegister(ctx, c, http.StatusConflict, form, nil, MsgDuplicateEmail)
		return
	case errors.Is(err, apperrors.ErrPasswordTooLong):
		_ = c.Error(err)
		renderRegister(ctx, c, http.StatusBadRequest, form, model.FieldErrors{"password": "Password must be at most 72 bytes."}, "")
		return
	case err != nil:
		renderError(ctx, c, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		renderError(ctx, c, err)
		return
	}
	redirect(c, "/index")
}

func renderRegister(ctx context.Context, c *app.RequestContext, code int, form model.RegisterForm, errs model.FieldErrors, msg string) {
	form.Password = ""
	render(ctx, c, code, "register.html", utils.H{
		"Title":  "Sign Up",
		"Form":   form,
		"Errors": errs,
		"Error":  msg,
	})
}

func (h *UserHandler) LoginPage(ctx context.Context, c *app.RequestContext) {
	renderLogin(ctx, c, http.StatusOK, model.LoginForm{}, nil, "")
}

func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var form model.LoginForm
	if err := c.Bind(&form); err != nil {
		renderLogin(ctx, c, http.StatusBadRequest, form, nil, MsgInvalidForm)
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderLogin(ctx, c, http.StatusBadRequest, form, errs, "")
		return
	}

	user, err := h.users.Authenticate(ctx, form.Email, form.Password)
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		_ = c.Error(err)
		renderLogin(ctx, c, http.StatusUnauthorized, form, nil, MsgInvalidCredentials)
		return
	case err != nil:
		renderError(ctx, c, err)
		return
	}

	if err := h.sessions.Start(c, user.ID); err != nil {
		renderError(ctx, c, err)
		return
	}
	redirect(c, "/index")
}

func renderLogin(ctx context.Context, c *app.RequestContext, code int, form model.LoginForm, errs model.FieldErrors, msg string) {
	form.Password = ""
	render(ctx, c, code, "login.html", utils.H{
		"Title":  "Login",
		"Form":   form,
		"Errors": errs,
		"Error":  msg,
	})
}

func (h *UserHandler) Logout(ctx context.Context, c *app.RequestContext) {
	h.sessions.Clear(c)
	setFlash(c, MsgLoggedOut)
	redirect(c, "/index")
}

// Profile 列出路径中用户的营地，仅限本人查看
func (h *UserHandler) Profile(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		deny(c)
		return
	}
	userID, ok := authctx.UserIDFromContext(ctx)
	if !ok || userID != id {
		deny(c)
		return
	}

	owner, err := h.users.Get(ctx, id)
	if err != nil {
		renderError(ctx, c, err)
		return
	}
	campgrounds, err := h.campgrounds.ListByOwner(ctx, id)
	if err != nil {
		renderError(ctx, c, err)
		return
	}

	render(ctx, c, http.StatusOK, "profile.html", utils.H{
		"Title":       owner.Name,
		"Owner":       owner,
		"Campgrounds": campgrounds,
	})
}
