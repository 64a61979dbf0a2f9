package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	apperrors "yelpcamp/pkg/common/errors"
	"yelpcamp/pkg/core/campground/service"
	"yelpcamp/pkg/web/model"
)

type CampgroundHandler struct {
	campgrounds *service.CampgroundService
}

func NewCampgroundHandler(campgrounds *service.CampgroundService) *CampgroundHandler {
	return &CampgroundHandler{campgrounds: campgrounds}
}

func (h *CampgroundHandler) Landing(ctx context.Context, c *app.RequestContext) {
	render(ctx, c, http.StatusOK, "landing.html", nil)
}

func (h *CampgroundHandler) Index(ctx context.Context, c *app.RequestContext) {
	campgrounds, err := h.campgrounds.List(ctx)
	if err != nil {
		renderError(ctx, c, err)
		return
	}
	render(ctx, c, http.StatusOK, "index.html", utils.H{
		"Title":       "Campgrounds",
		"Campgrounds": campgrounds,
	})
}

func (h *CampgroundHandler) Show(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		notFound(ctx, c)
		return
	}
	detail, err := h.campgrounds.Show(ctx, id)
	if err != nil {
		renderError(ctx, c, err)
		return
	}
	render(ctx, c, http.StatusOK, "show.html", utils.H{
		"Title":  detail.Campground.Name,
		"Detail": detail,
	})
}

func (h *CampgroundHandler) NewPage(ctx context.Context, c *app.RequestContext) {
	renderForm(ctx, c, http.StatusOK, "New Campground", "/new", model.CampgroundForm{}, nil)
}

func (h *CampgroundHandler) Create(ctx context.Context, c *app.RequestContext) {
	var form model.CampgroundForm
	if err := c.Bind(&form); err != nil {
		renderForm(ctx, c, http.StatusBadRequest, "New Campground", "/new", form, model.FieldErrors{"form": MsgInvalidForm})
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderForm(ctx, c, http.StatusBadRequest, "New Campground", "/new", form, errs)
		return
	}

	_, err := h.campgrounds.Create(ctx, toInput(form))
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		redirect(c, "/login")
		return
	case err != nil:
		renderError(ctx, c, err)
		return
	}
	redirect(c, "/index")
}

func (h *CampgroundHandler) EditPage(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		notFound(ctx, c)
		return
	}
	campground, err := h.campgrounds.Get(ctx, id)
	if err != nil {
		renderError(ctx, c, err)
		return
	}
	if err := h.campgrounds.Authorize(ctx, campground); err != nil {
		deny(c)
		return
	}

	form := model.CampgroundForm{
		Name:        campground.Name,
		Image:       campground.Image,
		Description: campground.Description,
	}
	renderForm(ctx, c, http.StatusOK, "Edit Campground", editPath(id), form, nil)
}

func (h *CampgroundHandler) Update(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		notFound(ctx, c)
		return
	}
	var form model.CampgroundForm
	if err := c.Bind(&form); err != nil {
		renderForm(ctx, c, http.StatusBadRequest, "Edit Campground", editPath(id), form, model.FieldErrors{"form": MsgInvalidForm})
		return
	}
	if errs := form.Validate(); errs.Any() {
		renderForm(ctx, c, http.StatusBadRequest, "Edit Campground", editPath(id), form, errs)
		return
	}

	_, err := h.campgrounds.Update(ctx, id, toInput(form))
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		deny(c)
		return
	case err != nil:
		renderError(ctx, c, err)
		return
	}
	redirect(c, "/"+strconv.FormatInt(id, 10))
}

func (h *CampgroundHandler) Delete(ctx context.Context, c *app.RequestContext) {
	id, ok := pathID(c)
	if !ok {
		notFound(ctx, c)
		return
	}

	err := h.campgrounds.Delete(ctx, id)
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		deny(c)
		return
	case err != nil:
		renderError(ctx, c, err)
		return
	}
	setFlash(c, MsgCampgroundDeleted)
	redirect(c, "/index")
}

func renderForm(ctx context.Context, c *app.RequestContext, code int, title, action string, form model.CampgroundForm, errs model.FieldErrors) {
	render(ctx, c, code, "form.html", utils.H{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Errors": errs,
	})
}

func editPath(id int64) string {
	return "/edit/" + strconv.FormatInt(id, 10)
}

func toInput(form model.CampgroundForm) service.Input {
	return service.Input{
		Name:        form.Name,
		Image:       form.Image,
		Description: form.Description,
	}
}
