package model

import (
	"net/mail"
	"net/url"
	"strings"
)

// FieldErrors 表单字段到错误提示的映射
type FieldErrors map[string]string

func (e FieldErrors) Any() bool {
	return len(e) > 0
}

// MaxPasswordBytes 与 bcrypt 的输入上限一致
const MaxPasswordBytes = 72

func (e FieldErrors) required(field, value, label string) {
	if strings.TrimSpace(value) == "" {
		e[field] = label + " is required."
	}
}

// present 只要求非空，密码中的空白也是有效字符
func (e FieldErrors) present(field, value, label string) {
	if value == "" {
		e[field] = label + " is required."
	}
}

type (
	CampgroundForm struct {
		Name        string `form:"name"`
		Image       string `form:"image"`
		Description string `form:"description"`
	}

	RegisterForm struct {
		Name     string `form:"name"`
		Email    string `form:"email"`
		Password string `form:"password"`
	}

	LoginForm struct {
		Email    string `form:"email"`
		Password string `form:"password"`
	}
)

func (f CampgroundForm) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("name", f.Name, "Campground name")
	errs.required("image", f.Image, "Campground image URL")
	errs.required("description", f.Description, "Campground description")
	if _, ok := errs["image"]; !ok && !isHTTPURL(f.Image) {
		errs["image"] = "Campground image URL must be an http(s) link."
	}
	return errs
}

func (f RegisterForm) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("name", f.Name, "User name")
	errs.required("email", f.Email, "Email")
	errs.present("password", f.Password, "Password")
	if _, ok := errs["email"]; !ok && !isEmail(f.Email) {
		errs["email"] = "Email is not a valid address."
	}
	if len(f.Password) > MaxPasswordBytes {
		errs["password"] = "Password must be at most 72 bytes."
	}
	return errs
}

func (f LoginForm) Validate() FieldErrors {
	errs := FieldErrors{}
	errs.required("email", f.Email, "Email")
	errs.present("password", f.Password, "Password")
	return errs
}

func isEmail(value string) bool {
	addr, err := mail.ParseAddress(strings.TrimSpace(value))
	return err == nil && addr.Name == ""
}

func isHTTPURL(value string) bool {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
