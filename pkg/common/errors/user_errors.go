// Package errors 应用的哨兵错误，均为 hertz 错误类型
// 处理器可通过 c.Error 挂载到请求，并用 errors.Is 匹配
package errors

import (
	"errors"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
)

var (
	rawErrUserNotFound       = errors.New("user not found")
	rawErrCampgroundNotFound = errors.New("campground not found")
	rawErrDuplicateEntry     = errors.New("email already registered")
	rawErrInvalidCredentials = errors.New("email or password incorrect")
	rawErrForbidden          = errors.New("permission denied")
	rawErrPasswordTooLong    = errors.New("password must be at most 72 bytes")
	rawErrDatabaseInternal   = errors.New("database internal error")
)

var (
	ErrUserNotFound       = hzte.New(rawErrUserNotFound, hzte.ErrorTypePublic, nil)
	ErrCampgroundNotFound = hzte.New(rawErrCampgroundNotFound, hzte.ErrorTypePublic, nil)
	ErrDuplicateEntry     = hzte.New(rawErrDuplicateEntry, hzte.ErrorTypePublic, nil)
	ErrInvalidCredentials = hzte.New(rawErrInvalidCredentials, hzte.ErrorTypePublic, nil)
	ErrForbidden          = hzte.New(rawErrForbidden, hzte.ErrorTypePublic, nil)
	ErrPasswordTooLong    = hzte.New(rawErrPasswordTooLong, hzte.ErrorTypePublic, nil)
	ErrDatabaseInternal   = hzte.New(rawErrDatabaseInternal, hzte.ErrorTypePrivate, nil)
)
