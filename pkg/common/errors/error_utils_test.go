package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestWrapGormError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		notFound *hzte.Error
		want     error
	}{
		{name: "not found user", err: gorm.ErrRecordNotFound, want: ErrUserNotFound, notFound: ErrUserNotFound},
		{name: "not found campground", err: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), want: ErrCampgroundNotFound, notFound: ErrCampgroundNotFound},
		{name: "duplicated key", err: gorm.ErrDuplicatedKey, want: ErrDuplicateEntry},
		{name: "mysql duplicate", err: &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"}, want: ErrDuplicateEntry},
		{name: "mysql missing table", err: &mysql.MySQLError{Number: 1146, Message: "no table"}, want: ErrDatabaseInternal},
		{name: "anything else", err: errors.New("disk full"), want: ErrDatabaseInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, WrapGormError(tt.err, tt.notFound), tt.want)
		})
	}
}

func TestWrapGormErrorNil(t *testing.T) {
	assert.NoError(t, WrapGormError(nil, ErrUserNotFound))
}

func TestWrapGormErrorNotFoundWithoutSentinel(t *testing.T) {
	assert.ErrorIs(t, WrapGormError(gorm.ErrRecordNotFound, nil), ErrDatabaseInternal)
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrCampgroundNotFound))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(fmt.Errorf("show: %w", ErrUserNotFound)))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrForbidden))
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrDuplicateEntry))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrInvalidCredentials))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrPasswordTooLong))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestIsDuplicateError(t *testing.T) {
	assert.True(t, IsDuplicateError(ErrDuplicateEntry))
	assert.True(t, IsDuplicateError(fmt.Errorf("create: %w", gorm.ErrDuplicatedKey)))
	assert.False(t, IsDuplicateError(ErrUserNotFound))
}
