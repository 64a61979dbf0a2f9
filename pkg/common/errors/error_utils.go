package errors

import (
	"errors"
	"fmt"
	"net/http"

	hzte "github.com/cloudwego/hertz/pkg/common/errors"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// WrapGormError 将原始 GORM 错误转换为包内哨兵错误
// 记录不存在时返回 notFound，由各仓储指定自己的实体
func WrapGormError(rawErr error, notFound *hzte.Error) error {
	if rawErr == nil {
		return nil
	}

	switch {
	case errors.Is(rawErr, gorm.ErrRecordNotFound):
		if notFound == nil {
			return fmt.Errorf("%w: %v", ErrDatabaseInternal, rawErr)
		}
		return notFound
	case errors.Is(rawErr, gorm.ErrDuplicatedKey):
		return ErrDuplicateEntry
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(rawErr, &mysqlErr) {
		switch mysqlErr.Number {
		case 1062: // 唯一约束冲突
			return ErrDuplicateEntry
		case 1045, 1049, 1146:
			return fmt.Errorf("%w: %s", ErrDatabaseInternal, mysqlErr.Message)
		}
	}

	return fmt.Errorf("%w: %v", ErrDatabaseInternal, rawErr)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicateEntry) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// IsNotFound 判断是否为用户或营地不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrCampgroundNotFound)
}

// HTTPStatus 将错误映射为页面响应状态码
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrDuplicateEntry):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrPasswordTooLong):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
