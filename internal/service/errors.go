package service

import (
	"errors"

	"gorm.io/gorm"
)

// 错误分类。具体错误都会包装其中一种，handler 依据分类映射 HTTP 状态码。
var (
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrConflict     = errors.New("conflict")
)

var (
	ErrMissingField    = kindError(ErrValidation, "required field is missing")
	ErrInvalidRating   = kindError(ErrValidation, "rating must be between 0 and 5")
	ErrEmptyText       = kindError(ErrValidation, "comment text is required")
	ErrInvalidImage    = kindError(ErrValidation, "uploaded file is not a supported image")
	ErrInvalidMealType = kindError(ErrValidation, "meal type must be breakfast, lunch or dinner")

	ErrUserNotFound    = kindError(ErrNotFound, "user not found")
	ErrRecipeNotFound  = kindError(ErrNotFound, "recipe not found")
	ErrProfileNotFound = kindError(ErrNotFound, "profile not found")
	ErrJournalNotFound = kindError(ErrNotFound, "journal entry not found")

	ErrInvalidCredentials = kindError(ErrUnauthorized, "invalid username or password")
	ErrNotLoggedIn        = kindError(ErrUnauthorized, "user not logged in")

	ErrDuplicateIdentity = kindError(ErrConflict, "username or email is already taken")
	ErrAlreadyFavorited  = kindError(ErrConflict, "recipe already favorited by the user")
	ErrNotFavorited      = kindError(ErrConflict, "recipe is not favorited by the user")
)

type classifiedError struct {
	kind    error
	message string
}

func kindError(kind error, message string) error {
	return &classifiedError{kind: kind, message: message}
}

func (e *classifiedError) Error() string {
	return e.message
}

func (e *classifiedError) Unwrap() error {
	return e.kind
}

// isDuplicateKey 判断是否违反唯一约束，需要 gorm.Config.TranslateError 开启
func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isCheckViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated)
}
