package model

import "errors"

const (
	ErrCodeStarNotFound  = "STR001"
	ErrCodeDuplicateSlug = "STR002"
)

var (
	ErrStarNotFound  = errors.New("star not found")
	ErrDuplicateSlug = errors.New("star slug already exists")
	// ErrUnknownCountry / ErrUnknownCategory: FK trỏ tới record không tồn tại
	ErrUnknownCountry  = errors.New("country does not exist")
	ErrUnknownCategory = errors.New("category does not exist")
)
