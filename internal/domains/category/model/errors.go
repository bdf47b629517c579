package model

import "errors"

const (
	ErrCodeCategoryNotFound = "CAT001"
	ErrCodeDuplicateSlug    = "CAT002"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrDuplicateSlug    = errors.New("category slug already exists")
)
