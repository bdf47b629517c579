package model

import "errors"

// Error codes (admin API)
const (
	ErrCodeCountryNotFound = "CTR001"
	ErrCodeDuplicateSlug   = "CTR002"
)

var (
	ErrCountryNotFound = errors.New("country not found")
	ErrDuplicateSlug   = errors.New("country slug already exists")
)
