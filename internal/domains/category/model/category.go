package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Category: lĩnh vực hoạt động (ca sĩ, diễn viên, ...), URL /industry/<slug>/
type Category struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

const SlugFallback = "category"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CreateCategoryRequest struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

func (r CreateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Slug, validation.RuneLength(0, 255), validation.Match(slugPattern)),
	)
}

type UpdateCategoryRequest struct {
	Title string `json:"title"`
}

func (r UpdateCategoryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, 100)),
	)
}
