package model

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Country: quốc gia của ngôi sao (menu bên trái + trang /country/<slug>/)
type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// SlugFallback dùng khi tên không sinh được slug (vd chỉ có dấu câu)
const SlugFallback = "country"

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

type CreateCountryRequest struct {
	Name string `json:"name"`
	// Slug tùy chọn: nếu có sẽ được giữ nguyên, nếu rỗng sẽ sinh từ Name
	Slug string `json:"slug"`
}

func (r CreateCountryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&r.Slug, validation.RuneLength(0, 255), validation.Match(slugPattern)),
	)
}

// UpdateCountryRequest chỉ đổi tên, slug đã gán thì không bao giờ tính lại
type UpdateCountryRequest struct {
	Name string `json:"name"`
}

func (r UpdateCountryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.RuneLength(1, 100)),
	)
}
