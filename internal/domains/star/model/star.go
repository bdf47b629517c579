package model

import (
	"time"

	categorymodel "borntoday/internal/domains/category/model"
	countrymodel "borntoday/internal/domains/country/model"
)

// DateLayout: định dạng ngày sinh trong form và JSON
const DateLayout = "2006-01-02"

// SlugFallback dùng khi tên không sinh được slug
const SlugFallback = "star"

// Star: ngôi sao (người nổi tiếng)
type Star struct {
	ID          int64                    `json:"id"`
	Name        string                   `json:"name"`
	Slug        string                   `json:"slug"`
	Country     countrymodel.Country     `json:"country"`
	Categories  []categorymodel.Category `json:"categories"`
	BirthDate   time.Time                `json:"birth_date"`
	Content     string                   `json:"content"`
	Photo       string                   `json:"photo,omitempty"` // object key trong bucket, rỗng nếu không có ảnh
	IsPublished bool                     `json:"is_published"`
	TimeCreate  time.Time                `json:"time_create"`
	TimeUpdate  time.Time                `json:"time_update"`
}

func (s Star) HasPhoto() bool {
	return s.Photo != ""
}

func (s Star) CategoryIDs() []int64 {
	ids := make([]int64, 0, len(s.Categories))
	for _, c := range s.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

// ListFilter: zero value = tất cả ngôi sao (admin)
type ListFilter struct {
	PublishedOnly bool
	CountryID     int64
	CategoryID    int64
}

// PhotoUpload: file ảnh gửi lên từ form /add/
type PhotoUpload struct {
	Filename string
	Data     []byte
}

// HomePage: dữ liệu trang chủ
type HomePage struct {
	Stars     []Star
	Birthdays BirthdayWindows
	Today     time.Time
}

// SitemapPage dùng cho cả /sitemap/ và /sitemap/<letter>/
type SitemapPage struct {
	Stars         []Star
	Letters       []Letter
	CurrentLetter string
}

// SiteStats: số liệu trang /about/
type SiteStats struct {
	Stars      int `json:"stars"`
	Countries  int `json:"countries"`
	Categories int `json:"categories"`
}

type SetPublishedRequest struct {
	IsPublished *bool `json:"is_published"`
}
