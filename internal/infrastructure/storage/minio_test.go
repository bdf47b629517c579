package storage

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPhotoKey_DatePartitioned(t *testing.T) {
	at := time.Date(2024, time.March, 9, 23, 0, 0, 0, time.UTC)

	key := PhotoKey(at, ".JPG")

	assert.Regexp(t, regexp.MustCompile(`^photos/2024/03/09/[0-9a-f-]{36}\.jpg$`), key)
	assert.NotEqual(t, key, PhotoKey(at, "jpg"))
}

func TestPhotoKey_DefaultExtension(t *testing.T) {
	key := PhotoKey(time.Now(), "")
	assert.Regexp(t, `\.jpg$`, key)
}

func TestPublicURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		key      string
		expected string
	}{
		{"plain", "http://localhost:9000", "photos/2024/03/10/a.jpg", "http://localhost:9000/borntoday/photos/2024/03/10/a.jpg"},
		{"trailing slash", "https://cdn.example.com/", "/photos/a.jpg", "https://cdn.example.com/borntoday/photos/a.jpg"},
		{"empty key", "http://localhost:9000", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PublicURL(tt.base, "borntoday", tt.key))
		})
	}
}

func TestPublicReadPolicy_CoversPhotosOnly(t *testing.T) {
	policy := publicReadPolicy("borntoday")

	assert.Contains(t, policy, `arn:aws:s3:::borntoday/photos/*`)
	assert.Contains(t, policy, `s3:GetObject`)
	assert.NotContains(t, policy, `s3:PutObject`)
}
