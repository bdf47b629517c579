// Package flash lưu thông báo one-shot (hiển thị ở request kế tiếp) trong Redis.
// Trình duyệt chỉ giữ cookie flash_id, nội dung nằm ở key flash:<id>.
package flash

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"borntoday/pkg/cache"
)

const (
	CookieName = "flash_id"
	keyPrefix  = "flash:"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

type Store struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewStore(c cache.Cache, ttl time.Duration) *Store {
	return &Store{cache: c, ttl: ttl}
}

func key(id string) string { return keyPrefix + id }

// Add thêm message vào hàng đợi của client hiện tại.
// Lỗi cache chỉ được log, không làm fail request.
func (s *Store) Add(c *gin.Context, level Level, text string) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	id, ok := cookieID(c)
	if !ok {
		id = uuid.NewString()
	}

	var pending []Message
	if ok {
		if _, err := s.cache.Get(ctx, key(id), &pending); err != nil {
			log.Warn().Err(err).Str("flash_id", id).Msg("[FLASH] Failed to read pending messages")
		}
	}
	pending = append(pending, Message{Level: level, Text: text})

	if err := s.cache.Set(ctx, key(id), pending, s.ttl); err != nil {
		log.Warn().Err(err).Str("flash_id", id).Msg("[FLASH] Failed to store message")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, id, int(s.ttl.Seconds()), "/", "", false, true)
}

// Pop trả về và xóa toàn bộ message đang chờ
func (s *Store) Pop(c *gin.Context) []Message {
	id, ok := cookieID(c)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	var pending []Message
	found, err := s.cache.Get(ctx, key(id), &pending)
	if err != nil {
		log.Warn().Err(err).Str("flash_id", id).Msg("[FLASH] Failed to read messages")
		return nil
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	if !found {
		return nil
	}

	if err := s.cache.Delete(ctx, key(id)); err != nil {
		log.Warn().Err(err).Str("flash_id", id).Msg("[FLASH] Failed to delete messages")
	}
	return pending
}

// cookieID chỉ chấp nhận uuid hợp lệ, tránh client tự đặt key tùy ý
func cookieID(c *gin.Context) (string, bool) {
	raw, err := c.Cookie(CookieName)
	if err != nil || raw == "" {
		return "", false
	}
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}
