package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"borntoday/internal/infrastructure/queue"
)

func TestCheckAll_StopsAtFirstFailure(t *testing.T) {
	var called []string
	checks := []healthCheck{
		{"first", func(context.Context) error { called = append(called, "first"); return nil }},
		{"second", func(context.Context) error { called = append(called, "second"); return errors.New("down") }},
		{"third", func(context.Context) error { called = append(called, "third"); return nil }},
	}

	err := checkAll(checks)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "second failed")
	assert.Equal(t, []string{"first", "second"}, called)
}

func TestHealthRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := healthRouter()

	for _, path := range []string{"/health", "/ready"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestRegisterHandlers_CoversAllTaskTypes(t *testing.T) {
	mux := asynq.NewServeMux()
	(&HandlerRegistry{}).RegisterHandlers(mux)

	for _, typ := range []string{queue.TypeDeletePhoto, queue.TypeSweepOrphanPhotos} {
		_, pattern := mux.Handler(asynq.NewTask(typ, nil))
		assert.Equal(t, typ, pattern)
	}
}
