package handle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/internal/handle"
)

// TestHealth 测试健康检查返回固定的 healthy 状态.
func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.GET("/health", handle.Health)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	if !strings.Contains(w.Body.String(), `"status":"healthy"`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// TestHealthComponentsUninitialized 测试组件健康检查在依赖未注入时返回 503.
func TestHealthComponentsUninitialized(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.GET("/health/db", handle.HealthDB)
	e.GET("/health/rclone", handle.HealthRclone)
	e.GET("/health/mq", handle.HealthMQ)

	for _, path := range []string{"/health/db", "/health/rclone", "/health/mq"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		e.ServeHTTP(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s: status = %d, want 503", path, w.Code)
		}
	}
}
