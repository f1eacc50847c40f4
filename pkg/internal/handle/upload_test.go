package handle_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/internal/handle"
	"github.com/bedrib/mediamover/pkg/internal/model"
)

// withTestUser 在请求上下文注入一个已认证账户.
func withTestUser(u *model.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", u)
		c.Next()
	}
}

// TestUploadFileMissing 测试缺少 file 字段时返回 400，不触发任何远端调用.
func TestUploadFileMissing(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.POST("/upload/", handle.UploadFile)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload/", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "file is required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

// TestUploadMultipleUnauthenticated 测试未注入账户时返回 401.
func TestUploadMultipleUnauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.POST("/upload-multiple/", handle.UploadMultipleFiles)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload-multiple/", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

// TestUploadMultipleNoFiles 测试空批次返回 400，不触发任何远端调用.
func TestUploadMultipleNoFiles(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.POST("/upload-multiple/", withTestUser(&model.User{ID: 1, Username: "tester"}), handle.UploadMultipleFiles)

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("folder", "/docs")
	_ = mw.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/upload-multiple/", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	e.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}

	if !strings.Contains(w.Body.String(), "files are required") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
