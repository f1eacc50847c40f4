package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/model"
)

func testAuthConfig() configs.AuthConfig {
	return configs.AuthConfig{
		Enabled:            true,
		JWTSecret:          "test-secret",
		TokenExpireMinutes: 30,
	}
}

// TestCreateAccessTokenRoundTrip 测试签发的令牌可以被解析回用户名.
func TestCreateAccessTokenRoundTrip(t *testing.T) {
	conf := testAuthConfig()

	token, err := CreateAccessToken(conf, "alice")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	sub, err := parseSubject(conf, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if sub != "alice" {
		t.Errorf("subject = %q, want alice", sub)
	}
}

// TestParseSubjectWrongSecret 测试用错误密钥签发的令牌被拒绝.
func TestParseSubjectWrongSecret(t *testing.T) {
	conf := testAuthConfig()

	other := conf
	other.JWTSecret = "another-secret"

	token, err := CreateAccessToken(other, "alice")
	if err != nil {
		t.Fatalf("create token: %v", err)
	}

	if _, err := parseSubject(conf, token); err == nil {
		t.Error("expected error for token signed with wrong secret")
	}
}

// TestParseSubjectExpired 测试过期令牌被拒绝.
func TestParseSubjectExpired(t *testing.T) {
	conf := testAuthConfig()

	claims := jwt.RegisteredClaims{
		Subject:   "alice",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(conf.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	if _, err := parseSubject(conf, token); err == nil {
		t.Error("expected error for expired token")
	}
}

// TestAuthMiddlewareMissingHeader 测试无 Authorization 头返回 401 且带 WWW-Authenticate.
func TestAuthMiddlewareMissingHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(AuthMiddleware(testAuthConfig()))
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}

	if got := w.Header().Get("WWW-Authenticate"); got != "Bearer" {
		t.Errorf("WWW-Authenticate = %q, want Bearer", got)
	}
}

// TestAuthMiddlewareDisabled 测试认证关闭时直接放行.
func TestAuthMiddlewareDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)

	conf := testAuthConfig()
	conf.Enabled = false

	e := gin.New()
	e.Use(AuthMiddleware(conf))
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	e.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

// TestRequireAdmin 测试管理员检查对非管理员与管理员的分流.
func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)

	run := func(user *model.User) int {
		e := gin.New()
		e.Use(func(c *gin.Context) {
			if user != nil {
				c.Set(userKey, user)
			}
			c.Next()
		})
		e.Use(RequireAdmin())
		e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		e.ServeHTTP(w, req)

		return w.Code
	}

	if code := run(nil); code != http.StatusForbidden {
		t.Errorf("no user: status = %d, want 403", code)
	}

	if code := run(&model.User{Username: "bob"}); code != http.StatusForbidden {
		t.Errorf("non-admin: status = %d, want 403", code)
	}

	if code := run(&model.User{Username: "root", IsAdmin: true}); code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", code)
	}
}

// TestCSPMiddleware 测试所有响应都带 Content-Security-Policy 头.
func TestCSPMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.Use(CSPMiddleware())
	e.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	e.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Security-Policy"); got != cspPolicy {
		t.Errorf("Content-Security-Policy = %q, want %q", got, cspPolicy)
	}
}
