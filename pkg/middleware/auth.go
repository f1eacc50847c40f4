package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/bedrib/mediamover/pkg/configs"
	ctxPkg "github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/model"
)

const userKey = "currentUser"

// CreateAccessToken 签发 HS256 访问令牌，sub 为用户名.
func CreateAccessToken(conf configs.AuthConfig, username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(conf.TokenExpireMinutes) * time.Minute)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(conf.JWTSecret))
}

// parseSubject 校验令牌并取出用户名.
func parseSubject(conf configs.AuthConfig, tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(conf.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	return token.Claims.GetSubject()
}

// abortUnauthorized 按 OAuth2 约定返回 401 并带 WWW-Authenticate 头.
func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": detail})
}

// AuthMiddleware 基于 JWT Bearer 令牌做身份认证校验。
//   - 从 Authorization: Bearer <token> 解析并校验签名与过期时间
//   - 按 sub 声明从数据库加载账户，注入到 gin.Context
//   - conf.Enabled 为 false 时放行所有请求（本地调试用）.
func AuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")

		tokenStr, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(tokenStr) == "" {
			abortUnauthorized(c, "not authenticated")

			return
		}

		username, err := parseSubject(conf, strings.TrimSpace(tokenStr))
		if err != nil {
			abortUnauthorized(c, "Could not validate credentials")

			return
		}

		db := ctxPkg.GetDBClient(c.Request.Context())
		if db == nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage not initialized"})

			return
		}

		var user model.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			abortUnauthorized(c, "Could not validate credentials")

			return
		}

		c.Set(userKey, &user)
		c.Next()
	}
}

// GetCurrentUser 获取认证中间件注入的账户，未认证时返回 nil.
func GetCurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(userKey); ok {
		if u, ok2 := v.(*model.User); ok2 {
			return u
		}
	}

	return nil
}
