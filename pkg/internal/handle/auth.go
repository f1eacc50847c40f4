package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bedrib/mediamover/pkg/configs"
	"github.com/bedrib/mediamover/pkg/internal/service"
	"github.com/bedrib/mediamover/pkg/internal/types"
	"github.com/bedrib/mediamover/pkg/log"
	"github.com/bedrib/mediamover/pkg/middleware"
	"github.com/bedrib/mediamover/pkg/rule"
)

// Login 处理 OAuth2 密码模式登录，签发 Bearer 令牌.
//
//	@Summary	登录获取令牌
//	@Accept		x-www-form-urlencoded
//	@Produce	json
//	@Param		username	formData	string	true	"用户名"
//	@Param		password	formData	string	true	"密码"
//	@Success	200			{object}	types.TokenResponse
//	@Failure	401			{object}	map[string]string
//	@Router		/token [post]
func Login(c *gin.Context) {
	l := log.Logger()

	var req types.TokenRequest
	if err := c.ShouldBind(&req); err != nil {
		l.Warn().Err(err).Msg("invalid token request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	svc := service.NewUserService(c.Request.Context())

	user, err := svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect username or password"})

			return
		}

		l.Error().Err(err).Msg("authenticate failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	token, err := middleware.CreateAccessToken(configs.GetConfig().Auth, user.Username)
	if err != nil {
		l.Error().Err(err).Msg("sign access token failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, types.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// TokenCheck 校验当前令牌是否有效，有效时返回空对象.
// 认证本身由中间件完成，走到这里说明令牌可用.
func TokenCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{})
}

// CreateUser 管理员创建新用户.
func CreateUser(c *gin.Context) {
	l := log.Logger()

	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("invalid create user request")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

		return
	}

	if err := rule.ValidateVar(req.Username, "required,alphanum,min=3,max=64"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username"})
		return
	}

	svc := service.NewUserService(c.Request.Context())

	user, err := svc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already registered"})
			return
		}

		l.Error().Err(err).Msg("create user failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, types.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin,
		CreatedAt: user.CreatedAt,
	})
}
