package types

import "time"

// TokenRequest OAuth2 密码模式的表单参数.
type TokenRequest struct {
	Username string `binding:"required" form:"username"`
	Password string `binding:"required" form:"password"`
}

// TokenResponse 登录成功返回的令牌.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateUserRequest 管理员创建用户请求.
type CreateUserRequest struct {
	Username string `binding:"required"       json:"username"`
	Email    string `binding:"required,email" json:"email"`
	Password string `binding:"required,min=8" json:"password"`
	IsAdmin  bool   `json:"is_admin"`
}

// UserResponse 用户信息，不含密码哈希.
type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}
