package configs

import "github.com/spf13/viper"

// AuthConfig 控制基于 JWT 的身份认证.
type AuthConfig struct {
	Enabled            bool   `mapstructure:"enabled"`              // 开启认证校验
	JWTSecret          string `mapstructure:"jwt_secret"`           // HS256 签名密钥
	TokenExpireMinutes int    `mapstructure:"token_expire_minutes"` // 令牌有效期（分钟）
	SeedAdmin          bool   `mapstructure:"seed_admin"`           // 启动时创建默认管理员
	SeedAdminUsername  string `mapstructure:"seed_admin_username"`  // 默认管理员用户名
	SeedAdminPassword  string `mapstructure:"seed_admin_password"`  // 默认管理员密码
	SeedAdminEmail     string `mapstructure:"seed_admin_email"`     // 默认管理员邮箱
}

func (c *AuthConfig) setDefaults(v *viper.Viper) {
	v.SetDefault("auth.enabled", true)
	v.SetDefault("auth.jwt_secret", "change-me-in-production")
	v.SetDefault("auth.token_expire_minutes", 30)
	v.SetDefault("auth.seed_admin", true)
	v.SetDefault("auth.seed_admin_username", "admin")
	v.SetDefault("auth.seed_admin_password", "admin")
	v.SetDefault("auth.seed_admin_email", "admin@example.com")
}
