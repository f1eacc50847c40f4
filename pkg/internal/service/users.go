package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/bedrib/mediamover/pkg/configs"
	ctxPkg "github.com/bedrib/mediamover/pkg/context"
	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/storage/db"
	"github.com/bedrib/mediamover/pkg/internal/types"
	nlog "github.com/bedrib/mediamover/pkg/log"
)

var (
	// ErrInvalidCredentials 用户名不存在或密码不匹配.
	ErrInvalidCredentials = errors.New("incorrect username or password")
	// ErrUsernameTaken 用户名已被注册.
	ErrUsernameTaken = errors.New("username already registered")
)

// UserService 负责账户的创建与口令校验.
type UserService struct {
	dbClient *db.Client
}

// NewUserService 从 context 获取依赖实例.
func NewUserService(c context.Context) *UserService {
	dbc := ctxPkg.GetDBClient(c)
	if dbc == nil || dbc.DB == nil {
		nlog.Logger().Fatal().Msg("db client not initialized")
	}

	return &UserService{dbClient: dbc}
}

// Authenticate 校验用户名与密码，成功返回对应用户.
// 用户不存在和密码错误返回同一个错误，不泄露账户是否存在.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var user model.User
	if err := dbx.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// Create 创建新用户，用户名重复返回 ErrUsernameTaken.
func (s *UserService) Create(ctx context.Context, req *types.CreateUserRequest) (*model.User, error) {
	dbx := s.dbClient.GetDB().WithContext(ctx)

	var existing model.User

	err := dbx.Where("username = ?", req.Username).First(&existing).Error
	if err == nil {
		return nil, ErrUsernameTaken
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashed),
		IsAdmin:        req.IsAdmin,
	}

	if err := dbx.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// SeedAdmin 按配置创建初始管理员账户，已存在时静默跳过.
// 启动阶段调用，失败只记日志不阻塞服务.
func (s *UserService) SeedAdmin(ctx context.Context, cfg configs.AuthConfig) {
	if !cfg.SeedAdmin {
		return
	}

	_, err := s.Create(ctx, &types.CreateUserRequest{
		Username: cfg.SeedAdminUsername,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		IsAdmin:  true,
	})
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			return
		}

		nlog.Logger().Warn().Err(err).Str("username", cfg.SeedAdminUsername).Msg("seed admin user failed")

		return
	}

	nlog.Logger().Info().Str("username", cfg.SeedAdminUsername).Msg("seed admin user created")
}
