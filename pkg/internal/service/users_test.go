package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/bedrib/mediamover/pkg/internal/model"
	"github.com/bedrib/mediamover/pkg/internal/storage/db"
	"github.com/bedrib/mediamover/pkg/internal/types"
)

// newTestDB 打开内存 sqlite 并迁移表结构.
func newTestDB(t *testing.T) *db.Client {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := gdb.AutoMigrate(&model.User{}, &model.FileUpload{}, &model.SystemMetric{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return &db.Client{DB: gdb}
}

// TestCreateAndAuthenticate 测试创建用户后可以用正确口令登录.
func TestCreateAndAuthenticate(t *testing.T) {
	svc := &UserService{dbClient: newTestDB(t)}
	ctx := context.Background()

	user, err := svc.Create(ctx, &types.CreateUserRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret-password",
		IsAdmin:  true,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	if user.HashedPassword == "secret-password" {
		t.Error("password stored in plaintext")
	}

	got, err := svc.Authenticate(ctx, "alice", "secret-password")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}

	if got.Username != "alice" || !got.IsAdmin {
		t.Errorf("unexpected user: %+v", got)
	}
}

// TestAuthenticateWrongPassword 测试错误口令和不存在的用户返回同一个错误.
func TestAuthenticateWrongPassword(t *testing.T) {
	svc := &UserService{dbClient: newTestDB(t)}
	ctx := context.Background()

	if _, err := svc.Create(ctx, &types.CreateUserRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "correct-password",
	}); err != nil {
		t.Fatalf("create user: %v", err)
	}

	if _, err := svc.Authenticate(ctx, "bob", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}

	if _, err := svc.Authenticate(ctx, "nobody", "whatever"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: expected ErrInvalidCredentials, got %v", err)
	}
}

// TestCreateDuplicateUsername 测试重复用户名返回 ErrUsernameTaken.
func TestCreateDuplicateUsername(t *testing.T) {
	svc := &UserService{dbClient: newTestDB(t)}
	ctx := context.Background()

	req := &types.CreateUserRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "some-password",
	}

	if _, err := svc.Create(ctx, req); err != nil {
		t.Fatalf("first create: %v", err)
	}

	if _, err := svc.Create(ctx, req); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}
}
