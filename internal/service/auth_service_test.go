package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"redbook-go/internal/repository"
	"redbook-go/pkg/utils"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestAuthService_RegisterValidation(t *testing.T) {
	gormDB, _, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewAuthService(repository.NewUserRepository(gormDB))

	longName := strings.Repeat("长", 51)

	tests := []struct {
		name     string
		username string
		password string
		nickname string
		avatar   *UploadFile
		want     error
	}{
		{"用户名太短", "ab", "secret123", "小明", nil, ErrUsernameTooShort},
		{"用户名太长", longName, "secret123", "小明", nil, ErrUsernameTooLong},
		{"密码太短", "alice", "12345", "小明", nil, ErrPasswordTooShort},
		{"密码太长", "alice", strings.Repeat("p", 129), "小明", nil, ErrPasswordTooLong},
		{"昵称太长", "alice", "secret123", longName, nil, ErrNicknameTooLong},
		{"缺少头像", "alice", "secret123", "小明", nil, ErrAvatarRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password, tt.nickname, tt.avatar)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestAuthService_RegisterDuplicateUsername(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewAuthService(repository.NewUserRepository(gormDB))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE username = $1`)).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	// 预检查命中时不会触发头像上传
	avatar := &UploadFile{Filename: "avatar.png", Data: []byte{0x89}}
	_, err := svc.Register(context.Background(), "alice", "secret123", "小明", avatar)
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestAuthService_LoginFailuresIndistinguishable(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewAuthService(repository.NewUserRepository(gormDB))

	hash, err := utils.HashPassword("rightpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	// 密码错误
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "nickname", "avatar_url", "created_at"}).
			AddRow(int64(1), "alice", hash, "小明", nil, time.Now()))

	_, _, errWrongPass := svc.Login(context.Background(), "alice", "wrongpass")

	// 用户不存在
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("ghost", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "nickname", "avatar_url", "created_at"}))

	_, _, errNoUser := svc.Login(context.Background(), "ghost", "whatever")

	// 两种失败必须对外不可区分
	if !errors.Is(errWrongPass, ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", errWrongPass)
	}
	if !errors.Is(errNoUser, ErrInvalidCredentials) {
		t.Fatalf("unknown user: expected ErrInvalidCredentials, got %v", errNoUser)
	}
}

func TestAuthService_LoginSuccessIssuesToken(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewAuthService(repository.NewUserRepository(gormDB))

	hash, err := utils.HashPassword("rightpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username = \$1`).
		WithArgs("alice", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "nickname", "avatar_url", "created_at"}).
			AddRow(int64(1), "alice", hash, "小明", nil, time.Now()))

	user, token, err := svc.Login(context.Background(), "alice", "rightpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected user 1, got %d", user.ID)
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 1 {
		t.Fatalf("expected claims user 1, got %d", claims.UserID)
	}
	if claims.ID == "" {
		t.Fatal("expected token to carry a JTI")
	}
}
