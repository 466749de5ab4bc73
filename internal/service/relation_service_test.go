package service

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"redbook-go/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRelationService_FollowSelf(t *testing.T) {
	gormDB, _, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewRelationService(repository.NewFollowRepository(gormDB), repository.NewUserRepository(gormDB))

	if err := svc.Follow(context.Background(), 7, 7); !errors.Is(err, ErrSelfFollow) {
		t.Fatalf("expected ErrSelfFollow, got %v", err)
	}
}

func TestRelationService_FollowMissingTarget(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewRelationService(repository.NewFollowRepository(gormDB), repository.NewUserRepository(gormDB))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	if err := svc.Follow(context.Background(), 7, 99); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRelationService_FollowAlreadyFollowing(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewRelationService(repository.NewFollowRepository(gormDB), repository.NewUserRepository(gormDB))

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1 AND followed_id = $2`)).
		WithArgs(int64(7), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	if err := svc.Follow(context.Background(), 7, 8); !errors.Is(err, ErrAlreadyFollowing) {
		t.Fatalf("expected ErrAlreadyFollowing, got %v", err)
	}
}

func TestRelationService_UnfollowNotFollowingIsIdempotent(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewRelationService(repository.NewFollowRepository(gormDB), repository.NewUserRepository(gormDB))

	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = \$1 AND followed_id = \$2`).
		WithArgs(int64(7), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := svc.Unfollow(context.Background(), 7, 8); err != nil {
		t.Fatalf("Unfollow should be idempotent, got %v", err)
	}
}

func TestRelationService_FollowRoundTrip(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	svc := NewRelationService(repository.NewFollowRepository(gormDB), repository.NewUserRepository(gormDB))

	// 关注
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "follows" WHERE follower_id = $1 AND followed_id = $2`)).
		WithArgs(int64(7), int64(8)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`INSERT INTO "follows"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	if err := svc.Follow(context.Background(), 7, 8); err != nil {
		t.Fatalf("Follow: %v", err)
	}

	// 取消关注
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id = \$1 AND followed_id = \$2`).
		WithArgs(int64(7), int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := svc.Unfollow(context.Background(), 7, 8); err != nil {
		t.Fatalf("Unfollow: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
