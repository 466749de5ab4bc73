package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"redbook-go/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newInteractionService(t *testing.T) (*InteractionService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gormDB, mock, sqlDB := newMockDB(t)
	svc := NewInteractionService(
		repository.NewLikeRepository(gormDB),
		repository.NewCollectionRepository(gormDB),
		repository.NewCommentLikeRepository(gormDB),
		repository.NewCommentRepository(gormDB),
		repository.NewPostRepository(gormDB),
		repository.NewUserRepository(gormDB),
		repository.NewNotificationRepository(gormDB),
	)
	return svc, mock, func() { _ = sqlDB.Close() }
}

func expectPostRow(mock sqlmock.Sqlmock, postID, authorID int64, isPrivate bool, likesCount int64) {
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1`).
		WithArgs(postID, 1).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(postID, authorID, "一篇笔记", "", "", nil, "推荐", isPrivate, likesCount, time.Now()))
}

func TestInteractionService_ToggleLikeCreatesAndNotifies(t *testing.T) {
	svc, mock, cleanup := newInteractionService(t)
	defer cleanup()

	// 笔记存在，作者是 42，点赞者是 7
	expectPostRow(mock, 42, 42, false, 0)

	// 未点赞过
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	// 插入点赞并同步计数
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE "posts" SET "likes_count"=likes_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// 给作者写通知：先查点赞者昵称，再插入通知
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id = \$1`).
		WithArgs(int64(7), 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "password", "nickname", "avatar_url", "created_at"}).
			AddRow(int64(7), "alice", "hash", "小明", nil, time.Now()))
	mock.ExpectQuery(`INSERT INTO "notifications"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	// 重新读取计数
	expectPostRow(mock, 42, 42, false, 1)

	result, err := svc.ToggleLike(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !result.Active {
		t.Fatal("expected like to be active")
	}
	if result.Count != 1 {
		t.Fatalf("expected count 1, got %d", result.Count)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestInteractionService_ToggleLikeRemovesExisting(t *testing.T) {
	svc, mock, cleanup := newInteractionService(t)
	defer cleanup()

	expectPostRow(mock, 42, 42, false, 1)

	// 已点赞过，这次取消
	mock.ExpectQuery(`SELECT count\(\*\) FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "likes_count"=GREATEST\(likes_count - \$1, 0\) WHERE id = \$2`).
		WithArgs(1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	expectPostRow(mock, 42, 42, false, 0)

	result, err := svc.ToggleLike(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if result.Active {
		t.Fatal("expected like to be removed")
	}
	if result.Count != 0 {
		t.Fatalf("expected count 0, got %d", result.Count)
	}
	// 取消点赞不应产生任何通知写入
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestInteractionService_ToggleLikePrivatePostOfOther(t *testing.T) {
	svc, mock, cleanup := newInteractionService(t)
	defer cleanup()

	expectPostRow(mock, 42, 99, true, 0)

	if _, err := svc.ToggleLike(context.Background(), 7, 42); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestInteractionService_ToggleCollectionRoundTrip(t *testing.T) {
	svc, mock, cleanup := newInteractionService(t)
	defer cleanup()

	// 收藏
	expectPostRow(mock, 42, 42, false, 0)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "collections" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectQuery(`INSERT INTO "collections"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	result, err := svc.ToggleCollection(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("ToggleCollection: %v", err)
	}
	if !result.Active {
		t.Fatal("expected collection to be active")
	}

	// 取消收藏
	expectPostRow(mock, 42, 42, false, 0)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "collections" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectExec(`DELETE FROM "collections" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err = svc.ToggleCollection(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("ToggleCollection: %v", err)
	}
	if result.Active {
		t.Fatal("expected collection to be removed")
	}
}
