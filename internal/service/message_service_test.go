package service

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"redbook-go/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMessageService(t *testing.T) (*MessageService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gormDB, mock, sqlDB := newMockDB(t)
	svc := NewMessageService(
		repository.NewMessageRepository(gormDB),
		repository.NewUserRepository(gormDB),
		repository.NewNotificationRepository(gormDB),
	)
	return svc, mock, func() { _ = sqlDB.Close() }
}

func TestMessageService_SendValidation(t *testing.T) {
	svc, _, cleanup := newMessageService(t)
	defer cleanup()

	if _, err := svc.Send(context.Background(), 7, 7, "你好"); !errors.Is(err, ErrSelfMessage) {
		t.Fatalf("expected ErrSelfMessage, got %v", err)
	}
	if _, err := svc.Send(context.Background(), 7, 8, "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestMessageService_SendMissingReceiver(t *testing.T) {
	svc, mock, cleanup := newMessageService(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "users" WHERE id = $1`)).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	if _, err := svc.Send(context.Background(), 7, 99, "你好"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestMessageService_HistoryReturnsAscending(t *testing.T) {
	svc, mock, cleanup := newMessageService(t)
	defer cleanup()

	now := time.Now()
	// 仓库按时间倒序取最近一页
	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "content", "is_read", "created_at"}).
		AddRow(int64(3), int64(7), int64(8), "第三条", false, now).
		AddRow(int64(2), int64(8), int64(7), "第二条", true, now.Add(-time.Minute)).
		AddRow(int64(1), int64(7), int64(8), "第一条", true, now.Add(-2*time.Minute))

	mock.ExpectQuery(`SELECT \* FROM "messages"`).
		WithArgs(int64(7), int64(8), int64(8), int64(7), 20).
		WillReturnRows(rows)

	messages, err := svc.History(context.Background(), 7, 8, 20, 0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(messages))
	}
	// 展示顺序必须翻转为升序
	for i, wantID := range []int64{1, 2, 3} {
		if messages[i].ID != wantID {
			t.Fatalf("position %d: expected id %d, got %d", i, wantID, messages[i].ID)
		}
	}
}

func TestMessageService_UnreadSummaryCombinesSources(t *testing.T) {
	svc, mock, cleanup := newMessageService(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "messages" WHERE receiver_id = \$1 AND is_read = \$2`).
		WithArgs(int64(7), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "notifications" WHERE receiver_id = \$1 AND is_read = \$2`).
		WithArgs(int64(7), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2)))

	summary, err := svc.UnreadSummary(context.Background(), 7)
	if err != nil {
		t.Fatalf("UnreadSummary: %v", err)
	}
	if summary.Messages != 3 || summary.Notifications != 2 || summary.Total != 5 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}
