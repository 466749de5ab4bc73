package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestMessageRepository_MarkRead(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewMessageRepository(gormDB)

	// 只翻转对端发给自己的未读消息
	mock.ExpectExec(`UPDATE "messages" SET "is_read"=\$1 WHERE sender_id = \$2 AND receiver_id = \$3 AND is_read = \$4`).
		WithArgs(true, int64(5), int64(9), false).
		WillReturnResult(sqlmock.NewResult(0, 3))

	if err := repo.MarkRead(5, 9); err != nil {
		t.Fatalf("MarkRead: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestMessageRepository_ListBetweenIsDescending(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewMessageRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "sender_id", "receiver_id", "content", "is_read", "created_at"}).
		AddRow(int64(2), int64(1), int64(9), "后发的", false, now).
		AddRow(int64(1), int64(9), int64(1), "先发的", true, now.Add(-time.Minute))

	mock.ExpectQuery(`SELECT \* FROM "messages" WHERE \(sender_id = \$1 AND receiver_id = \$2\) OR \(sender_id = \$3 AND receiver_id = \$4\) ORDER BY created_at DESC`).
		WithArgs(int64(1), int64(9), int64(9), int64(1), 20).
		WillReturnRows(rows)

	messages, err := repo.ListBetween(1, 9, 20, 0)
	if err != nil {
		t.Fatalf("ListBetween: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].ID != 2 || messages[1].ID != 1 {
		t.Fatalf("expected newest-first order, got %d,%d", messages[0].ID, messages[1].ID)
	}
}

func TestMessageRepository_CountUnreadFrom(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewMessageRepository(gormDB)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "messages" WHERE sender_id = \$1 AND receiver_id = \$2 AND is_read = \$3`).
		WithArgs(int64(5), int64(9), false).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(4)))

	count, err := repo.CountUnreadFrom(5, 9)
	if err != nil {
		t.Fatalf("CountUnreadFrom: %v", err)
	}
	if count != 4 {
		t.Fatalf("expected 4, got %d", count)
	}
}
