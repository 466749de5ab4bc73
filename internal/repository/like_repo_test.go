package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestLikeRepository_InsertBumpsCounter(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewLikeRepository(gormDB)

	// 点赞插入和计数更新必须在同一个事务里
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "likes"`).
		WithArgs(int64(7), int64(42), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))
	mock.ExpectExec(`UPDATE "posts" SET "likes_count"=likes_count \+ \$1 WHERE id = \$2`).
		WithArgs(1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Insert(7, 42); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestLikeRepository_RemoveMissingRowIsNoop(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewLikeRepository(gormDB)

	// 没有删掉任何行时不能动计数
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	removed, err := repo.Remove(7, 42)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if removed {
		t.Fatal("expected removed=false for missing like row")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestLikeRepository_RemoveDecrementsCounter(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewLikeRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id = \$1 AND post_id = \$2`).
		WithArgs(int64(7), int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "posts" SET "likes_count"=GREATEST\(likes_count - \$1, 0\) WHERE id = \$2`).
		WithArgs(1, int64(42)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	removed, err := repo.Remove(7, 42)
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !removed {
		t.Fatal("expected removed=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
