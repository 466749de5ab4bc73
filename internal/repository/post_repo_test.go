package repository

import (
	"testing"

	"redbook-go/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPostRepository_CreateWithImagesAssignsSortOrder(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewPostRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "posts"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(42)))
	// 图片行批量落库，sort_order 从 0 连续编号
	mock.ExpectQuery(`INSERT INTO "post_images"`).
		WithArgs(
			int64(42), "u0", 0, sqlmock.AnyArg(),
			int64(42), "u1", 1, sqlmock.AnyArg(),
			int64(42), "u2", 2, sqlmock.AnyArg(),
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)).AddRow(int64(2)).AddRow(int64(3)))
	mock.ExpectCommit()

	post := &model.Post{UserID: 7, Title: "标题", ImageURL: "u0", Category: "推荐"}
	images := []model.PostImage{{ImageURL: "u0"}, {ImageURL: "u1"}, {ImageURL: "u2"}}

	if err := repo.CreateWithImages(post, images); err != nil {
		t.Fatalf("CreateWithImages: %v", err)
	}

	for i, img := range images {
		if img.PostID != 42 {
			t.Fatalf("image %d: expected post id 42, got %d", i, img.PostID)
		}
		if img.SortOrder != i {
			t.Fatalf("image %d: expected sort order %d, got %d", i, i, img.SortOrder)
		}
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestPostRepository_ListFeedSearchIsCaseInsensitive(t *testing.T) {
	gormDB, mock, sqlDB := newMockDB(t)
	defer func() { _ = sqlDB.Close() }()

	repo := NewPostRepository(gormDB)

	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE is_private = \$1 AND \(title ILIKE \$2 OR content ILIKE \$3\) ORDER BY posts\.created_at DESC LIMIT \$4`).
		WithArgs(false, "%Sushi%", "%Sushi%", 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.ListFeed(20, 0, "Sushi", "", "posts.created_at DESC"); err != nil {
		t.Fatalf("ListFeed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}
