package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"redbook-go/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

func newPostService(t *testing.T) (*PostService, sqlmock.Sqlmock, func()) {
	t.Helper()
	gormDB, mock, sqlDB := newMockDB(t)
	svc := NewPostService(
		repository.NewPostRepository(gormDB),
		repository.NewLikeRepository(gormDB),
		repository.NewCollectionRepository(gormDB),
		NewSearchService(),
	)
	return svc, mock, func() { _ = sqlDB.Close() }
}

func TestPostService_CreateValidation(t *testing.T) {
	svc, _, cleanup := newPostService(t)
	defer cleanup()

	if _, err := svc.Create(context.Background(), 7, "  ", "", "", false, nil, nil); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if _, err := svc.Create(context.Background(), 7, "标题", "", "", false, nil, nil); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("expected ErrImageRequired, got %v", err)
	}

	// 只传视频不传图片同样缺封面，必须拒绝
	video := &UploadFile{Filename: "clip.mp4", Data: []byte{0x00, 0x01}}
	if _, err := svc.Create(context.Background(), 7, "标题", "", "", false, nil, video); !errors.Is(err, ErrImageRequired) {
		t.Fatalf("video-only post: expected ErrImageRequired, got %v", err)
	}
}

func TestBuildPostCoverIsFirstImage(t *testing.T) {
	urls := []string{
		"http://127.0.0.1:9000/redbook-images/posts/a.jpg",
		"http://127.0.0.1:9000/redbook-images/posts/b.jpg",
		"http://127.0.0.1:9000/redbook-images/posts/c.jpg",
	}

	post, rows := buildPost(7, "标题", "正文", "推荐", false, urls, nil)

	if post.ImageURL != urls[0] {
		t.Fatalf("expected cover %s, got %s", urls[0], post.ImageURL)
	}
	if len(rows) != len(urls) {
		t.Fatalf("expected %d image rows, got %d", len(urls), len(rows))
	}
	for i, row := range rows {
		if row.ImageURL != urls[i] {
			t.Fatalf("row %d: expected %s, got %s", i, urls[i], row.ImageURL)
		}
	}
}

func TestPostService_SetVisibilityNotOwner(t *testing.T) {
	svc, mock, cleanup := newPostService(t)
	defer cleanup()

	// 笔记属于 42，请求者是 7
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(42), int64(42), "别人的笔记", "", "", nil, "推荐", false, int64(0), time.Now()))

	if err := svc.SetVisibility(context.Background(), 42, 7, true); !errors.Is(err, ErrNoPermission) {
		t.Fatalf("expected ErrNoPermission, got %v", err)
	}
}

func TestPostService_DetailPrivatePostOfOther(t *testing.T) {
	svc, mock, cleanup := newPostService(t)
	defer cleanup()

	userColumns := []string{"id", "username", "password", "nickname", "avatar_url", "created_at"}

	// Preload("User") 先查笔记再查作者
	mock.ExpectQuery(`SELECT \* FROM "posts" WHERE id = \$1`).
		WithArgs(int64(42), 1).
		WillReturnRows(sqlmock.NewRows(postColumns).
			AddRow(int64(42), int64(99), "私密笔记", "", "", nil, "推荐", true, int64(0), time.Now()))
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE "users"\."id" = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(int64(99), "owner", "hash", "作者", nil, time.Now()))

	if _, err := svc.Detail(context.Background(), 42, 7); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestObjectNameFromURL(t *testing.T) {
	tests := []struct {
		url    string
		bucket string
		want   string
		ok     bool
	}{
		{"http://127.0.0.1:9000/redbook-images/posts/abc.jpg", "redbook-images", "posts/abc.jpg", true},
		{"https://cdn.example.com/redbook-videos/videos/v.mp4", "redbook-videos", "videos/v.mp4", true},
		{"http://127.0.0.1:9000/other-bucket/posts/abc.jpg", "redbook-images", "", false},
		{"http://127.0.0.1:9000/redbook-images/", "redbook-images", "", false},
	}

	for _, tt := range tests {
		got, ok := objectNameFromURL(tt.bucket, tt.url)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("objectNameFromURL(%q, %q) = (%q, %v), want (%q, %v)",
				tt.bucket, tt.url, got, ok, tt.want, tt.ok)
		}
	}
}
