package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"redbook-go/internal/model"
)

// ESPostDoc ES 笔记文档结构
type ESPostDoc struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"user_id"`
	AuthorNickname string `json:"author_nickname"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Category       string `json:"category"`
	IsPrivate      bool   `json:"is_private"`
	LikesCount     int64  `json:"likes_count"`
	CreatedAt      string `json:"created_at"`
}

func postToESDoc(p *model.Post, authorNickname string) *ESPostDoc {
	return &ESPostDoc{
		ID:             p.ID,
		UserID:         p.UserID,
		AuthorNickname: authorNickname,
		Title:          p.Title,
		Content:        p.Content,
		Category:       p.Category,
		IsPrivate:      p.IsPrivate,
		LikesCount:     p.LikesCount,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
}

// SyncPost 同步单条笔记到 ES
func SyncPost(ctx context.Context, p *model.Post, authorNickname string) error {
	doc := postToESDoc(p, authorNickname)
	body, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	resp, err := Index(ctx, PostsIndexName(), fmt.Sprintf("%d", p.ID), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index post %d failed: %s", p.ID, resp.String())
	}
	return nil
}

// DeletePost 从 ES 删除笔记文档，文档不存在不算错误
func DeletePost(ctx context.Context, postID int64) error {
	resp, err := Delete(ctx, PostsIndexName(), fmt.Sprintf("%d", postID))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete post %d from index failed: %s", postID, resp.String())
	}
	return nil
}
