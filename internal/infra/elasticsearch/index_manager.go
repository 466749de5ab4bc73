package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"redbook-go/internal/config"
	"redbook-go/pkg/logger"

	"go.uber.org/zap"
)

// PostsIndexName 解析配置中的 posts 索引名
func PostsIndexName() string {
	cfg := config.GetElasticsearch()
	if name := cfg.Index["posts"]; name != "" {
		return name
	}
	return "posts"
}

// GetPostsIndexMapping 返回 posts 索引的 mapping（含 IK 中文分词）
func GetPostsIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"user_id": {"type": "long"},
				"author_nickname": {"type": "keyword"},
				"title": {
					"type": "text",
					"analyzer": "ik_max_word",
					"search_analyzer": "ik_smart",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 100}}
				},
				"content": {
					"type": "text",
					"analyzer": "ik_max_word",
					"search_analyzer": "ik_smart"
				},
				"category": {"type": "keyword"},
				"is_private": {"type": "boolean"},
				"likes_count": {"type": "long"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsurePostsIndex 确保 posts 索引存在，不存在则创建
func EnsurePostsIndex(ctx context.Context) error {
	indexName := PostsIndexName()

	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch posts index already exists", zap.String("index", indexName))
		return nil
	}

	body := bytes.NewReader([]byte(GetPostsIndexMapping()))
	resp, err := IndicesCreate(ctx, indexName, body)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch posts index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsurePostsIndex(ctx)
}
