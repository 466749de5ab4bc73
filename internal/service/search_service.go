package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"redbook-go/internal/infra/elasticsearch"
)

// SearchService 基于 ES 的笔记全文检索，ES 不可用时由调用方降级到 DB
type SearchService struct{}

func NewSearchService() *SearchService {
	return &SearchService{}
}

// Available ES 是否可用
func (s *SearchService) Available() bool {
	return elasticsearch.Available()
}

type esSearchResult struct {
	Hits struct {
		Hits []struct {
			Source struct {
				ID int64 `json:"id"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// SearchPostIDs 按关键词检索公开笔记，返回按相关度排序的笔记 ID
func (s *SearchService) SearchPostIDs(ctx context.Context, keyword, category string, limit, offset int) ([]int64, error) {
	filters := []map[string]interface{}{
		{"term": map[string]interface{}{"is_private": false}},
	}
	if category != "" && category != "推荐" {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{"category": category},
		})
	}

	query := map[string]interface{}{
		"from": offset,
		"size": limit,
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":  keyword,
						"fields": []string{"title^2", "content"},
					},
				},
				"filter": filters,
			},
		},
	}

	body, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("marshal search query: %w", err)
	}

	resp, err := elasticsearch.Search(ctx, elasticsearch.PostsIndexName(), strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("search posts failed: %s", resp.String())
	}

	var result esSearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search result: %w", err)
	}

	ids := make([]int64, 0, len(result.Hits.Hits))
	for _, hit := range result.Hits.Hits {
		ids = append(ids, hit.Source.ID)
	}
	return ids, nil
}
