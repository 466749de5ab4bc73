package service

import "testing"

func TestOrderingFor(t *testing.T) {
	tests := []struct {
		name     string
		search   string
		category string
		want     string
	}{
		{"默认推荐流走随机", "", "", "RANDOM()"},
		{"显式推荐分类走随机", "", "推荐", "RANDOM()"},
		{"具体分类按最新", "", "美食", "posts.created_at DESC"},
		{"搜索结果按最新", "火锅", "", "posts.created_at DESC"},
		{"搜索加分类按最新", "火锅", "推荐", "posts.created_at DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OrderingFor(tt.search, tt.category).OrderClause()
			if got != tt.want {
				t.Fatalf("OrderingFor(%q, %q) = %q, want %q", tt.search, tt.category, got, tt.want)
			}
		})
	}
}
