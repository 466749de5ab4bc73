package service

// FeedOrdering 笔记流排序策略
type FeedOrdering interface {
	OrderClause() string
}

// RandomOrdering 随机排序，推荐流每次刷新看到不同内容
type RandomOrdering struct{}

func (RandomOrdering) OrderClause() string {
	return "RANDOM()"
}

// NewestOrdering 按发布时间倒序
type NewestOrdering struct{}

func (NewestOrdering) OrderClause() string {
	return "posts.created_at DESC"
}

// OrderingFor 选择排序策略：无搜索词的推荐流走随机，其余按最新
func OrderingFor(search, category string) FeedOrdering {
	if search == "" && (category == "" || category == "推荐") {
		return RandomOrdering{}
	}
	return NewestOrdering{}
}
