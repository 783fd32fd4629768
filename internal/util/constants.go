package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
)

// 会话摘要缓存
const (
	SummaryCachePrefix = "session:summary:"
	SummaryCacheTTLMin = 30
)
