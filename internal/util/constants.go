package util

const (
	DateFormat = "2006-01-02"
	TimeFormat = "2006-01-02 15:04:05"
	HourFormat = "15:00"
)

// 提取兜底值
const (
	DefaultSubject   = "數學"
	AnonymousStudent = "匿名"
	UnknownTopic     = "其他"
)

const (
	SolutionTTLDays       = 30
	DefaultSearchPageSize = 20
)
