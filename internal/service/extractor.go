package service

import (
	"math_tutor_backend/internal/util"
	"regexp"
	"strings"
	"unicode/utf8"
)

// ExtractedFields 从解答文本推断出的结构化字段
type ExtractedFields struct {
	StudentName string `json:"studentName"`
	Subject     string `json:"subject"`
	Topic       string `json:"topic"`
}

// 标注行格式：键 + 全角或半角冒号 + 行内剩余内容，简繁体都接受
var (
	studentNamePattern = regexp.MustCompile(`(?m)^\s*(?:學生名稱|学生名称)\s*[:：]\s*(.+)$`)
	subjectPattern     = regexp.MustCompile(`(?m)^\s*(?:學科|学科)\s*[:：]\s*(.+)$`)
	topicPattern       = regexp.MustCompile(`(?m)^\s*(?:主題|主题)\s*[:：]\s*(.+)$`)
)

// 标注值超过阈值视为不可靠（整行跑偏把无关内容带进来了），按未标注处理
const (
	maxNameRunes  = 30
	maxTopicRunes = 50
)

// topicRule 关键词推断规则，按优先级排列，命中即停
type topicRule struct {
	Topic    string
	Keywords []string
}

var topicRules = []topicRule{
	{Topic: "三角形", Keywords: []string{"三角形", "勾股", "直角"}},
	{Topic: "一次函數", Keywords: []string{"一次函數", "一次函数", "斜率", "直線方程"}},
	{Topic: "二次函數", Keywords: []string{"二次函數", "二次函数", "拋物線", "頂點", "配方"}},
	{Topic: "坐標平面", Keywords: []string{"坐標", "座標", "象限"}},
	{Topic: "機率統計", Keywords: []string{"機率", "統計", "平均數", "中位數"}},
}

// ExtractFields 对解答文本做纯函数式的字段提取，相同输入永远得到相同结果
func ExtractFields(answer string) ExtractedFields {
	fields := ExtractedFields{
		StudentName: labeledValue(studentNamePattern, answer, maxNameRunes),
		Subject:     labeledValue(subjectPattern, answer, 0),
		Topic:       labeledValue(topicPattern, answer, maxTopicRunes),
	}

	if fields.Subject == "" {
		fields.Subject = util.DefaultSubject
	}
	if fields.StudentName == "" {
		fields.StudentName = util.AnonymousStudent
	}
	if fields.Topic == "" {
		fields.Topic = inferTopic(answer)
	}

	return fields
}

// labeledValue 提取标注行的值；maxRunes 大于 0 时超长值被丢弃
func labeledValue(pattern *regexp.Regexp, text string, maxRunes int) string {
	match := pattern.FindStringSubmatch(text)
	if match == nil {
		return ""
	}
	value := strings.TrimSpace(match[1])
	if maxRunes > 0 && utf8.RuneCountInString(value) > maxRunes {
		return ""
	}
	return value
}

// inferTopic 按规则表顺序扫描关键词，第一条命中的规则生效
func inferTopic(text string) string {
	for _, rule := range topicRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule.Topic
			}
		}
	}
	return util.UnknownTopic
}
