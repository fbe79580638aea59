package service

import (
	"fmt"
	"math"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/util"
	"sort"
	"strings"
	"time"
)

// AnalyticsService 教师端统计：每次请求基于筛选后的记录全量计算，不做增量缓存
type AnalyticsService struct {
	SolutionStore repository.SolutionStore
	BaseDomain    string
	Clock         func() time.Time
}

func NewAnalyticsService(solutions repository.SolutionStore, baseDomain string) *AnalyticsService {
	return &AnalyticsService{
		SolutionStore: solutions,
		BaseDomain:    strings.TrimSuffix(baseDomain, "/"),
		Clock:         time.Now,
	}
}

type TopicCount struct {
	Topic      string  `json:"topic"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type QuestionSummary struct {
	Question  string    `json:"question"`
	Topic     string    `json:"topic"`
	CreatedAt time.Time `json:"createdAt"`
	URL       string    `json:"url"`
}

type StudentActivity struct {
	StudentName string            `json:"studentName"`
	Count       int               `json:"count"`
	Topics      []string          `json:"topics"`
	Questions   []QuestionSummary `json:"questions"`
}

type HourBucket struct {
	Hour  string `json:"hour"`
	Count int    `json:"count"`
}

type DailyStats struct {
	Date               string            `json:"date"`
	TotalQuestions     int               `json:"totalQuestions"`
	TopicDistribution  []TopicCount      `json:"topicDistribution"`
	StudentActivity    []StudentActivity `json:"studentActivity"`
	HourlyDistribution []HourBucket      `json:"hourlyDistribution"`
}

type TopicAnalysis struct {
	Topic             string         `json:"topic"`
	TotalQuestions    int            `json:"totalQuestions"`
	StudentCount      int            `json:"studentCount"`
	DailyCounts       map[string]int `json:"dailyCounts"`
	HourlyCounts      map[string]int `json:"hourlyCounts"`
	PeakHour          string         `json:"peakHour"`
	StudentEngagement map[string]int `json:"studentEngagement"`
	AvgPerActiveDay   float64        `json:"avgPerActiveDay"`
}

type StudentSearchResult struct {
	Total      int               `json:"total"`
	TotalPages int               `json:"totalPages"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Students   []StudentActivity `json:"students"`
}

// DashboardStats 单日统计：主题分布、学生活跃度、按小时分布
func (s *AnalyticsService) DashboardStats(date string) (*DailyStats, error) {
	start, end, err := dayRange(date)
	if err != nil {
		return nil, err
	}

	solutions, err := s.SolutionStore.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	return &DailyStats{
		Date:               date,
		TotalQuestions:     len(solutions),
		TopicDistribution:  topicDistribution(solutions),
		StudentActivity:    s.studentActivity(solutions),
		HourlyDistribution: hourlyDistribution(solutions),
	}, nil
}

// StudentQuestions 指定学生在指定日期的提问列表
func (s *AnalyticsService) StudentQuestions(studentName, date string) (*StudentActivity, error) {
	start, end, err := dayRange(date)
	if err != nil {
		return nil, err
	}

	solutions, err := s.SolutionStore.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	for _, activity := range s.studentActivity(solutions) {
		if activity.StudentName == studentName {
			return &activity, nil
		}
	}

	return &StudentActivity{StudentName: studentName, Topics: []string{}, Questions: []QuestionSummary{}}, nil
}

// AnalyzeTopics 跨天主题分析；topicFilter 非空时只保留该主题
func (s *AnalyticsService) AnalyzeTopics(days int, topicFilter string) ([]TopicAnalysis, error) {
	if days <= 0 {
		days = 7
	}

	end := s.Clock()
	start := end.AddDate(0, 0, -days)

	solutions, err := s.SolutionStore.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	byTopic := make(map[string][]model.Solution)
	var order []string
	for _, sol := range solutions {
		if topicFilter != "" && sol.Topic != topicFilter {
			continue
		}
		if _, seen := byTopic[sol.Topic]; !seen {
			order = append(order, sol.Topic)
		}
		byTopic[sol.Topic] = append(byTopic[sol.Topic], sol)
	}

	result := make([]TopicAnalysis, 0, len(order))
	for _, topic := range order {
		result = append(result, analyzeTopic(topic, byTopic[topic]))
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalQuestions > result[j].TotalQuestions
	})
	return result, nil
}

// SearchStudents 按关键字搜索提问内容，按学生分组后分页
func (s *AnalyticsService) SearchStudents(keyword string, days, page, limit int) (*StudentSearchResult, error) {
	if days <= 0 {
		days = 7
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = util.DefaultSearchPageSize
	}

	end := s.Clock()
	start := end.AddDate(0, 0, -days)

	solutions, err := s.SolutionStore.FindByDateRange(start, end)
	if err != nil {
		return nil, err
	}

	if keyword != "" {
		lowered := strings.ToLower(keyword)
		filtered := solutions[:0]
		for _, sol := range solutions {
			if strings.Contains(strings.ToLower(sol.Question), lowered) ||
				strings.Contains(strings.ToLower(sol.Answer), lowered) {
				filtered = append(filtered, sol)
			}
		}
		solutions = filtered
	}

	grouped := s.studentActivity(solutions)
	total := len(grouped)
	totalPages := (total + limit - 1) / limit

	startIdx := (page - 1) * limit
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + limit
	if endIdx > total {
		endIdx = total
	}

	return &StudentSearchResult{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		Limit:      limit,
		Students:   grouped[startIdx:endIdx],
	}, nil
}

func topicDistribution(solutions []model.Solution) []TopicCount {
	total := len(solutions)
	counts := make(map[string]int)
	var order []string
	for _, sol := range solutions {
		if _, seen := counts[sol.Topic]; !seen {
			order = append(order, sol.Topic)
		}
		counts[sol.Topic]++
	}

	result := make([]TopicCount, 0, len(order))
	for _, topic := range order {
		count := counts[topic]
		result = append(result, TopicCount{
			Topic:      topic,
			Count:      count,
			Percentage: round2(float64(count) / float64(total) * 100),
		})
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func (s *AnalyticsService) studentActivity(solutions []model.Solution) []StudentActivity {
	byName := make(map[string]*StudentActivity)
	var order []string
	for _, sol := range solutions {
		activity, ok := byName[sol.StudentName]
		if !ok {
			activity = &StudentActivity{StudentName: sol.StudentName}
			byName[sol.StudentName] = activity
			order = append(order, sol.StudentName)
		}
		activity.Count++
		activity.Topics = appendUnique(activity.Topics, sol.Topic)
		activity.Questions = append(activity.Questions, QuestionSummary{
			Question:  sol.Question,
			Topic:     sol.Topic,
			CreatedAt: sol.CreatedAt,
			URL:       fmt.Sprintf("%s/display/%s", s.BaseDomain, sol.ID),
		})
	}

	result := make([]StudentActivity, 0, len(order))
	for _, name := range order {
		activity := byName[name]
		sort.SliceStable(activity.Questions, func(i, j int) bool {
			return activity.Questions[i].CreatedAt.Before(activity.Questions[j].CreatedAt)
		})
		result = append(result, *activity)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})
	return result
}

func hourlyDistribution(solutions []model.Solution) []HourBucket {
	counts := make(map[string]int)
	for _, sol := range solutions {
		counts[sol.CreatedAt.Local().Format(util.HourFormat)]++
	}

	result := make([]HourBucket, 0, len(counts))
	for hour, count := range counts {
		result = append(result, HourBucket{Hour: hour, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Hour < result[j].Hour
	})
	return result
}

func analyzeTopic(topic string, solutions []model.Solution) TopicAnalysis {
	analysis := TopicAnalysis{
		Topic:             topic,
		TotalQuestions:    len(solutions),
		DailyCounts:       make(map[string]int),
		HourlyCounts:      make(map[string]int),
		StudentEngagement: make(map[string]int),
	}

	students := make(map[string]bool)
	var hourOrder []string
	for _, sol := range solutions {
		local := sol.CreatedAt.Local()
		day := local.Format(util.DateFormat)
		hour := local.Format(util.HourFormat)

		analysis.DailyCounts[day]++
		if _, seen := analysis.HourlyCounts[hour]; !seen {
			hourOrder = append(hourOrder, hour)
		}
		analysis.HourlyCounts[hour]++
		analysis.StudentEngagement[sol.StudentName]++
		students[sol.StudentName] = true
	}

	analysis.StudentCount = len(students)

	// 峰值小时：计数最大者，并列时取先出现的
	peakCount := 0
	for _, hour := range hourOrder {
		if analysis.HourlyCounts[hour] > peakCount {
			peakCount = analysis.HourlyCounts[hour]
			analysis.PeakHour = hour
		}
	}

	if activeDays := len(analysis.DailyCounts); activeDays > 0 {
		analysis.AvgPerActiveDay = round1(float64(analysis.TotalQuestions) / float64(activeDays))
	}

	return analysis
}

func dayRange(date string) (time.Time, time.Time, error) {
	day, err := time.ParseInLocation(util.DateFormat, date, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid date %q: %w", date, err)
	}
	return day, day.AddDate(0, 0, 1), nil
}

func appendUnique(items []string, item string) []string {
	for _, v := range items {
		if v == item {
			return items
		}
	}
	return append(items, item)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
