package controller

import (
	"fmt"
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/internal/util"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dashboardLinkTTL = 24 * time.Hour

type TeacherController struct {
	AnalyticsService *service.AnalyticsService
	Config           *config.Config
}

func NewTeacherController(analyticsService *service.AnalyticsService, cfg *config.Config) *TeacherController {
	return &TeacherController{
		AnalyticsService: analyticsService,
		Config:           cfg,
	}
}

// @Summary 当日仪表盘统计
// @Description 指定日期的主题分布、学生活跃度与按小时分布
// @Tags 教师
// @Produce json
// @Router /api/teacher/dashboard/{date} [get]
func (c *TeacherController) Dashboard(ctx *gin.Context) {
	date := ctx.Param("date")

	stats, err := c.AnalyticsService.DashboardStats(date)
	if err != nil {
		if strings.Contains(err.Error(), "invalid date") {
			util.BadRequest(ctx, "invalid date, expected YYYY-MM-DD")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, stats)
}

// @Summary 学生当日提问列表
// @Tags 教师
// @Produce json
// @Router /api/teacher/student/{studentName}/{date} [get]
func (c *TeacherController) StudentQuestions(ctx *gin.Context) {
	studentName := ctx.Param("studentName")
	date := ctx.Param("date")

	activity, err := c.AnalyticsService.StudentQuestions(studentName, date)
	if err != nil {
		if strings.Contains(err.Error(), "invalid date") {
			util.BadRequest(ctx, "invalid date, expected YYYY-MM-DD")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, activity)
}

// @Summary 跨天主题分析
// @Tags 教师
// @Produce json
// @Router /api/teacher/topic-analysis/{teacherId} [get]
func (c *TeacherController) TopicAnalysis(ctx *gin.Context) {
	days := parseDays(ctx.Query("dateRange"), 7)
	topic := ctx.Query("topic")

	analysis, err := c.AnalyticsService.AnalyzeTopics(days, topic)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, analysis)
}

// @Summary 学生搜索
// @Description 按关键字搜索提问内容，按学生分组分页返回
// @Tags 教师
// @Produce json
// @Router /api/teacher/student-search/{teacherId} [get]
func (c *TeacherController) StudentSearch(ctx *gin.Context) {
	keyword := ctx.Query("studentName")
	days := parseDays(ctx.Query("dateRange"), 7)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(util.DefaultSearchPageSize)))

	result, err := c.AnalyticsService.SearchStudents(keyword, days, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// @Summary 签发仪表盘链接
// @Description 返回教师仪表盘页面地址，配置签名密钥时附带短期令牌
// @Tags 教师
// @Produce json
// @Router /api/teacher/dashboard-link/{teacherId} [post]
func (c *TeacherController) DashboardLink(ctx *gin.Context) {
	c.issuePageLink(ctx, "dashboard/today")
}

// @Summary 签发学生搜尋页链接
// @Tags 教师
// @Produce json
// @Router /api/teacher/student-search-link/{teacherId} [post]
func (c *TeacherController) StudentSearchLink(ctx *gin.Context) {
	c.issuePageLink(ctx, "student-search")
}

// @Summary 签发主题分析页链接
// @Tags 教师
// @Produce json
// @Router /api/teacher/topic-analysis-link/{teacherId} [post]
func (c *TeacherController) TopicAnalysisLink(ctx *gin.Context) {
	c.issuePageLink(ctx, "topic-analysis")
}

func (c *TeacherController) issuePageLink(ctx *gin.Context, page string) {
	teacherID := ctx.Param("teacherId")
	baseDomain := strings.TrimSuffix(c.Config.Share.BaseDomain, "/")

	url := fmt.Sprintf("%s/teacher/%s/%s", baseDomain, page, teacherID)

	if secret := c.Config.Share.SigningSecret; secret != "" {
		token, err := util.GenerateDashboardToken(teacherID, secret, dashboardLinkTTL)
		if err != nil {
			util.LogInternalError(ctx, err)
			return
		}
		url = fmt.Sprintf("%s?token=%s", url, token)
	}

	util.Success(ctx, gin.H{"dashboardUrl": url})
}

// DashboardPage 教师仪表盘 HTML 页面
func (c *TeacherController) DashboardPage(ctx *gin.Context) {
	today := time.Now().Format(util.DateFormat)

	stats, err := c.AnalyticsService.DashboardStats(today)
	if err != nil {
		ctx.HTML(http.StatusInternalServerError, "not_found.html", gin.H{"Title": "服務暫時不可用"})
		return
	}

	ctx.HTML(http.StatusOK, "dashboard.html", gin.H{
		"TeacherID": ctx.Param("teacherId"),
		"Stats":     stats,
	})
}

// StudentSearchPage 学生搜索 HTML 页面
func (c *TeacherController) StudentSearchPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "student_search.html", gin.H{
		"TeacherID": ctx.Param("teacherId"),
	})
}

// TopicAnalysisPage 主题分析 HTML 页面
func (c *TeacherController) TopicAnalysisPage(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "topic_analysis.html", gin.H{
		"TeacherID": ctx.Param("teacherId"),
	})
}

// parseDays 解析 dateRange 查询参数，接受 "7"、"7days"、"7d" 这类写法
func parseDays(raw string, fallback int) int {
	raw = strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(raw), "days"), "d")
	if raw == "" {
		return fallback
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days <= 0 {
		return fallback
	}
	return days
}
