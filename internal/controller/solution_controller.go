package controller

import (
	"errors"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/internal/util"
	"math_tutor_backend/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SolutionController struct {
	SolutionService *service.SolutionService
}

func NewSolutionController(solutionService *service.SolutionService) *SolutionController {
	return &SolutionController{SolutionService: solutionService}
}

type createSolutionRequest struct {
	Question       string `json:"question"`
	Answer         string `json:"answer"`
	ExternalUserID string `json:"externalUserId"`
}

// @Summary 创建解答记录
// @Description 保存题目与解答并返回分享链接
// @Tags 解答
// @Accept json
// @Produce json
// @Router /api/create-solution [post]
func (c *SolutionController) CreateSolution(ctx *gin.Context) {
	var req createSolutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "question and answer are required",
		})
		return
	}

	result, err := c.SolutionService.CreateSolution(req.Question, req.Answer, req.ExternalUserID)
	if err != nil {
		if errors.Is(err, util.ErrEmptyQuestion) || errors.Is(err, util.ErrEmptyAnswer) {
			ctx.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": err.Error(),
			})
			return
		}
		logger.Log.Error("create solution failed", zap.Error(err))
		ctx.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      result.ID,
		"url":     result.URL,
		"message": "解答已保存",
	})
}

// @Summary 解答展示页
// @Description 渲染解答 HTML 页面，未知或已过期的链接显示 404 页
// @Tags 解答
// @Produce html
// @Router /display/{id} [get]
func (c *SolutionController) Display(ctx *gin.Context) {
	id := ctx.Param("id")

	solution, err := c.SolutionService.GetSolution(id)
	if err != nil {
		if util.IsNotFound(err) {
			ctx.HTML(http.StatusNotFound, "not_found.html", gin.H{
				"Title": "找不到解答",
			})
			return
		}
		logger.Log.Error("display solution failed", zap.String("id", id), zap.Error(err))
		ctx.HTML(http.StatusInternalServerError, "not_found.html", gin.H{
			"Title": "服務暫時不可用",
		})
		return
	}

	ctx.HTML(http.StatusOK, "solution.html", gin.H{
		"Solution": solution,
	})
}
