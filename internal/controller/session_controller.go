package controller

import (
	"errors"
	"smart_recall_backend/internal/service"
	"smart_recall_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
}

func NewSessionController(sessionService *service.SessionService) *SessionController {
	return &SessionController{SessionService: sessionService}
}

// StartSessionRequest 开始会话请求
// swagger:model StartSessionRequest
type StartSessionRequest struct {
	ContentID string `json:"contentId" binding:"required"`
}

// Start godoc
// @Summary 开始答题会话
// @Description 基于指定内容创建一次答题会话，返回会话与第一题
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body StartSessionRequest true "内容 ID"
// @Success 201 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "内容没有题目"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/sessions [post]
func (c *SessionController) Start(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	session, first, err := c.SessionService.StartSession(claims.UserID, req.ContentID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrContentNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrEmptyQuestionSet):
			util.BadRequest(ctx, "该内容下没有题目，无法开始会话")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, gin.H{
		"session":  session,
		"question": sanitizeQuestion(first),
	})
}

// Get godoc
// @Summary 查询会话
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=model.LearningSession}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	session, err := c.SessionService.GetSession(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, session)
}

// Current godoc
// @Summary 当前待答题目
// @Description 返回会话当前待答的题目；全部答完时返回 done=true
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/sessions/{id}/current [get]
func (c *SessionController) Current(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	question, err := c.SessionService.GetCurrentQuestion(claims.UserID, ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	if question == nil {
		util.Success(ctx, gin.H{"done": true})
		return
	}
	util.Success(ctx, gin.H{"done": false, "question": sanitizeQuestion(question)})
}

// SubmitAnswerRequest 提交作答请求
// swagger:model SubmitAnswerRequest
type SubmitAnswerRequest struct {
	Answer           string `json:"answer"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
}

// Submit godoc
// @Summary 提交作答
// @Description 提交当前题目的作答，返回评分结果与会话进度
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Param   body body SubmitAnswerRequest true "作答"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话已完成"
// @Router /api/sessions/{id}/answers [post]
func (c *SessionController) Submit(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	result, session, err := c.SessionService.SubmitAnswer(ctx.Request.Context(), claims.UserID, ctx.Param("id"), req.Answer, req.TimeSpentSeconds)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionAlreadyCompleted):
			util.Conflict(ctx, "会话已完成，无法继续提交")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, gin.H{
		"result":  result,
		"session": session,
	})
}

// Complete godoc
// @Summary 完成会话
// @Description 所有题目答完后完成会话并返回统计摘要；重复调用幂等
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=model.DetailedResults}
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "尚有未答题目"
// @Router /api/sessions/{id}/complete [post]
func (c *SessionController) Complete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.SessionService.CompleteSession(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionNotCompleted):
			util.Conflict(ctx, "尚有未答题目，无法完成会话")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}

// Summary godoc
// @Summary 会话统计摘要
// @Description 已完成会话的得分、等级、题型分布与学习建议
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "会话 ID"
// @Success 200 {object} util.Response{data=model.DetailedResults}
// @Failure 404 {object} util.Response "会话不存在"
// @Failure 409 {object} util.Response "会话尚未完成"
// @Router /api/sessions/{id}/summary [get]
func (c *SessionController) Summary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.SessionService.GetSummary(ctx.Request.Context(), claims.UserID, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSessionNotCompleted):
			util.Conflict(ctx, "会话尚未完成")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}

// List godoc
// @Summary 会话列表
// @Description 分页查询当前用户的答题会话
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(10)
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/sessions [get]
func (c *SessionController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	claims := util.GetUserFromContext(ctx)
	rows, total, err := c.SessionService.ListSessions(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessPage(ctx, rows, total, page, limit)
}

// Stats godoc
// @Summary 用户学习统计
// @Description 用户维度的会话数、完成数与平均分
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=repository.UserSessionStats}
// @Router /api/sessions/stats [get]
func (c *SessionController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	stats, err := c.SessionService.GetUserStats(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
