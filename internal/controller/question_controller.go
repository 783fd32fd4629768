package controller

import (
	"errors"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/service"
	"smart_recall_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// QuestionRequest 创建题目请求
// swagger:model QuestionRequest
type QuestionRequest struct {
	Prompt        string   `json:"prompt" binding:"required"`
	Kind          string   `json:"kind" binding:"required"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Order         int      `json:"order"`
}

// Create godoc
// @Summary 新增题目
// @Description 在指定内容下新增一道题目
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Param   body body QuestionRequest true "题目信息"
// @Success 201 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/questions [post]
func (c *QuestionController) Create(ctx *gin.Context) {
	var req QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.CreateQuestion(
		claims.UserID, ctx.Param("id"),
		req.Prompt, model.QuestionKind(req.Kind), req.Options,
		req.CorrectAnswer, req.Explanation, req.Order,
	)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, question)
}

// List godoc
// @Summary 题目列表
// @Description 查询内容下的全部题目
// @Tags 题目
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Success 200 {object} util.Response{data=[]model.Question}
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/questions [get]
func (c *QuestionController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	questions, err := c.QuestionService.ListQuestions(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, questions)
}

// UpdateQuestionRequest 更新题目请求，空字段不修改
type UpdateQuestionRequest struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
	Order         *int     `json:"order"`
}

// Update godoc
// @Summary 更新题目
// @Tags 题目
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Param   qid path string true "题目 ID"
// @Param   body body UpdateQuestionRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/contents/{id}/questions/{qid} [put]
func (c *QuestionController) Update(ctx *gin.Context) {
	var req UpdateQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	question, err := c.QuestionService.UpdateQuestion(
		claims.UserID, ctx.Param("id"), ctx.Param("qid"),
		req.Prompt, req.Options, req.CorrectAnswer, req.Explanation, req.Order,
	)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) || errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, question)
}

// Delete godoc
// @Summary 删除题目
// @Tags 题目
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Param   qid path string true "题目 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "题目不存在"
// @Router /api/contents/{id}/questions/{qid} [delete]
func (c *QuestionController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.QuestionService.DeleteQuestion(claims.UserID, ctx.Param("id"), ctx.Param("qid")); err != nil {
		if errors.Is(err, util.ErrContentNotFound) || errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}
