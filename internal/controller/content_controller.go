package controller

import (
	"errors"
	"smart_recall_backend/internal/service"
	"smart_recall_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// ContentRequest 创建/更新内容请求
// swagger:model ContentRequest
type ContentRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Body        string `json:"body" binding:"required"`
}

// Create godoc
// @Summary 创建学习内容
// @Description 创建一份学习内容，正文将作为 AI 评分的参考材料
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body ContentRequest true "内容信息"
// @Success 201 {object} util.Response{data=model.Content}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/contents [post]
func (c *ContentController) Create(ctx *gin.Context) {
	var req ContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	content, err := c.ContentService.CreateContent(claims.UserID, req.Title, req.Description, req.Kind, req.Body)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, content)
}

// Get godoc
// @Summary 查询学习内容
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [get]
func (c *ContentController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	content, err := c.ContentService.GetContent(claims.UserID, ctx.Param("id"))
	if err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, content)
}

// UpdateContentRequest 更新内容请求，空字段不修改
type UpdateContentRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Body        string `json:"body"`
}

// Update godoc
// @Summary 更新学习内容
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Param   body body UpdateContentRequest true "更新字段"
// @Success 200 {object} util.Response{data=model.Content}
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [put]
func (c *ContentController) Update(ctx *gin.Context) {
	var req UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	content, err := c.ContentService.UpdateContent(claims.UserID, ctx.Param("id"), req.Title, req.Description, req.Body)
	if err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, content)
}

// Delete godoc
// @Summary 删除学习内容
// @Description 删除内容及其全部题目
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "内容 ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [delete]
func (c *ContentController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.ContentService.DeleteContent(claims.UserID, ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrContentNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, nil)
}

// List godoc
// @Summary 内容列表
// @Description 分页查询当前用户的学习内容
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码" default(1)
// @Param   limit query int false "每页数量" default(10)
// @Success 200 {object} util.PageResponse
// @Router /api/contents [get]
func (c *ContentController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	claims := util.GetUserFromContext(ctx)
	rows, total, err := c.ContentService.ListContents(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.SuccessPage(ctx, rows, total, page, limit)
}
