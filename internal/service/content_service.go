package service

import (
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/repository"
	"smart_recall_backend/internal/util"

	"go.uber.org/zap"
)

type ContentService struct {
	contentRepo *repository.ContentRepository
}

func NewContentService(contentRepo *repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// CreateContent 创建学习内容，Body 同时作为 AI 评分的参考材料
func (s *ContentService) CreateContent(userID uint, title, description, kind, body string) (*model.Content, error) {
	if kind == "" {
		kind = "free_text"
	}
	content := &model.Content{
		UserID:      userID,
		Title:       title,
		Description: description,
		Kind:        kind,
		Body:        body,
	}
	if err := s.contentRepo.Create(content); err != nil {
		return nil, err
	}
	return content, nil
}

// GetContent 查询内容，仅限本人
func (s *ContentService) GetContent(userID uint, contentID string) (*model.Content, error) {
	content, err := s.contentRepo.FindByID(contentID)
	if err != nil || content.UserID != userID {
		return nil, util.ErrContentNotFound
	}
	return content, nil
}

// UpdateContent 更新内容字段，空字符串表示不修改
func (s *ContentService) UpdateContent(userID uint, contentID, title, description, body string) (*model.Content, error) {
	content, err := s.GetContent(userID, contentID)
	if err != nil {
		return nil, err
	}

	if title != "" {
		content.Title = title
	}
	if description != "" {
		content.Description = description
	}
	if body != "" {
		content.Body = body
	}

	if err := s.contentRepo.Update(content); err != nil {
		return nil, err
	}
	return content, nil
}

// DeleteContent 删除内容及其全部题目
func (s *ContentService) DeleteContent(userID uint, contentID string) error {
	if _, err := s.GetContent(userID, contentID); err != nil {
		return err
	}
	if err := s.contentRepo.Delete(contentID); err != nil {
		return err
	}
	zap.L().Info("内容已删除", zap.String("content_id", contentID), zap.Uint("user_id", userID))
	return nil
}

// ListContents 分页查询用户的内容列表，附带题目数量
func (s *ContentService) ListContents(userID uint, page, limit int) ([]repository.ContentListRow, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.contentRepo.ListByUser(userID, page, limit)
}
