package repository

import (
	"smart_recall_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Question{}, "id = ?", id).Error
}

// ListByContent 按固定顺序返回内容下的全部题目
func (r *QuestionRepository) ListByContent(contentID string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("content_id = ?", contentID).Order("`order` asc, created_at asc").Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByContent(contentID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("content_id = ?", contentID).Count(&count).Error
	return count, err
}
