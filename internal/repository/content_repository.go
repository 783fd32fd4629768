package repository

import (
	"smart_recall_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) Create(content *model.Content) error {
	return r.DB.Create(content).Error
}

func (r *ContentRepository) FindByID(id string) (*model.Content, error) {
	var content model.Content
	err := r.DB.First(&content, "id = ?", id).Error
	return &content, err
}

func (r *ContentRepository) Update(content *model.Content) error {
	return r.DB.Save(content).Error
}

// Delete 删除内容及其下的题目
func (r *ContentRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Content{}, "id = ?", id).Error
	})
}

type ContentListRow struct {
	model.Content
	QuestionCount int `json:"questionCount"`
}

func (r *ContentRepository) ListByUser(userID uint, page, limit int) ([]ContentListRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Content{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ContentListRow
	query := r.DB.Table("contents c").
		Select("c.*, (SELECT COUNT(*) FROM questions q WHERE q.content_id = c.id AND q.deleted_at IS NULL) as question_count").
		Where("c.user_id = ? AND c.deleted_at IS NULL", userID)

	if limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}

	err := query.Order("c.created_at desc").Scan(&rows).Error
	return rows, total, err
}
