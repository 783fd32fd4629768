package repository

import (
	"smart_recall_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.LearningSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id string) (*model.LearningSession, error) {
	var s model.LearningSession
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

// ListResults 按提交顺序返回会话的作答记录
func (r *SessionRepository) ListResults(sessionID string) ([]model.QuestionResult, error) {
	var results []model.QuestionResult
	err := r.DB.Where("session_id = ?", sessionID).Order("submitted_at asc, created_at asc").Find(&results).Error
	return results, err
}

// SaveSubmission 在一个事务里追加作答记录并推进会话游标
func (r *SessionRepository) SaveSubmission(session *model.LearningSession, result *model.QuestionResult) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}
		return tx.Save(session).Error
	})
}

type SessionListRow struct {
	model.LearningSession
	ContentTitle string `json:"contentTitle"`
}

func (r *SessionRepository) ListByUser(userID uint, page, limit int) ([]SessionListRow, int64, error) {
	var total int64
	if err := r.DB.Model(&model.LearningSession{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []SessionListRow
	query := r.DB.Table("learning_sessions s").
		Select("s.*, c.title as content_title").
		Joins("LEFT JOIN contents c ON s.content_id = c.id").
		Where("s.user_id = ? AND s.deleted_at IS NULL", userID)

	if limit > 0 {
		offset := (page - 1) * limit
		query = query.Offset(offset).Limit(limit)
	}

	err := query.Order("s.started_at desc").Scan(&rows).Error
	return rows, total, err
}

type UserSessionStats struct {
	TotalSessions     int64   `json:"totalSessions"`
	CompletedSessions int64   `json:"completedSessions"`
	AvgScore          float64 `json:"avgScore"`
}

// GetUserStats 用户维度的会话统计
func (r *SessionRepository) GetUserStats(userID uint) (*UserSessionStats, error) {
	var stats UserSessionStats
	base := r.DB.Model(&model.LearningSession{}).Where("user_id = ?", userID)

	if err := base.Count(&stats.TotalSessions).Error; err != nil {
		return nil, err
	}

	completed := r.DB.Model(&model.LearningSession{}).
		Where("user_id = ? AND status = ?", userID, model.SessionCompleted)
	if err := completed.Count(&stats.CompletedSessions).Error; err != nil {
		return nil, err
	}
	if stats.CompletedSessions > 0 {
		if err := completed.Select("AVG(total_score)").Scan(&stats.AvgScore).Error; err != nil {
			return nil, err
		}
	}

	return &stats, nil
}
