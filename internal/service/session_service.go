package service

import (
	"context"
	"encoding/json"
	"fmt"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/repository"
	"smart_recall_backend/internal/util"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// SessionStore 会话持久化抽象
type SessionStore interface {
	Create(session *model.LearningSession) error
	FindByID(id string) (*model.LearningSession, error)
	ListResults(sessionID string) ([]model.QuestionResult, error)
	SaveSubmission(session *model.LearningSession, result *model.QuestionResult) error
	ListByUser(userID uint, page, limit int) ([]repository.SessionListRow, int64, error)
	GetUserStats(userID uint) (*repository.UserSessionStats, error)
}

// QuestionSource 按内容加载题目，顺序固定
type QuestionSource interface {
	ListByContent(contentID string) ([]model.Question, error)
}

// ContentSource 加载学习内容（AI 评分的参考材料）
type ContentSource interface {
	FindByID(id string) (*model.Content, error)
}

type SessionService struct {
	store     SessionStore
	questions QuestionSource
	contents  ContentSource
	grading   *GradingService
	redis     *redis.Client
	locks     sync.Map // sessionID -> *sync.Mutex
}

func NewSessionService(store SessionStore, questions QuestionSource, contents ContentSource, grading *GradingService, rdb *redis.Client) *SessionService {
	return &SessionService{
		store:     store,
		questions: questions,
		contents:  contents,
		grading:   grading,
		redis:     rdb,
	}
}

// lockSession 同一会话的提交串行化，避免游标竞争
func (s *SessionService) lockSession(sessionID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// StartSession 开始一次答题会话，返回会话与第一题
func (s *SessionService) StartSession(userID uint, contentID string) (*model.LearningSession, *model.Question, error) {
	content, err := s.contents.FindByID(contentID)
	if err != nil {
		return nil, nil, util.ErrContentNotFound
	}
	if content.UserID != userID {
		return nil, nil, util.ErrContentNotFound
	}

	questions, err := s.questions.ListByContent(contentID)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, util.ErrEmptyQuestionSet
	}

	session := &model.LearningSession{
		UserID:        userID,
		ContentID:     contentID,
		Status:        model.SessionInProgress,
		QuestionCount: len(questions),
		CurrentIndex:  0,
		StartedAt:     time.Now(),
	}
	if err := s.store.Create(session); err != nil {
		return nil, nil, err
	}

	zap.L().Info("会话已创建",
		zap.String("session_id", session.ID),
		zap.Uint("user_id", userID),
		zap.Int("question_count", len(questions)))

	return session, &questions[0], nil
}

// GetSession 查询会话，仅限本人
func (s *SessionService) GetSession(userID uint, sessionID string) (*model.LearningSession, error) {
	session, err := s.store.FindByID(sessionID)
	if err != nil || session.UserID != userID {
		return nil, util.ErrSessionNotFound
	}
	return session, nil
}

// GetCurrentQuestion 返回当前待答题目；全部答完时返回 nil
func (s *SessionService) GetCurrentQuestion(userID uint, sessionID string) (*model.Question, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsCompleted() || session.CurrentIndex >= session.QuestionCount {
		return nil, nil
	}

	questions, err := s.questions.ListByContent(session.ContentID)
	if err != nil {
		return nil, err
	}
	// 题目中途被删导致列表变短：视为无题可答，而非报错
	if session.CurrentIndex >= len(questions) {
		return nil, nil
	}
	return &questions[session.CurrentIndex], nil
}

// SubmitAnswer 提交当前题目的作答：评分、记录、游标前移，
// 最后一题提交后会话自动完成并计算总分
func (s *SessionService) SubmitAnswer(ctx context.Context, userID uint, sessionID, answer string, timeSpentSeconds int) (*model.QuestionResult, *model.LearningSession, error) {
	mu := s.lockSession(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.IsCompleted() {
		return nil, nil, util.ErrSessionAlreadyCompleted
	}
	if session.CurrentIndex >= session.QuestionCount {
		return nil, nil, util.ErrInvalidQuestionIndex
	}

	questions, err := s.questions.ListByContent(session.ContentID)
	if err != nil {
		return nil, nil, err
	}
	if session.CurrentIndex >= len(questions) {
		return nil, nil, util.ErrInvalidQuestionIndex
	}
	question := &questions[session.CurrentIndex]

	reference := ""
	if content, cerr := s.contents.FindByID(session.ContentID); cerr == nil {
		reference = content.Body
	}

	outcome, err := s.grading.Grade(ctx, question, answer, reference)
	if err != nil {
		// 取消或超时：不落任何记录
		return nil, nil, err
	}

	score := outcome.Score
	result := &model.QuestionResult{
		SessionID:        sessionID,
		QuestionID:       question.ID,
		QuestionKind:     string(question.Kind),
		UserAnswer:       answer,
		TimeSpentSeconds: timeSpentSeconds,
		SubmittedAt:      time.Now(),
		Score:            &score,
		IsCorrect:        outcome.IsCorrect,
	}
	if outcome.Detail != nil {
		if detail, merr := json.Marshal(outcome.Detail); merr == nil {
			result.GradingDetail = string(detail)
		}
	}

	session.CurrentIndex++
	if session.CurrentIndex >= session.QuestionCount {
		now := time.Now()
		session.Status = model.SessionCompleted
		session.CompletedAt = &now
		session.TotalScore, err = s.finalScore(sessionID, score)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := s.store.SaveSubmission(session, result); err != nil {
		return nil, nil, err
	}
	return result, session, nil
}

// finalScore 总分为各题得分的平均值（0..10），含本次提交
func (s *SessionService) finalScore(sessionID string, lastScore float64) (float64, error) {
	results, err := s.store.ListResults(sessionID)
	if err != nil {
		return 0, err
	}
	sum := lastScore
	count := 1
	for _, r := range results {
		if r.Score != nil {
			sum += *r.Score
		}
		count++
	}
	return sum / float64(count), nil
}

// CompleteSession 完成会话并返回统计摘要。已完成的会话幂等返回摘要；
// 尚有未答题目时拒绝
func (s *SessionService) CompleteSession(ctx context.Context, userID uint, sessionID string) (*model.DetailedResults, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsCompleted() {
		return nil, util.ErrSessionNotCompleted
	}
	return s.GetSummary(ctx, userID, sessionID)
}

// GetSummary 获取已完成会话的统计摘要，带 Redis 缓存
func (s *SessionService) GetSummary(ctx context.Context, userID uint, sessionID string) (*model.DetailedResults, error) {
	session, err := s.GetSession(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if !session.IsCompleted() {
		return nil, util.ErrSessionNotCompleted
	}

	cacheKey := util.SummaryCachePrefix + sessionID
	if s.redis != nil {
		if cached, cerr := s.redis.Get(ctx, cacheKey).Result(); cerr == nil {
			var report model.DetailedResults
			if json.Unmarshal([]byte(cached), &report) == nil {
				return &report, nil
			}
		}
	}

	results, err := s.store.ListResults(sessionID)
	if err != nil {
		return nil, err
	}
	report := BuildDetailedResults(session, results)

	if s.redis != nil {
		if data, merr := json.Marshal(report); merr == nil {
			if cerr := s.redis.Set(ctx, cacheKey, data, util.SummaryCacheTTLMin*time.Minute).Err(); cerr != nil {
				zap.L().Warn("写入摘要缓存失败", zap.String("session_id", sessionID), zap.Error(cerr))
			}
		}
	}
	return report, nil
}

// ListSessions 分页查询用户的会话列表
func (s *SessionService) ListSessions(userID uint, page, limit int) ([]repository.SessionListRow, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return s.store.ListByUser(userID, page, limit)
}

// GetUserStats 用户维度的会话统计
func (s *SessionService) GetUserStats(userID uint) (*repository.UserSessionStats, error) {
	stats, err := s.store.GetUserStats(userID)
	if err != nil {
		return nil, fmt.Errorf("查询用户统计失败: %w", err)
	}
	return stats, nil
}
