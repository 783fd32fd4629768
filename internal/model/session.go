package model

import "time"

// SessionStatus 会话状态机：in_progress -> completed
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// LearningSession 一次答题会话。不变量：CurrentIndex == 已提交结果数，
// 且 0 <= CurrentIndex <= 题目总数；完成后不再接受提交
// swagger:model LearningSession
type LearningSession struct {
	UUIDBase
	UserID        uint          `gorm:"index;type:bigint unsigned" json:"userId"`
	ContentID     string        `gorm:"index;type:varchar(36)" json:"contentId"`
	Status        SessionStatus `gorm:"size:20;default:'in_progress'" json:"status"`
	QuestionCount int           `json:"questionCount"`
	CurrentIndex  int           `gorm:"default:0" json:"currentIndex"`
	TotalScore    float64       `gorm:"default:0" json:"totalScore"`
	StartedAt     time.Time     `json:"startedAt"`
	CompletedAt   *time.Time    `json:"completedAt,omitempty"`
}

func (LearningSession) TableName() string {
	return "learning_sessions"
}

func (s *LearningSession) IsCompleted() bool {
	return s.Status == SessionCompleted
}

// QuestionResult 单题作答记录，评分完成后写入一次，之后不可变
// swagger:model QuestionResult
type QuestionResult struct {
	UUIDBase
	SessionID        string    `gorm:"index;type:varchar(36)" json:"sessionId"`
	QuestionID       string    `gorm:"index;type:varchar(36)" json:"questionId"`
	QuestionKind     string    `gorm:"size:50" json:"questionKind"`
	UserAnswer       string    `gorm:"type:text" json:"userAnswer"`
	TimeSpentSeconds int       `gorm:"default:0" json:"timeSpentSeconds"`
	SubmittedAt      time.Time `json:"submittedAt"`
	Score            *float64  `json:"score"` // 评分前为 null，评分后 0..10
	IsCorrect        bool      `json:"isCorrect"`
	GradingDetail    string    `gorm:"type:json" json:"gradingDetail,omitempty"` // AI 评分详情（JSON），确定性评分为空
}

func (QuestionResult) TableName() string {
	return "question_results"
}

// GradingDetail AI 评分的结构化详情；Degraded 表示 AI 不可用时降级为确定性比对
type GradingDetail struct {
	Percentage  float64 `json:"percentage"`
	Rationale   string  `json:"rationale"`
	Suggestions string  `json:"suggestions"`
	Degraded    bool    `json:"degraded,omitempty"`
}

// KindStats 按题型统计
type KindStats struct {
	Kind     string  `json:"kind"`
	Total    int     `json:"total"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// DetailedResults 完成会话的统计摘要，由结果纯计算推导，不落库
// swagger:model DetailedResults
type DetailedResults struct {
	SessionID       string      `json:"sessionId"`
	TotalQuestions  int         `json:"totalQuestions"`
	CorrectCount    int         `json:"correctCount"`
	IncorrectCount  int         `json:"incorrectCount"`
	PartialCount    int         `json:"partialCount"`
	NotAnswered     int         `json:"notAnswered"`
	OverallAccuracy float64     `json:"overallAccuracy"` // 百分比
	AverageScore    float64     `json:"averageScore"`    // 0..10
	WeightedScore   float64     `json:"weightedScore"`   // 0..100
	Grade           string      `json:"grade"`           // A/B/C/D/F
	KindBreakdown   []KindStats `json:"kindBreakdown"`   // 按首次出现顺序
	Recommendations []string    `json:"recommendations"`
	TotalTimeSecs   int         `json:"totalTimeSeconds"`
	CompletedAt     *time.Time  `json:"completedAt,omitempty"`
}
