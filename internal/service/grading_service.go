package service

import (
	"context"
	"errors"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

// AnswerJudge AI 评分器抽象，便于测试替换
type AnswerJudge interface {
	JudgeAnswer(ctx context.Context, prompt, correctAnswer, studentAnswer, referenceContent string) (*JudgeResult, error)
}

// GradingOutcome 单题评分结果
type GradingOutcome struct {
	Score     float64
	IsCorrect bool
	Detail    *model.GradingDetail
}

type GradingService struct {
	judge AnswerJudge
}

func NewGradingService(judge AnswerJudge) *GradingService {
	return &GradingService{judge: judge}
}

// Grade 对一道题的作答评分。确定性题型精确比对；
// 自由文本题型交给 AI，AI 不可用时回退到精确比对并标记 degraded
func (s *GradingService) Grade(ctx context.Context, question *model.Question, userAnswer, referenceContent string) (*GradingOutcome, error) {
	trimmed := strings.TrimSpace(userAnswer)

	// 空答案不计分，也不调用 AI
	if trimmed == "" {
		return &GradingOutcome{Score: 0, IsCorrect: false}, nil
	}

	if question.GradingStrategy() == model.StrategyDeterministic {
		correct := gradeDeterministic(question, trimmed)
		outcome := &GradingOutcome{IsCorrect: correct}
		if correct {
			outcome.Score = model.MaxQuestionScore
		}
		return outcome, nil
	}

	start := time.Now()
	result, err := s.judge.JudgeAnswer(ctx, question.Prompt, question.CorrectAnswer, trimmed, referenceContent)
	monitoring.AIGradingDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		// 调用方取消时直接中止，不产生结果
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
		}

		monitoring.AIGradingFallbacks.Inc()
		zap.L().Warn("AI 评分失败，回退到精确比对",
			zap.String("question_id", question.ID),
			zap.Error(err))

		correct := gradeDeterministic(question, trimmed)
		outcome := &GradingOutcome{
			IsCorrect: correct,
			Detail: &model.GradingDetail{
				Rationale: "AI 评分暂不可用，已按精确比对评分",
				Degraded:  true,
			},
		}
		if correct {
			outcome.Score = model.MaxQuestionScore
			outcome.Detail.Percentage = 100
		}
		return outcome, nil
	}

	score := result.Percentage / 100 * model.MaxQuestionScore
	return &GradingOutcome{
		Score:     score,
		IsCorrect: result.Percentage >= model.CorrectPercentageThreshold,
		Detail: &model.GradingDetail{
			Percentage:  result.Percentage,
			Rationale:   result.Rationale,
			Suggestions: result.Suggestions,
		},
	}, nil
}

// gradeDeterministic 精确比对。判断题归一化常见写法；
// 连线题按集合比较，顺序无关
func gradeDeterministic(question *model.Question, trimmed string) bool {
	expected := strings.TrimSpace(question.CorrectAnswer)

	switch question.Kind {
	case model.KindTrueFalse:
		return normalizeBool(trimmed) != "" && normalizeBool(trimmed) == normalizeBool(expected)
	case model.KindMatchConcepts:
		return matchPairSetEqual(trimmed, expected)
	default:
		return trimmed == expected
	}
}

func normalizeBool(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "t", "yes", "y", "1", "对", "正确", "是":
		return "true"
	case "false", "f", "no", "n", "0", "错", "错误", "否":
		return "false"
	default:
		return ""
	}
}

// matchPairSetEqual 比较 "left:right|left:right" 形式的配对集合
func matchPairSetEqual(got, want string) bool {
	gotSet := splitPairSet(got)
	wantSet := splitPairSet(want)
	if len(gotSet) != len(wantSet) {
		return false
	}
	for pair := range wantSet {
		if !gotSet[pair] {
			return false
		}
	}
	return true
}

func splitPairSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, part := range strings.Split(s, model.AnswerSeparator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		set[part] = true
	}
	return set
}
