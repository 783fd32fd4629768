package model

// QuestionKind 题目类型，决定评分策略与 Options 是否有效
type QuestionKind string

const (
	KindMultipleChoice        QuestionKind = "multiple_choice"
	KindFillBlank             QuestionKind = "fill_blank"
	KindExactTyping           QuestionKind = "exact_typing"
	KindTrueFalse             QuestionKind = "true_false"
	KindMatchConcepts         QuestionKind = "match_concepts"
	KindShortAnswer           QuestionKind = "short_answer"
	KindScenario              QuestionKind = "scenario"
	KindFlashcard             QuestionKind = "flashcard"
	KindMissingWordChoice     QuestionKind = "missing_word_choice"
	KindContentMultipleChoice QuestionKind = "content_multiple_choice"
)

// GradingStrategy 评分策略
type GradingStrategy string

const (
	StrategyDeterministic GradingStrategy = "deterministic"
	StrategyAIJudged      GradingStrategy = "ai_judged"
)

const (
	// MaxQuestionScore 每题满分固定为 10
	MaxQuestionScore = 10.0

	// AnswerSeparator 多空答案、概念配对使用的分隔符
	AnswerSeparator = "|"

	// CorrectPercentageThreshold AI 评分判定正确的百分比阈值
	CorrectPercentageThreshold = 70.0
)

// swagger:model Question
type Question struct {
	UUIDBase
	ContentID     string       `gorm:"index;type:varchar(36)" json:"contentId"`
	Prompt        string       `gorm:"type:text;not null" json:"prompt"`
	Kind          QuestionKind `gorm:"size:50;not null" json:"kind"`
	Options       string       `gorm:"type:json" json:"options"` // 选择题选项（JSON array），其余题型为空
	CorrectAnswer string       `gorm:"type:text" json:"correctAnswer"`
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Order         int          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}

// GradingStrategy 由题型推导：fill_blank / exact_typing / short_answer / scenario
// 走 AI 评分，其余题型走确定性比对
func (q *Question) GradingStrategy() GradingStrategy {
	switch q.Kind {
	case KindFillBlank, KindExactTyping, KindShortAnswer, KindScenario:
		return StrategyAIJudged
	default:
		return StrategyDeterministic
	}
}

// IsChoiceKind Options 字段是否有效
func (q *Question) IsChoiceKind() bool {
	switch q.Kind {
	case KindMultipleChoice, KindMissingWordChoice, KindContentMultipleChoice:
		return true
	default:
		return false
	}
}

// ValidKind 校验题型取值
func ValidKind(kind QuestionKind) bool {
	switch kind {
	case KindMultipleChoice, KindFillBlank, KindExactTyping, KindTrueFalse,
		KindMatchConcepts, KindShortAnswer, KindScenario, KindFlashcard,
		KindMissingWordChoice, KindContentMultipleChoice:
		return true
	}
	return false
}
