package service

import (
	"context"
	"errors"
	"smart_recall_backend/internal/model"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeJudge struct {
	result *JudgeResult
	err    error
	calls  int
}

func (f *fakeJudge) JudgeAnswer(ctx context.Context, prompt, correctAnswer, studentAnswer, referenceContent string) (*JudgeResult, error) {
	f.calls++
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return f.result, f.err
}

func TestGradeMultipleChoiceExactMatch(t *testing.T) {
	judge := &fakeJudge{}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindMultipleChoice, CorrectAnswer: "B"}

	outcome, err := svc.Grade(context.Background(), q, "B", "")
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.IsCorrect || outcome.Score != model.MaxQuestionScore {
		t.Errorf("expected full score, got score=%v correct=%v", outcome.Score, outcome.IsCorrect)
	}

	outcome, _ = svc.Grade(context.Background(), q, "A", "")
	if outcome.IsCorrect || outcome.Score != 0 {
		t.Errorf("wrong answer should score 0, got score=%v correct=%v", outcome.Score, outcome.IsCorrect)
	}
	if judge.calls != 0 {
		t.Errorf("deterministic kind should not invoke the judge, got %d calls", judge.calls)
	}
}

func TestGradeTrimsWhitespace(t *testing.T) {
	svc := NewGradingService(&fakeJudge{})
	q := &model.Question{Kind: model.KindFlashcard, CorrectAnswer: "mitochondria"}

	outcome, _ := svc.Grade(context.Background(), q, "  mitochondria  ", "")
	if !outcome.IsCorrect {
		t.Error("answer with surrounding whitespace should match")
	}
}

func TestGradeEmptyAnswerSkipsJudge(t *testing.T) {
	judge := &fakeJudge{result: &JudgeResult{Percentage: 100}}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindShortAnswer, CorrectAnswer: "anything"}

	outcome, err := svc.Grade(context.Background(), q, "   ", "")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.IsCorrect || outcome.Score != 0 {
		t.Errorf("empty answer must score 0, got score=%v correct=%v", outcome.Score, outcome.IsCorrect)
	}
	if judge.calls != 0 {
		t.Errorf("empty answer must not invoke the judge, got %d calls", judge.calls)
	}
}

func TestGradeTrueFalseNormalization(t *testing.T) {
	svc := NewGradingService(&fakeJudge{})
	q := &model.Question{Kind: model.KindTrueFalse, CorrectAnswer: "true"}

	for _, answer := range []string{"true", "True", "TRUE", "t", "yes", "1", "对", "正确"} {
		outcome, _ := svc.Grade(context.Background(), q, answer, "")
		if !outcome.IsCorrect {
			t.Errorf("answer %q should be accepted as true", answer)
		}
	}
	for _, answer := range []string{"false", "no", "0", "错误", "maybe"} {
		outcome, _ := svc.Grade(context.Background(), q, answer, "")
		if outcome.IsCorrect {
			t.Errorf("answer %q should not be accepted as true", answer)
		}
	}
}

func TestGradeMatchConceptsOrderIndependent(t *testing.T) {
	svc := NewGradingService(&fakeJudge{})
	q := &model.Question{Kind: model.KindMatchConcepts, CorrectAnswer: "cat:meow|dog:bark|cow:moo"}

	cases := []struct {
		answer string
		want   bool
	}{
		{"cat:meow|dog:bark|cow:moo", true},
		{"dog:bark|cow:moo|cat:meow", true},
		{" dog:bark | cow:moo | cat:meow ", true},
		{"cat:bark|dog:meow|cow:moo", false},
		{"cat:meow|dog:bark", false},
		{"cat:meow|dog:bark|cow:moo|pig:oink", false},
	}
	for _, tc := range cases {
		outcome, _ := svc.Grade(context.Background(), q, tc.answer, "")
		if outcome.IsCorrect != tc.want {
			t.Errorf("answer %q: got correct=%v, want %v", tc.answer, outcome.IsCorrect, tc.want)
		}
	}
}

func TestGradeAIJudgedScoreMapping(t *testing.T) {
	judge := &fakeJudge{result: &JudgeResult{Percentage: 85, Rationale: "大致正确", Suggestions: "注意细节"}}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindShortAnswer, CorrectAnswer: "光合作用"}

	outcome, err := svc.Grade(context.Background(), q, "植物利用光能合成养分", "参考材料")
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Score != 8.5 {
		t.Errorf("85%% should map to 8.5, got %v", outcome.Score)
	}
	if !outcome.IsCorrect {
		t.Error("85% is above the correct threshold")
	}
	if outcome.Detail == nil || outcome.Detail.Rationale != "大致正确" {
		t.Errorf("grading detail not propagated: %+v", outcome.Detail)
	}
	if outcome.Detail.Degraded {
		t.Error("successful AI grading must not be marked degraded")
	}
}

func TestGradeAIJudgedBelowThreshold(t *testing.T) {
	judge := &fakeJudge{result: &JudgeResult{Percentage: 69.9}}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindFillBlank, CorrectAnswer: "x"}

	outcome, _ := svc.Grade(context.Background(), q, "y", "")
	if outcome.IsCorrect {
		t.Error("69.9% is below the correct threshold")
	}

	judge.result = &JudgeResult{Percentage: 70}
	outcome, _ = svc.Grade(context.Background(), q, "y", "")
	if !outcome.IsCorrect {
		t.Error("exactly 70% counts as correct")
	}
}

func TestGradeAIFallbackOnError(t *testing.T) {
	judge := &fakeJudge{err: errors.New("upstream 503")}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindExactTyping, CorrectAnswer: "func main()"}

	// 答案精确匹配：降级后仍满分
	outcome, err := svc.Grade(context.Background(), q, "func main()", "")
	if err != nil {
		t.Fatal(err)
	}
	if !outcome.IsCorrect || outcome.Score != model.MaxQuestionScore {
		t.Errorf("exact match should score full after fallback, got score=%v correct=%v", outcome.Score, outcome.IsCorrect)
	}
	if outcome.Detail == nil || !outcome.Detail.Degraded {
		t.Errorf("fallback result must be marked degraded: %+v", outcome.Detail)
	}

	// 不匹配：降级后 0 分
	outcome, _ = svc.Grade(context.Background(), q, "func main() {}", "")
	if outcome.IsCorrect || outcome.Score != 0 {
		t.Errorf("non-exact answer should score 0 after fallback, got score=%v correct=%v", outcome.Score, outcome.IsCorrect)
	}
	if outcome.Detail == nil || !outcome.Detail.Degraded {
		t.Error("fallback result must be marked degraded")
	}
}

func TestGradeAIFallbackLogsWarning(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	judge := &fakeJudge{err: errors.New("upstream 503")}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindShortAnswer, CorrectAnswer: "x"}
	q.ID = "q-1"

	if _, err := svc.Grade(context.Background(), q, "y", ""); err != nil {
		t.Fatal(err)
	}

	entries := logs.FilterMessage("AI 评分失败，回退到精确比对")
	if entries.Len() != 1 {
		t.Fatalf("degraded grading should emit exactly one warning, got %d", entries.Len())
	}
	fields := entries.All()[0].ContextMap()
	if fields["question_id"] != "q-1" {
		t.Errorf("warning should carry the question id, got %v", fields["question_id"])
	}
}

func TestGradeContextCancelled(t *testing.T) {
	judge := &fakeJudge{result: &JudgeResult{Percentage: 100}}
	svc := NewGradingService(judge)
	q := &model.Question{Kind: model.KindScenario, CorrectAnswer: "x"}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Grade(ctx, q, "some answer", "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context should abort grading, got %v", err)
	}
}

func TestParseJudgeResult(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{"plain json", `{"percentage": 80, "rationale": "ok", "suggestions": ""}`, 80, false},
		{"fenced json", "```json\n{\"percentage\": 55.5, \"rationale\": \"部分正确\", \"suggestions\": \"复习\"}\n```", 55.5, false},
		{"bare fence", "```\n{\"percentage\": 20}\n```", 20, false},
		{"clamp high", `{"percentage": 150}`, 100, false},
		{"clamp low", `{"percentage": -3}`, 0, false},
		{"garbage", "I think 80%", 0, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseJudgeResult(tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got.Percentage != tc.want {
				t.Errorf("percentage = %v, want %v", got.Percentage, tc.want)
			}
		})
	}
}
