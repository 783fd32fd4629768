package model

import "testing"

func TestGradingStrategyByKind(t *testing.T) {
	aiKinds := []QuestionKind{KindFillBlank, KindExactTyping, KindShortAnswer, KindScenario}
	for _, kind := range aiKinds {
		q := Question{Kind: kind}
		if q.GradingStrategy() != StrategyAIJudged {
			t.Errorf("%s should be AI judged", kind)
		}
	}

	deterministic := []QuestionKind{
		KindMultipleChoice, KindTrueFalse, KindMatchConcepts,
		KindFlashcard, KindMissingWordChoice, KindContentMultipleChoice,
	}
	for _, kind := range deterministic {
		q := Question{Kind: kind}
		if q.GradingStrategy() != StrategyDeterministic {
			t.Errorf("%s should be deterministic", kind)
		}
	}
}

func TestIsChoiceKind(t *testing.T) {
	choice := []QuestionKind{KindMultipleChoice, KindMissingWordChoice, KindContentMultipleChoice}
	for _, kind := range choice {
		q := Question{Kind: kind}
		if !q.IsChoiceKind() {
			t.Errorf("%s should carry options", kind)
		}
	}

	q := Question{Kind: KindShortAnswer}
	if q.IsChoiceKind() {
		t.Error("short_answer must not carry options")
	}
}

func TestValidKind(t *testing.T) {
	if !ValidKind(KindFlashcard) {
		t.Error("flashcard is a valid kind")
	}
	if ValidKind("essay") {
		t.Error("essay is not a valid kind")
	}
	if ValidKind("") {
		t.Error("empty kind is invalid")
	}
}

func TestSessionIsCompleted(t *testing.T) {
	s := LearningSession{Status: SessionInProgress}
	if s.IsCompleted() {
		t.Error("in_progress session is not completed")
	}
	s.Status = SessionCompleted
	if !s.IsCompleted() {
		t.Error("completed session should report completed")
	}
}
