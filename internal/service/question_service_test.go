package service

import (
	"smart_recall_backend/internal/model"
	"testing"
)

func TestValidateQuestion(t *testing.T) {
	cases := []struct {
		name    string
		prompt  string
		kind    model.QuestionKind
		options []string
		answer  string
		wantErr bool
	}{
		{"valid choice", "选哪个?", model.KindMultipleChoice, []string{"A", "B", "C"}, "A", false},
		{"choice too few options", "选哪个?", model.KindMultipleChoice, []string{"A"}, "A", true},
		{"valid short answer", "解释一下", model.KindShortAnswer, nil, "参考答案", false},
		{"empty prompt", "", model.KindTrueFalse, nil, "true", true},
		{"unknown kind", "题目", "essay", nil, "x", true},
		{"missing answer", "题目", model.KindExactTyping, nil, "", true},
		{"flashcard without answer", "正面", model.KindFlashcard, nil, "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateQuestion(tc.prompt, tc.kind, tc.options, tc.answer)
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr = %v", err, tc.wantErr)
			}
		})
	}
}
