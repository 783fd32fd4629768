package service

import (
	"context"
	"errors"
	"fmt"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/repository"
	"smart_recall_backend/internal/util"
	"testing"
)

type fakeStore struct {
	sessions map[string]*model.LearningSession
	results  map[string][]model.QuestionResult
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		sessions: make(map[string]*model.LearningSession),
		results:  make(map[string][]model.QuestionResult),
	}
}

func (f *fakeStore) Create(session *model.LearningSession) error {
	session.ID = model.GenerateUUID()
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeStore) FindByID(id string) (*model.LearningSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, util.ErrSessionNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeStore) ListResults(sessionID string) ([]model.QuestionResult, error) {
	return f.results[sessionID], nil
}

func (f *fakeStore) SaveSubmission(session *model.LearningSession, result *model.QuestionResult) error {
	result.ID = model.GenerateUUID()
	f.results[session.ID] = append(f.results[session.ID], *result)
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeStore) ListByUser(userID uint, page, limit int) ([]repository.SessionListRow, int64, error) {
	var rows []repository.SessionListRow
	for _, s := range f.sessions {
		if s.UserID == userID {
			rows = append(rows, repository.SessionListRow{LearningSession: *s})
		}
	}
	return rows, int64(len(rows)), nil
}

func (f *fakeStore) GetUserStats(userID uint) (*repository.UserSessionStats, error) {
	stats := &repository.UserSessionStats{}
	for _, s := range f.sessions {
		if s.UserID != userID {
			continue
		}
		stats.TotalSessions++
		if s.IsCompleted() {
			stats.CompletedSessions++
		}
	}
	return stats, nil
}

type fakeQuestions struct {
	byContent map[string][]model.Question
}

func (f *fakeQuestions) ListByContent(contentID string) ([]model.Question, error) {
	return f.byContent[contentID], nil
}

type fakeContents struct {
	byID map[string]*model.Content
}

func (f *fakeContents) FindByID(id string) (*model.Content, error) {
	c, ok := f.byID[id]
	if !ok {
		return nil, util.ErrContentNotFound
	}
	return c, nil
}

const testUserID uint = 7

func newTestSessionService(questions []model.Question, judge AnswerJudge) (*SessionService, *fakeStore) {
	store := newFakeStore()
	content := &model.Content{UserID: testUserID, Title: "测试内容", Body: "参考材料"}
	content.ID = "content-1"
	for i := range questions {
		questions[i].ID = fmt.Sprintf("q-%d", i+1)
		questions[i].ContentID = content.ID
	}
	svc := NewSessionService(
		store,
		&fakeQuestions{byContent: map[string][]model.Question{content.ID: questions}},
		&fakeContents{byID: map[string]*model.Content{content.ID: content}},
		NewGradingService(judge),
		nil,
	)
	return svc, store
}

func choiceQuestions(n int) []model.Question {
	qs := make([]model.Question, n)
	for i := range qs {
		qs[i] = model.Question{Kind: model.KindMultipleChoice, Prompt: fmt.Sprintf("第%d题", i+1), CorrectAnswer: "A"}
	}
	return qs
}

func TestStartSession(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(3), &fakeJudge{})

	session, first, err := svc.StartSession(testUserID, "content-1")
	if err != nil {
		t.Fatal(err)
	}
	if session.Status != model.SessionInProgress {
		t.Errorf("new session status = %s", session.Status)
	}
	if session.QuestionCount != 3 || session.CurrentIndex != 0 {
		t.Errorf("unexpected counters: count=%d index=%d", session.QuestionCount, session.CurrentIndex)
	}
	if first == nil || first.Prompt != "第1题" {
		t.Errorf("first question = %+v", first)
	}
}

func TestStartSessionEmptyQuestionSet(t *testing.T) {
	svc, _ := newTestSessionService(nil, &fakeJudge{})

	_, _, err := svc.StartSession(testUserID, "content-1")
	if !errors.Is(err, util.ErrEmptyQuestionSet) {
		t.Errorf("expected ErrEmptyQuestionSet, got %v", err)
	}
}

func TestStartSessionContentOwnership(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(1), &fakeJudge{})

	_, _, err := svc.StartSession(999, "content-1")
	if !errors.Is(err, util.ErrContentNotFound) {
		t.Errorf("other user's content must look nonexistent, got %v", err)
	}
}

func TestSubmitAnswerAdvancesCursor(t *testing.T) {
	svc, store := newTestSessionService(choiceQuestions(3), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	result, updated, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 12)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsCorrect || result.Score == nil || *result.Score != model.MaxQuestionScore {
		t.Errorf("correct answer not graded full: %+v", result)
	}
	if updated.CurrentIndex != 1 {
		t.Errorf("cursor should advance to 1, got %d", updated.CurrentIndex)
	}
	if updated.IsCompleted() {
		t.Error("session must stay in progress with questions remaining")
	}
	if got := len(store.results[session.ID]); got != 1 {
		t.Errorf("expected 1 stored result, got %d", got)
	}
}

func TestSubmitAnswerAutoCompletes(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(3), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	// 对、错、对：平均分 (10+0+10)/3
	answers := []string{"A", "B", "A"}
	var final *model.LearningSession
	for _, a := range answers {
		_, s, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, a, 5)
		if err != nil {
			t.Fatal(err)
		}
		final = s
	}

	if !final.IsCompleted() {
		t.Fatal("session should auto-complete after the last answer")
	}
	if final.CompletedAt == nil {
		t.Error("completed session must carry a completion time")
	}
	want := 20.0 / 3
	if diff := final.TotalScore - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("total score = %v, want %v", final.TotalScore, want)
	}
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(1), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	if _, _, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1); err != nil {
		t.Fatal(err)
	}

	_, _, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1)
	if !errors.Is(err, util.ErrSessionAlreadyCompleted) {
		t.Errorf("expected ErrSessionAlreadyCompleted, got %v", err)
	}
}

func TestSubmitAnswerCancelledContextLeavesNoTrace(t *testing.T) {
	svc, store := newTestSessionService(
		[]model.Question{{Kind: model.KindShortAnswer, Prompt: "解释", CorrectAnswer: "x"}},
		&fakeJudge{result: &JudgeResult{Percentage: 100}},
	)
	session, _, _ := svc.StartSession(testUserID, "content-1")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := svc.SubmitAnswer(ctx, testUserID, session.ID, "答案", 3)
	if err == nil {
		t.Fatal("cancelled submit must fail")
	}
	if got := len(store.results[session.ID]); got != 0 {
		t.Errorf("cancelled submit must not persist results, found %d", got)
	}
	reloaded, _ := store.FindByID(session.ID)
	if reloaded.CurrentIndex != 0 {
		t.Errorf("cancelled submit must not advance the cursor, got %d", reloaded.CurrentIndex)
	}
}

func TestGetCurrentQuestion(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(2), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	q, err := svc.GetCurrentQuestion(testUserID, session.ID)
	if err != nil || q == nil || q.Prompt != "第1题" {
		t.Fatalf("current = %+v, err = %v", q, err)
	}

	svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1)
	q, _ = svc.GetCurrentQuestion(testUserID, session.ID)
	if q == nil || q.Prompt != "第2题" {
		t.Fatalf("after one submit current = %+v", q)
	}

	svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1)
	q, err = svc.GetCurrentQuestion(testUserID, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if q != nil {
		t.Errorf("completed session has no current question, got %+v", q)
	}
}

func TestGetCurrentQuestionAfterQuestionDeleted(t *testing.T) {
	store := newFakeStore()
	content := &model.Content{UserID: testUserID, Title: "测试内容"}
	content.ID = "content-1"
	questions := choiceQuestions(2)
	for i := range questions {
		questions[i].ID = fmt.Sprintf("q-%d", i+1)
		questions[i].ContentID = content.ID
	}
	source := &fakeQuestions{byContent: map[string][]model.Question{content.ID: questions}}
	svc := NewSessionService(
		store,
		source,
		&fakeContents{byID: map[string]*model.Content{content.ID: content}},
		NewGradingService(&fakeJudge{}),
		nil,
	)

	session, _, _ := svc.StartSession(testUserID, "content-1")
	if _, _, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1); err != nil {
		t.Fatal(err)
	}

	// 第二题在答题中途被删除
	source.byContent[content.ID] = source.byContent[content.ID][:1]

	q, err := svc.GetCurrentQuestion(testUserID, session.ID)
	if err != nil {
		t.Fatalf("shrunk question list must not error, got %v", err)
	}
	if q != nil {
		t.Errorf("no question is answerable past the shrunk list, got %+v", q)
	}
}

func TestCompleteSessionIdempotent(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(1), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")
	svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1)

	first, err := svc.CompleteSession(context.Background(), testUserID, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.CompleteSession(context.Background(), testUserID, session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if first.TotalQuestions != second.TotalQuestions || first.Grade != second.Grade {
		t.Errorf("repeated complete must return the same summary: %+v vs %+v", first, second)
	}
}

func TestCompleteSessionWithRemainingQuestions(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(2), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")
	svc.SubmitAnswer(context.Background(), testUserID, session.ID, "A", 1)

	_, err := svc.CompleteSession(context.Background(), testUserID, session.ID)
	if !errors.Is(err, util.ErrSessionNotCompleted) {
		t.Errorf("expected ErrSessionNotCompleted, got %v", err)
	}
}

func TestGetSummaryRequiresCompletion(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(2), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	_, err := svc.GetSummary(context.Background(), testUserID, session.ID)
	if !errors.Is(err, util.ErrSessionNotCompleted) {
		t.Errorf("expected ErrSessionNotCompleted, got %v", err)
	}
}

func TestSessionOwnership(t *testing.T) {
	svc, _ := newTestSessionService(choiceQuestions(1), &fakeJudge{})
	session, _, _ := svc.StartSession(testUserID, "content-1")

	if _, err := svc.GetSession(999, session.ID); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("foreign session must look nonexistent, got %v", err)
	}
	if _, _, err := svc.SubmitAnswer(context.Background(), 999, session.ID, "A", 1); !errors.Is(err, util.ErrSessionNotFound) {
		t.Errorf("foreign submit must fail with not found, got %v", err)
	}
}

func TestDegradedGradingStillCounts(t *testing.T) {
	svc, store := newTestSessionService(
		[]model.Question{{Kind: model.KindFillBlank, Prompt: "填空", CorrectAnswer: "gorm"}},
		&fakeJudge{err: errors.New("timeout")},
	)
	session, _, _ := svc.StartSession(testUserID, "content-1")

	result, final, err := svc.SubmitAnswer(context.Background(), testUserID, session.ID, "gorm", 2)
	if err != nil {
		t.Fatal(err)
	}
	if !result.IsCorrect {
		t.Error("exact match should survive AI fallback")
	}
	if result.GradingDetail == "" {
		t.Error("degraded result should carry grading detail")
	}
	if !final.IsCompleted() || final.TotalScore != model.MaxQuestionScore {
		t.Errorf("session should complete with full average, got %+v", final)
	}
	if got := len(store.results[session.ID]); got != 1 {
		t.Errorf("expected 1 result, got %d", got)
	}
}
