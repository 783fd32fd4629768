package service

import (
	"encoding/json"
	"errors"
	"smart_recall_backend/internal/model"
	"smart_recall_backend/internal/repository"
	"smart_recall_backend/internal/util"
)

type QuestionService struct {
	questionRepo *repository.QuestionRepository
	contentRepo  *repository.ContentRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository, contentRepo *repository.ContentRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo, contentRepo: contentRepo}
}

// CreateQuestion 在内容下新增题目
func (s *QuestionService) CreateQuestion(userID uint, contentID string, prompt string, kind model.QuestionKind, options []string, correctAnswer, explanation string, order int) (*model.Question, error) {
	if err := s.checkContentOwner(userID, contentID); err != nil {
		return nil, err
	}
	if err := validateQuestion(prompt, kind, options, correctAnswer); err != nil {
		return nil, err
	}

	question := &model.Question{
		ContentID:     contentID,
		Prompt:        prompt,
		Kind:          kind,
		CorrectAnswer: correctAnswer,
		Explanation:   explanation,
		Order:         order,
	}
	if len(options) > 0 {
		data, err := json.Marshal(options)
		if err != nil {
			return nil, err
		}
		question.Options = string(data)
	}

	if err := s.questionRepo.Create(question); err != nil {
		return nil, err
	}
	return question, nil
}

// GetQuestion 查询题目，校验所属内容归属
func (s *QuestionService) GetQuestion(userID uint, contentID, questionID string) (*model.Question, error) {
	if err := s.checkContentOwner(userID, contentID); err != nil {
		return nil, err
	}
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil || question.ContentID != contentID {
		return nil, util.ErrQuestionNotFound
	}
	return question, nil
}

// UpdateQuestion 更新题目，非空字段生效
func (s *QuestionService) UpdateQuestion(userID uint, contentID, questionID, prompt string, options []string, correctAnswer, explanation string, order *int) (*model.Question, error) {
	question, err := s.GetQuestion(userID, contentID, questionID)
	if err != nil {
		return nil, err
	}

	if prompt != "" {
		question.Prompt = prompt
	}
	if options != nil {
		if question.IsChoiceKind() && len(options) < 2 {
			return nil, errors.New("选择题至少需要两个选项")
		}
		data, merr := json.Marshal(options)
		if merr != nil {
			return nil, merr
		}
		question.Options = string(data)
	}
	if correctAnswer != "" {
		question.CorrectAnswer = correctAnswer
	}
	if explanation != "" {
		question.Explanation = explanation
	}
	if order != nil {
		question.Order = *order
	}

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion 删除题目
func (s *QuestionService) DeleteQuestion(userID uint, contentID, questionID string) error {
	if _, err := s.GetQuestion(userID, contentID, questionID); err != nil {
		return err
	}
	return s.questionRepo.Delete(questionID)
}

// ListQuestions 内容下的全部题目，按 order 与创建时间排序
func (s *QuestionService) ListQuestions(userID uint, contentID string) ([]model.Question, error) {
	if err := s.checkContentOwner(userID, contentID); err != nil {
		return nil, err
	}
	return s.questionRepo.ListByContent(contentID)
}

func (s *QuestionService) checkContentOwner(userID uint, contentID string) error {
	content, err := s.contentRepo.FindByID(contentID)
	if err != nil || content.UserID != userID {
		return util.ErrContentNotFound
	}
	return nil
}

// validateQuestion 题目入库前的基本校验
func validateQuestion(prompt string, kind model.QuestionKind, options []string, correctAnswer string) error {
	if prompt == "" {
		return errors.New("题目内容不能为空")
	}
	if !model.ValidKind(kind) {
		return errors.New("无效的题目类型: " + string(kind))
	}

	q := model.Question{Kind: kind}
	if q.IsChoiceKind() && len(options) < 2 {
		return errors.New("选择题至少需要两个选项")
	}
	if kind != model.KindFlashcard && correctAnswer == "" {
		return errors.New("标准答案不能为空")
	}
	return nil
}
