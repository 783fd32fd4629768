package util

import "errors"

var (
	ErrUserNotFound    = errors.New("用户不存在")
	ErrEmailRegistered = errors.New("该邮箱已被注册")

	ErrContentNotFound  = errors.New("content not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrSessionNotFound  = errors.New("session not found")

	// 会话结构性错误：直接返回给调用方，无重试语义
	ErrEmptyQuestionSet        = errors.New("question set is empty")
	ErrSessionAlreadyCompleted = errors.New("session already completed")
	ErrSessionNotCompleted     = errors.New("session not completed")

	// ErrGradingUnavailable AI 评分不可用；内部通过确定性降级吸收，不向调用方暴露
	ErrGradingUnavailable = errors.New("ai grading unavailable")

	// ErrInvalidQuestionIndex 不变量被破坏时的内部一致性错误，属编程错误级故障
	ErrInvalidQuestionIndex = errors.New("question index out of range")
)
