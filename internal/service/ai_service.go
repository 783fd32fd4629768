package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"smart_recall_backend/internal/config"
	"strings"
)

// AIService 调用 OpenAI 兼容接口对自由文本答案评分
type AIService struct {
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// JudgeResult AI 评分返回：百分比 0-100、理由与改进建议
type JudgeResult struct {
	Percentage  float64 `json:"percentage"`
	Rationale   string  `json:"rationale"`
	Suggestions string  `json:"suggestions"`
}

const judgeSystemPrompt = "你是一个严谨的学习测验评分助手。根据题目、参考材料和标准答案评估学生的作答，" +
	"只输出一个 JSON 对象，格式为：{\"percentage\": <0到100的数字>, \"rationale\": \"<简短评分理由>\", \"suggestions\": \"<改进建议>\"}。" +
	"不要输出任何其他内容。"

// JudgeAnswer 请求 AI 对学生答案评分。超时與取消由 ctx 控制
func (s *AIService) JudgeAnswer(ctx context.Context, prompt, correctAnswer, studentAnswer, referenceContent string) (*JudgeResult, error) {
	userContent := fmt.Sprintf("题目：%s\n标准答案：%s\n学生作答：%s", prompt, correctAnswer, studentAnswer)
	if referenceContent != "" {
		userContent = fmt.Sprintf("参考材料：\n%s\n\n%s", referenceContent, userContent)
	}

	messages := []AIChatMessage{
		{Role: "system", Content: judgeSystemPrompt},
		{Role: "user", Content: userContent},
	}

	reqBody := ChatCompletionRequest{
		Model:    s.config.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.config.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.config.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("AI returned no choices")
	}

	return parseJudgeResult(result.Choices[0].Message.Content)
}

// parseJudgeResult 解析模型输出的 JSON，兼容代码块围栏
func parseJudgeResult(raw string) (*JudgeResult, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var jr JudgeResult
	if err := json.Unmarshal([]byte(cleaned), &jr); err != nil {
		return nil, fmt.Errorf("parse judge response: %w (raw: %s)", err, raw)
	}

	if jr.Percentage < 0 {
		jr.Percentage = 0
	}
	if jr.Percentage > 100 {
		jr.Percentage = 100
	}

	return &jr, nil
}
