package controller

import (
	"encoding/json"
	"smart_recall_backend/internal/model"

	"github.com/gin-gonic/gin"
)

// sanitizeQuestion 答题过程中下发题目时剥离答案与解析
func sanitizeQuestion(q *model.Question) gin.H {
	var options []string
	if q.Options != "" {
		_ = json.Unmarshal([]byte(q.Options), &options)
	}
	return gin.H{
		"id":      q.ID,
		"prompt":  q.Prompt,
		"kind":    q.Kind,
		"options": options,
		"order":   q.Order,
	}
}
