package model

// Content 用户的学习内容，题目挂在内容下；Body 同时作为 AI 评分的参考材料
// swagger:model Content
type Content struct {
	UUIDBase
	UserID      uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Kind        string `gorm:"size:50;default:'free_text'" json:"kind"` // free_text, vocabulary, concept_notes
	Body        string `gorm:"type:text" json:"body"`
}

func (Content) TableName() string {
	return "contents"
}
