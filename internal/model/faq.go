package model

import "time"

// FAQ 对应 faqs 表，是模型回答的唯一事实来源。
type FAQ struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	CreatedAt time.Time `gorm:"precision:3;not null;index" json:"createdAt"`
}

func (FAQ) TableName() string {
	return "faqs"
}
