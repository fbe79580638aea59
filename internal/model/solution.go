package model

import (
	"time"
)

// Solution 存储一道数学题目与 AI 生成的解答，通过分享链接访问
type Solution struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Question    string    `gorm:"type:text;not null" json:"question"`
	Answer      string    `gorm:"type:text;not null" json:"answer"`
	StudentID   *uint     `gorm:"index" json:"studentId,omitempty"`
	StudentName string    `gorm:"size:100" json:"studentName"`
	Subject     string    `gorm:"size:50" json:"subject"`
	Topic       string    `gorm:"size:100;index" json:"topic"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
	ExpiresAt   time.Time `gorm:"index" json:"expiresAt"`
	ViewCount   int       `gorm:"default:0" json:"viewCount"`
}

func (Solution) TableName() string {
	return "solutions"
}

// Expired 判断记录在给定时刻是否已过期
func (s *Solution) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
