package model

import (
	"time"
)

// Student 按外部用户标识聚合的学生档案，随每次提交更新
type Student struct {
	BaseModel
	Name              string    `gorm:"size:100;not null" json:"name"`
	ExternalUserID    string    `gorm:"size:100;unique;not null" json:"externalUserId"`
	FirstQuestionDate time.Time `json:"firstQuestionDate"`
	LastQuestionDate  time.Time `json:"lastQuestionDate"`
	TotalQuestions    int       `gorm:"default:0" json:"totalQuestions"`
	Subjects          []string  `gorm:"type:json;serializer:json" json:"subjects"`
	Topics            []string  `gorm:"type:json;serializer:json" json:"topics"`
	IsActive          bool      `gorm:"default:true" json:"isActive"`
}

func (Student) TableName() string {
	return "students"
}

// AddSubject 并入学科集合，保持去重
func (s *Student) AddSubject(subject string) {
	for _, v := range s.Subjects {
		if v == subject {
			return
		}
	}
	s.Subjects = append(s.Subjects, subject)
}

// AddTopic 并入主题集合，保持去重
func (s *Student) AddTopic(topic string) {
	for _, v := range s.Topics {
		if v == topic {
			return
		}
	}
	s.Topics = append(s.Topics, topic)
}
