package model

type TopicDifficulty string

const (
	DifficultyEasy   TopicDifficulty = "easy"
	DifficultyMedium TopicDifficulty = "medium"
	DifficultyHard   TopicDifficulty = "hard"
)

// Topic 主题目录，预留给后续的课程管理功能
type Topic struct {
	BaseModel
	Name          string          `gorm:"size:100;not null" json:"name"`
	Subject       string          `gorm:"size:50" json:"subject"`
	Description   string          `gorm:"type:text" json:"description"`
	Difficulty    TopicDifficulty `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	QuestionCount int             `gorm:"default:0" json:"questionCount"`
}

func (Topic) TableName() string {
	return "topics"
}
