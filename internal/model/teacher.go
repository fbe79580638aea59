package model

type TeacherRole string

const (
	RoleAdmin   TeacherRole = "admin"
	RoleTeacher TeacherRole = "teacher"
)

// 默认权限集，自动开通的教师账号使用
var DefaultTeacherPermissions = []string{"view_dashboard", "view_students", "view_analysis"}

// Teacher 教师账号，按外部标识查找，首次访问时可自动开通
type Teacher struct {
	BaseModel
	Name           string      `gorm:"size:100" json:"name"`
	ExternalUserID string      `gorm:"size:100;unique;not null" json:"externalUserId"`
	Role           TeacherRole `gorm:"type:enum('admin','teacher');default:'teacher'" json:"role"`
	Permissions    []string    `gorm:"type:json;serializer:json" json:"permissions"`
	IsActive       bool        `gorm:"default:true" json:"isActive"`
}

func (Teacher) TableName() string {
	return "teachers"
}
