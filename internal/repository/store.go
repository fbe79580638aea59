package repository

import (
	"math_tutor_backend/internal/model"
	"time"
)

// SolutionStore 解答记录的持久化接口，MySQL 与内存两种实现
type SolutionStore interface {
	Create(s *model.Solution) error
	FindByID(id string) (*model.Solution, error)
	IncrementViewCount(id string) error
	UpdateStudentID(id string, studentID uint) error
	DeleteExpired(before time.Time) (int64, error)
	FindByDateRange(start, end time.Time) ([]model.Solution, error)
}

type StudentStore interface {
	FindByExternalID(externalID string) (*model.Student, error)
	Create(st *model.Student) error
	Update(st *model.Student) error
}

type TeacherStore interface {
	FindByExternalID(externalID string) (*model.Teacher, error)
	Create(t *model.Teacher) error
}
