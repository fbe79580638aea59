package repository

import (
	"errors"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type SolutionRepository struct {
	DB *gorm.DB
}

func NewSolutionRepository(db *gorm.DB) *SolutionRepository {
	return &SolutionRepository{DB: db}
}

func (r *SolutionRepository) Create(s *model.Solution) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	return r.DB.Create(s).Error
}

func (r *SolutionRepository) FindByID(id string) (*model.Solution, error) {
	var solution model.Solution
	err := r.DB.Where("id = ?", id).First(&solution).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &solution, nil
}

func (r *SolutionRepository) IncrementViewCount(id string) error {
	return r.DB.Model(&model.Solution{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + ?", 1)).
		Error
}

func (r *SolutionRepository) UpdateStudentID(id string, studentID uint) error {
	return r.DB.Model(&model.Solution{}).
		Where("id = ?", id).
		Update("student_id", studentID).
		Error
}

func (r *SolutionRepository) DeleteExpired(before time.Time) (int64, error) {
	result := r.DB.Where("expires_at < ?", before).Delete(&model.Solution{})
	return result.RowsAffected, result.Error
}

func (r *SolutionRepository) FindByDateRange(start, end time.Time) ([]model.Solution, error) {
	var solutions []model.Solution
	err := r.DB.Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&solutions).Error
	return solutions, err
}
