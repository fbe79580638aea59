package repository

import (
	"errors"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/util"
	"time"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

func (r *StudentRepository) FindByExternalID(externalID string) (*model.Student, error) {
	var student model.Student
	err := r.DB.Where("external_user_id = ?", externalID).First(&student).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *StudentRepository) Create(st *model.Student) error {
	now := time.Now()
	if st.CreatedAt.IsZero() {
		st.CreatedAt = now
	}
	if st.UpdatedAt.IsZero() {
		st.UpdatedAt = now
	}
	return r.DB.Create(st).Error
}

func (r *StudentRepository) Update(st *model.Student) error {
	return r.DB.Save(st).Error
}
