package service

import (
	"fmt"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/util"
	"math_tutor_backend/pkg/logger"
	"math_tutor_backend/pkg/monitoring"
	"strings"
	"time"

	"go.uber.org/zap"
)

type SolutionService struct {
	SolutionStore repository.SolutionStore
	StudentStore  repository.StudentStore
	BaseDomain    string
	Clock         func() time.Time
}

func NewSolutionService(solutions repository.SolutionStore, students repository.StudentStore, baseDomain string) *SolutionService {
	return &SolutionService{
		SolutionStore: solutions,
		StudentStore:  students,
		BaseDomain:    strings.TrimSuffix(baseDomain, "/"),
		Clock:         time.Now,
	}
}

type CreateSolutionResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateSolution 生成解答记录并返回分享链接；带外部用户标识时同步学生档案
func (s *SolutionService) CreateSolution(question, answer, externalUserID string) (*CreateSolutionResult, error) {
	question = strings.TrimSpace(question)
	answer = strings.TrimSpace(answer)

	if question == "" {
		return nil, util.ErrEmptyQuestion
	}
	if answer == "" {
		return nil, util.ErrEmptyAnswer
	}

	now := s.Clock()
	fields := ExtractFields(answer)

	solution := &model.Solution{
		ID:          model.GenerateUUID(),
		Question:    question,
		Answer:      answer,
		StudentName: fields.StudentName,
		Subject:     fields.Subject,
		Topic:       fields.Topic,
		CreatedAt:   now,
		ExpiresAt:   now.AddDate(0, 0, util.SolutionTTLDays),
		ViewCount:   0,
	}

	if err := s.SolutionStore.Create(solution); err != nil {
		return nil, err
	}

	if externalUserID != "" {
		student, err := s.upsertStudent(externalUserID, fields, now)
		if err != nil {
			// 学生档案失败不影响解答记录本身
			logger.Log.Warn("student profile update failed",
				zap.String("externalUserId", externalUserID),
				zap.Error(err))
		} else if err := s.SolutionStore.UpdateStudentID(solution.ID, student.ID); err != nil {
			logger.Log.Warn("student backfill failed", zap.String("solutionId", solution.ID), zap.Error(err))
		}
	}

	monitoring.SolutionCreated.Inc()

	return &CreateSolutionResult{
		ID:  solution.ID,
		URL: s.DisplayURL(solution.ID),
	}, nil
}

// GetSolution 读取解答记录并累加浏览次数；已过期的记录视同不存在
func (s *SolutionService) GetSolution(id string) (*model.Solution, error) {
	solution, err := s.SolutionStore.FindByID(id)
	if err != nil {
		return nil, err
	}

	if solution.Expired(s.Clock()) {
		return nil, util.ErrSolutionExpired
	}

	if err := s.SolutionStore.IncrementViewCount(id); err != nil {
		return nil, err
	}
	solution.ViewCount++

	monitoring.SolutionViews.Inc()
	return solution, nil
}

// SweepExpired 删除所有已过期的解答记录，返回删除条数
func (s *SolutionService) SweepExpired() (int64, error) {
	deleted, err := s.SolutionStore.DeleteExpired(s.Clock())
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		monitoring.SolutionsSwept.Add(float64(deleted))
		logger.Log.Info("expired solutions swept", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func (s *SolutionService) DisplayURL(id string) string {
	return fmt.Sprintf("%s/display/%s", s.BaseDomain, id)
}

func (s *SolutionService) upsertStudent(externalUserID string, fields ExtractedFields, now time.Time) (*model.Student, error) {
	student, err := s.StudentStore.FindByExternalID(externalUserID)
	if err == util.ErrNotFound {
		student = &model.Student{
			Name:              fields.StudentName,
			ExternalUserID:    externalUserID,
			FirstQuestionDate: now,
			LastQuestionDate:  now,
			TotalQuestions:    1,
			Subjects:          []string{fields.Subject},
			Topics:            []string{fields.Topic},
			IsActive:          true,
		}
		if err := s.StudentStore.Create(student); err != nil {
			return nil, err
		}
		return student, nil
	}
	if err != nil {
		return nil, err
	}

	student.TotalQuestions++
	student.LastQuestionDate = now
	student.AddSubject(fields.Subject)
	student.AddTopic(fields.Topic)
	if student.Name == util.AnonymousStudent && fields.StudentName != util.AnonymousStudent {
		student.Name = fields.StudentName
	}

	if err := s.StudentStore.Update(student); err != nil {
		return nil, err
	}
	return student, nil
}
