package service

import (
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/util"
	"math_tutor_backend/pkg/logger"

	"go.uber.org/zap"
)

type TeacherService struct {
	TeacherStore repository.TeacherStore
}

func NewTeacherService(teachers repository.TeacherStore) *TeacherService {
	return &TeacherService{TeacherStore: teachers}
}

// EnsureTeacher 按外部标识查找教师，首次出现时自动开通默认权限账号。
// 所有教师路由统一走这条路径，只有被停用的账号会被拒绝。
func (s *TeacherService) EnsureTeacher(externalID string) (*model.Teacher, error) {
	teacher, err := s.TeacherStore.FindByExternalID(externalID)
	if err == util.ErrNotFound {
		teacher = &model.Teacher{
			Name:           externalID,
			ExternalUserID: externalID,
			Role:           model.RoleTeacher,
			Permissions:    model.DefaultTeacherPermissions,
			IsActive:       true,
		}
		if createErr := s.TeacherStore.Create(teacher); createErr != nil {
			return nil, createErr
		}
		logger.Log.Info("teacher auto-provisioned", zap.String("externalUserId", externalID))
		return teacher, nil
	}
	if err != nil {
		return nil, err
	}

	if !teacher.IsActive {
		return nil, util.ErrTeacherInactive
	}
	return teacher, nil
}

// Bootstrap 启动时预创建配置指定的管理员教师，已存在则跳过
func (s *TeacherService) Bootstrap(externalID string) error {
	if externalID == "" {
		return nil
	}

	_, err := s.TeacherStore.FindByExternalID(externalID)
	if err == nil {
		return nil
	}
	if err != util.ErrNotFound {
		return err
	}

	teacher := &model.Teacher{
		Name:           externalID,
		ExternalUserID: externalID,
		Role:           model.RoleAdmin,
		Permissions:    append([]string{"manage_teachers"}, model.DefaultTeacherPermissions...),
		IsActive:       true,
	}
	if err := s.TeacherStore.Create(teacher); err != nil {
		return err
	}
	logger.Log.Info("bootstrap teacher created", zap.String("externalUserId", externalID))
	return nil
}
