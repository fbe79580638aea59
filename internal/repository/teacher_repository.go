package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/util"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const teacherCacheTTL = 5 * time.Minute

// TeacherRepository 教师查找带 Redis 缓存，rdb 为 nil 时直接走数据库
type TeacherRepository struct {
	DB  *gorm.DB
	RDB *redis.Client
}

func NewTeacherRepository(db *gorm.DB, rdb *redis.Client) *TeacherRepository {
	return &TeacherRepository{DB: db, RDB: rdb}
}

func teacherCacheKey(externalID string) string {
	return fmt.Sprintf("teacher:ext:%s", externalID)
}

func (r *TeacherRepository) FindByExternalID(externalID string) (*model.Teacher, error) {
	ctx := context.Background()

	if r.RDB != nil {
		if cached, err := r.RDB.Get(ctx, teacherCacheKey(externalID)).Result(); err == nil {
			var teacher model.Teacher
			if jsonErr := json.Unmarshal([]byte(cached), &teacher); jsonErr == nil {
				return &teacher, nil
			}
		}
	}

	var teacher model.Teacher
	err := r.DB.Where("external_user_id = ?", externalID).First(&teacher).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if r.RDB != nil {
		if data, jsonErr := json.Marshal(&teacher); jsonErr == nil {
			r.RDB.Set(ctx, teacherCacheKey(externalID), data, teacherCacheTTL)
		}
	}

	return &teacher, nil
}

func (r *TeacherRepository) Create(t *model.Teacher) error {
	if err := r.DB.Create(t).Error; err != nil {
		return err
	}
	if r.RDB != nil {
		r.RDB.Del(context.Background(), teacherCacheKey(t.ExternalUserID))
	}
	return nil
}
