package middleware

import (
	"crypto/subtle"
	"errors"
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// SharedSecretMiddleware 共享密钥校验，密钥未配置时直接放行
func SharedSecretMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		secret := cfg.Share.Secret
		if secret == "" {
			c.Next()
			return
		}

		provided := c.GetHeader("X-API-Key")
		if provided == "" {
			provided = c.Query("key")
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}

// TeacherMiddleware 教师身份校验：按外部标识查找，首次出现自动开通，
// 停用账号拒绝访问。标识取路由参数，页面外的接口也接受请求头或查询参数。
func TeacherMiddleware(teachers *service.TeacherService) gin.HandlerFunc {
	return func(c *gin.Context) {
		teacherID := c.Param("teacherId")
		if teacherID == "" {
			teacherID = c.GetHeader("X-Teacher-ID")
		}
		if teacherID == "" {
			teacherID = c.Query("teacherId")
		}

		if teacherID == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		teacher, err := teachers.EnsureTeacher(teacherID)
		if err != nil {
			if errors.Is(err, util.ErrTeacherInactive) {
				util.Forbidden(c)
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		c.Set("teacher", teacher)
		c.Next()
	}
}

// GetTeacherFromContext 取出中间件放入的教师对象
func GetTeacherFromContext(c *gin.Context) *model.Teacher {
	value, exists := c.Get("teacher")
	if !exists {
		return nil
	}
	teacher, ok := value.(*model.Teacher)
	if !ok {
		return nil
	}
	return teacher
}
