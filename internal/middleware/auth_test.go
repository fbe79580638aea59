package middleware

import (
	"math_tutor_backend/internal/config"
	"math_tutor_backend/internal/model"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/pkg/logger"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

func secretRouter(secret string) *gin.Engine {
	cfg := &config.Config{}
	cfg.Share.Secret = secret

	router := gin.New()
	router.GET("/protected", SharedSecretMiddleware(cfg), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestSharedSecret_SkippedWhenUnconfigured(t *testing.T) {
	router := secretRouter("")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200 when no secret configured, got %d", w.Code)
	}
}

func TestSharedSecret_HeaderAndQuery(t *testing.T) {
	router := secretRouter("s3cret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "s3cret")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with header secret, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected?key=s3cret", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with query secret, got %d", w.Code)
	}
}

func TestSharedSecret_Rejections(t *testing.T) {
	router := secretRouter("s3cret")

	// 缺失
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without secret, got %d", w.Code)
	}

	// 大小写必须完全一致
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("X-API-Key", "S3CRET")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 on case mismatch, got %d", w.Code)
	}
}

func teacherRouter(store *repository.MemoryTeacherStore) *gin.Engine {
	teachers := service.NewTeacherService(store)

	router := gin.New()
	router.GET("/teacher/:teacherId", TeacherMiddleware(teachers), func(c *gin.Context) {
		teacher := GetTeacherFromContext(c)
		if teacher == nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.String(http.StatusOK, teacher.ExternalUserID)
	})
	return router
}

func TestTeacherMiddleware_AutoProvision(t *testing.T) {
	store := repository.NewMemoryTeacherStore()
	router := teacherRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teacher/teacher-001", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with auto-provision, got %d", w.Code)
	}

	teacher, err := store.FindByExternalID("teacher-001")
	if err != nil {
		t.Fatalf("teacher must be provisioned: %v", err)
	}
	if teacher.Role != model.RoleTeacher || !teacher.IsActive {
		t.Errorf("expected active default teacher, got %+v", teacher)
	}
}

func TestTeacherMiddleware_InactiveRejected(t *testing.T) {
	store := repository.NewMemoryTeacherStore()
	if err := store.Create(&model.Teacher{
		ExternalUserID: "teacher-002",
		Role:           model.RoleTeacher,
		IsActive:       false,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	router := teacherRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teacher/teacher-002", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for disabled teacher, got %d", w.Code)
	}
}

func TestTeacherMiddleware_MissingIdentity(t *testing.T) {
	store := repository.NewMemoryTeacherStore()
	teachers := service.NewTeacherService(store)

	router := gin.New()
	router.GET("/dashboard", TeacherMiddleware(teachers), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity, got %d", w.Code)
	}

	// 请求头里的标识同样被接受
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.Header.Set("X-Teacher-ID", "teacher-003")
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected 200 with header identity, got %d", w.Code)
	}
}
