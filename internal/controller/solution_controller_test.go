package controller

import (
	"encoding/json"
	"html/template"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/service"
	"math_tutor_backend/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
}

const testTemplates = `
{{ define "solution.html" }}<html>{{ .Solution.Topic }}|{{ .Solution.ViewCount }}</html>{{ end }}
{{ define "not_found.html" }}<html>{{ .Title }}</html>{{ end }}
`

func newTestRouter() (*gin.Engine, *service.SolutionService) {
	solutions := repository.NewMemorySolutionStore()
	students := repository.NewMemoryStudentStore()
	svc := service.NewSolutionService(solutions, students, "https://share.example.com")

	router := gin.New()
	router.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))

	ctrl := NewSolutionController(svc)
	router.POST("/api/create-solution", ctrl.CreateSolution)
	router.GET("/display/:id", ctrl.Display)
	return router, svc
}

func TestCreateSolution_Endpoint(t *testing.T) {
	router, _ := newTestRouter()

	body := `{"question":"求解 x^2-5x+6=0","answer":"學生名稱: 小明\n主題: 二次函數"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/create-solution", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
		URL     string `json:"url"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if !resp.Success || resp.ID == "" {
		t.Errorf("unexpected response: %+v", resp)
	}
	if !strings.HasSuffix(resp.URL, "/display/"+resp.ID) {
		t.Errorf("url must point at the display route, got %q", resp.URL)
	}
}

func TestCreateSolution_EndpointValidation(t *testing.T) {
	router, _ := newTestRouter()

	for _, body := range []string{
		`{"answer":"只有解答"}`,
		`{"question":"只有題目"}`,
		`{"question":"  ","answer":"解答"}`,
	} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/create-solution", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestDisplay_RendersSolution(t *testing.T) {
	router, svc := newTestRouter()

	result, err := svc.CreateSolution("題目", "主題: 三角形", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/display/"+result.ID, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "三角形|1") {
		t.Errorf("rendered page must show topic and view count, got %s", w.Body.String())
	}
}

func TestDisplay_UnknownID(t *testing.T) {
	router, _ := newTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/display/unknown-id", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}
