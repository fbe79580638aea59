package service

import (
	"errors"
	"math_tutor_backend/internal/repository"
	"math_tutor_backend/internal/util"
	"math_tutor_backend/pkg/logger"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func init() {
	logger.Log = zap.NewNop()
}

func newTestSolutionService() (*SolutionService, *repository.MemorySolutionStore, *repository.MemoryStudentStore) {
	solutions := repository.NewMemorySolutionStore()
	students := repository.NewMemoryStudentStore()
	svc := NewSolutionService(solutions, students, "https://share.example.com")
	return svc, solutions, students
}

func TestCreateSolution_ThenGet(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	result, err := svc.CreateSolution("  求解 x^2-5x+6=0  ", "學生名稱: 小明\n學科: 數學\n主題: 二次函數\n回覆: x=2或x=3", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ID == "" {
		t.Fatal("expected a generated id")
	}
	if result.URL != "https://share.example.com/display/"+result.ID {
		t.Errorf("unexpected url %q", result.URL)
	}

	solution, err := svc.GetSolution(result.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution.Question != "求解 x^2-5x+6=0" {
		t.Errorf("question not trimmed: %q", solution.Question)
	}
	if solution.StudentName != "小明" || solution.Subject != "數學" || solution.Topic != "二次函數" {
		t.Errorf("extraction mismatch: %+v", solution)
	}
	if solution.ViewCount != 1 {
		t.Errorf("expected viewCount 1 after first read, got %d", solution.ViewCount)
	}
	if !solution.ExpiresAt.After(solution.CreatedAt) {
		t.Error("expiresAt must be after createdAt")
	}

	// 每次读取再加一
	solution, err = svc.GetSolution(result.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if solution.ViewCount != 2 {
		t.Errorf("expected viewCount 2 after second read, got %d", solution.ViewCount)
	}
}

func TestCreateSolution_Validation(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	if _, err := svc.CreateSolution("   ", "answer", ""); !errors.Is(err, util.ErrEmptyQuestion) {
		t.Errorf("expected ErrEmptyQuestion, got %v", err)
	}
	if _, err := svc.CreateSolution("question", "\n\t ", ""); !errors.Is(err, util.ErrEmptyAnswer) {
		t.Errorf("expected ErrEmptyAnswer, got %v", err)
	}
}

func TestGetSolution_UnknownID(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	_, err := svc.GetSolution("unknown-id")
	if !util.IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestGetSolution_ExpiredTreatedAsAbsent(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	now := time.Now()
	svc.Clock = func() time.Time { return now }

	result, err := svc.CreateSolution("題目", "解答內容", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 过期后即使还没被清理也不可见
	svc.Clock = func() time.Time { return now.AddDate(0, 0, 31) }

	_, err = svc.GetSolution(result.ID)
	if !util.IsNotFound(err) {
		t.Errorf("expected not-found for expired record, got %v", err)
	}
}

func TestSweepExpired_Idempotent(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	now := time.Now()
	svc.Clock = func() time.Time { return now }

	if _, err := svc.CreateSolution("舊題目", "舊解答", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateSolution("新題目", "新解答", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 推进到前两条过期之后再建一条未过期的
	svc.Clock = func() time.Time { return now.AddDate(0, 0, 31) }
	later, err := svc.CreateSolution("更新題目", "更新解答", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deleted, err := svc.SweepExpired()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 2 {
		t.Errorf("expected 2 expired records deleted, got %d", deleted)
	}

	deleted, err = svc.SweepExpired()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 0 {
		t.Errorf("second sweep with no new expirations must delete 0, got %d", deleted)
	}

	if _, err := svc.GetSolution(later.ID); err != nil {
		t.Errorf("unexpired record must survive the sweep: %v", err)
	}
}

func TestCreateSolution_StudentProfileAccumulates(t *testing.T) {
	svc, _, students := newTestSolutionService()

	if _, err := svc.CreateSolution("題目一", "學生名稱: 小明\n主題: 二次函數", "line-user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.CreateSolution("題目二", "學生名稱: 小明\n這題用勾股定理", "line-user-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	student, err := students.FindByExternalID("line-user-1")
	if err != nil {
		t.Fatalf("student profile missing: %v", err)
	}
	if student.TotalQuestions != 2 {
		t.Errorf("expected totalQuestions 2, got %d", student.TotalQuestions)
	}

	topics := strings.Join(student.Topics, ",")
	if !strings.Contains(topics, "二次函數") || !strings.Contains(topics, "三角形") {
		t.Errorf("topics set must contain both topics, got %v", student.Topics)
	}
	if student.FirstQuestionDate.After(student.LastQuestionDate) {
		t.Error("firstQuestionDate must not be after lastQuestionDate")
	}
}

func TestCreateSolution_BackfillsStudentID(t *testing.T) {
	svc, solutions, students := newTestSolutionService()

	result, err := svc.CreateSolution("題目", "學生名稱: 小明", "line-user-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stored, err := solutions.FindByID(result.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	student, err := students.FindByExternalID("line-user-9")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.StudentID == nil || *stored.StudentID != student.ID {
		t.Errorf("solution must reference the student record, got %v", stored.StudentID)
	}
}
