package service

import (
	"math_tutor_backend/internal/model"
	"testing"
	"time"
)

func TestSweeper_SweepsOnStart(t *testing.T) {
	svc, solutions, _ := newTestSolutionService()

	created := time.Now().AddDate(0, 0, -31)

	// 直接塞一条已过期的记录
	err := solutions.Create(&model.Solution{
		ID:        "expired-1",
		Question:  "舊題目",
		Answer:    "舊解答",
		CreatedAt: created,
		ExpiresAt: created.AddDate(0, 0, 30),
	})
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	sweeper := NewSweeper(svc, time.Hour)
	sweeper.Start()
	sweeper.Stop()

	if _, err := solutions.FindByID("expired-1"); err == nil {
		t.Error("expired record must be gone after the initial sweep")
	}
}

func TestSweeper_StopTerminates(t *testing.T) {
	svc, _, _ := newTestSolutionService()

	sweeper := NewSweeper(svc, 10*time.Millisecond)
	sweeper.Start()

	done := make(chan struct{})
	go func() {
		sweeper.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not terminate the sweeper")
	}
}
