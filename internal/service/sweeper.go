package service

import (
	"math_tutor_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
)

// Sweeper 过期记录清理任务。随应用生命周期启停，而不是挂在全局定时器上；
// 删除是按集合条件执行的，重复或重叠运行不会破坏数据。
type Sweeper struct {
	Service  *SolutionService
	Interval time.Duration

	stop chan struct{}
	done chan struct{}
}

func NewSweeper(service *SolutionService, interval time.Duration) *Sweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Sweeper{
		Service:  service,
		Interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Sweeper) Start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()

		// 启动时先清一轮，不等第一个周期
		s.sweep()

		for {
			select {
			case <-ticker.C:
				s.sweep()
			case <-s.stop:
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	close(s.stop)
	<-s.done
}

func (s *Sweeper) sweep() {
	if _, err := s.Service.SweepExpired(); err != nil {
		logger.Log.Error("expiry sweep failed", zap.Error(err))
	}
}
