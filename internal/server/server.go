package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lbun/nft-dashboard/internal/aggregate"
	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/internal/report"
	"github.com/lbun/nft-dashboard/pkg/concurrent"
	"github.com/lbun/nft-dashboard/pkg/goplus"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

// Reporter 报表计算方，由 report.Pipeline 实现
type Reporter interface {
	Dashboard(sel filter.Selection) *report.Dashboard
	Leaderboard(sel filter.Selection) *aggregate.Leaderboard
	FilterOptions() filter.Options
	Warnings() []models.WinnerRecord
}

// Server 报表 HTTP 服务，同时提供健康检查和指标
type Server struct {
	addr         string
	reporter     Reporter
	pool         *ants.Pool
	server       *http.Server
	listeners    goplus.WaitGroup
	inflight     concurrent.Map[string, inflightRequest]
	mu           sync.RWMutex
	healthy      bool
	healthySince time.Time
	startTime    time.Time
}

// New maxReports 限制同时计算的报表数量
func New(addr string, reporter Reporter, maxReports int) (*Server, error) {
	if maxReports <= 0 {
		maxReports = 8
	}
	pool, err := ants.NewPool(maxReports, ants.WithPanicHandler(func(p any) {
		logger.Error().Interface("panic", p).Msg("report worker panic")
	}))
	if err != nil {
		return nil, fmt.Errorf("create report pool: %w", err)
	}

	return &Server{
		addr:         addr,
		reporter:     reporter,
		pool:         pool,
		healthy:      reporter != nil,
		healthySince: time.Now(),
		startTime:    time.Now(),
	}, nil
}

// Handler 路由
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.healthHandler)
	mux.HandleFunc("/health/ready", s.readyHandler)
	mux.HandleFunc("/health/live", s.liveHandler)
	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/api/dashboard", s.instrument("/api/dashboard", s.dashboardHandler))
	mux.HandleFunc("/api/leaderboard", s.instrument("/api/leaderboard", s.leaderboardHandler))
	mux.HandleFunc("/api/filters", s.instrument("/api/filters", s.filtersHandler))
	mux.HandleFunc("/api/warnings", s.instrument("/api/warnings", s.warningsHandler))

	return mux
}

// Start 后台监听，立即返回
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	logger.Info().Str("addr", s.addr).Msg("dashboard server starting")

	s.listeners.Go(func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("dashboard server error")
		}
	})

	return nil
}

// Stop 先标记不健康，再关闭监听和协程池
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.healthy = false
	s.mu.Unlock()

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
		s.listeners.Wait()
	}
	s.pool.Release()
	return err
}

// compute 在协程池中执行报表计算并等待结果
func compute[T any](ctx context.Context, pool *ants.Pool, fn func() T) (T, error) {
	var zero T
	done := make(chan T, 1)

	if err := pool.Submit(func() { done <- fn() }); err != nil {
		return zero, err
	}

	select {
	case v := <-done:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
