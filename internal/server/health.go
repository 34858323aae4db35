package server

import (
	"net/http"
	"time"
)

// HealthStatus 健康状态
type HealthStatus struct {
	Healthy      bool          `json:"healthy"`
	HealthySince string        `json:"healthy_since"`
	Uptime       string        `json:"uptime"`
	Workers      WorkerStatus  `json:"workers"`
	Requests     RequestStatus `json:"requests"`
	Warnings     int           `json:"unmatched_winners"`
}

// RequestStatus 正在处理的 API 请求
type RequestStatus struct {
	InFlight      int64   `json:"in_flight"`
	OldestSeconds float64 `json:"oldest_seconds"`
}

// WorkerStatus 报表协程池状态
type WorkerStatus struct {
	Running int `json:"running"`
	Free    int `json:"free"`
	Cap     int `json:"cap"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	status := s.getHealthStatus()
	code := http.StatusOK
	if !status.Healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (s *Server) readyHandler(w http.ResponseWriter, r *http.Request) {
	if !s.isReady() {
		http.Error(w, "not ready", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) liveHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// isReady 报表源已加载且协程池未关闭
func (s *Server) isReady() bool {
	s.mu.RLock()
	healthy := s.healthy
	s.mu.RUnlock()

	return healthy && !s.pool.IsClosed()
}

func (s *Server) getHealthStatus() HealthStatus {
	s.mu.RLock()
	healthy := s.healthy
	healthySince := s.healthySince
	s.mu.RUnlock()

	warnings := 0
	if s.reporter != nil {
		warnings = len(s.reporter.Warnings())
	}

	return HealthStatus{
		Healthy:      healthy,
		HealthySince: healthySince.Format(time.RFC3339),
		Uptime:       time.Since(s.startTime).String(),
		Workers: WorkerStatus{
			Running: s.pool.Running(),
			Free:    s.pool.Free(),
			Cap:     s.pool.Cap(),
		},
		Requests: s.requestStatus(),
		Warnings: warnings,
	}
}

func (s *Server) requestStatus() RequestStatus {
	status := RequestStatus{InFlight: s.inflight.Len()}
	s.inflight.Range(func(_ string, req inflightRequest) bool {
		if age := time.Since(req.Started).Seconds(); age > status.OldestSeconds {
			status.OldestSeconds = age
		}
		return true
	})
	return status
}
