package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/lbun/nft-dashboard/internal/aggregate"
	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/internal/monitor"
	"github.com/lbun/nft-dashboard/internal/report"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

const RequestIDHeader = "X-Request-Id"

type inflightRequest struct {
	Route   string
	Started time.Time
}

// statusRecorder 记录响应码用于指标
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)

		// 客户端传入的 id 可能重复，登记表用服务端生成的 key
		key := uuid.New().String()
		start := time.Now()
		s.inflight.Store(key, inflightRequest{Route: route, Started: start})
		defer s.inflight.Delete(key)

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)

		monitor.IncHTTPRequest(route, strconv.Itoa(rec.code))
		logger.Debug().
			Str("request_id", id).
			Str("route", route).
			Str("query", r.URL.RawQuery).
			Int("code", rec.code).
			Dur("took", time.Since(start)).
			Msg("api request")
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error().Err(err).Msg("encode response failed")
		http.Error(w, "encode response failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(data)
}

type errorBody struct {
	Error string `json:"error"`
}

func selection(r *http.Request) filter.Selection {
	q := r.URL.Query()
	return filter.Selection{Equipment: q.Get("equipment"), Owner: q.Get("owner")}.Normalize()
}

func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "method not allowed"})
		return false
	}
	return true
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	sel := selection(r)

	monitor.AddReportsInFlight(1)
	d, err := compute(r.Context(), s.pool, func() *report.Dashboard { return s.reporter.Dashboard(sel) })
	monitor.AddReportsInFlight(-1)
	if err != nil {
		monitor.ObserveReport("dashboard", "error", 0)
		logger.Warn().Err(err).Str("selection", sel.Key()).Msg("dashboard request aborted")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, d)
}

func (s *Server) leaderboardHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	sel := selection(r)

	monitor.AddReportsInFlight(1)
	b, err := compute(r.Context(), s.pool, func() *aggregate.Leaderboard { return s.reporter.Leaderboard(sel) })
	monitor.AddReportsInFlight(-1)
	if err != nil {
		monitor.ObserveReport("leaderboard", "error", 0)
		logger.Warn().Err(err).Str("selection", sel.Key()).Msg("leaderboard request aborted")
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, b)
}

func (s *Server) filtersHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, s.reporter.FilterOptions())
}

type warningsBody struct {
	Count     int                   `json:"count"`
	Unmatched []models.WinnerRecord `json:"unmatched"`
}

func (s *Server) warningsHandler(w http.ResponseWriter, r *http.Request) {
	if !allowGet(w, r) {
		return
	}
	unmatched := s.reporter.Warnings()
	if unmatched == nil {
		unmatched = []models.WinnerRecord{}
	}
	writeJSON(w, http.StatusOK, warningsBody{Count: len(unmatched), Unmatched: unmatched})
}
