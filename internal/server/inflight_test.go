package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbun/nft-dashboard/internal/aggregate"
	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/internal/report"
)

// blockingReporter 在 release 关闭前阻塞报表计算
type blockingReporter struct {
	release chan struct{}
}

func (r *blockingReporter) Dashboard(sel filter.Selection) *report.Dashboard {
	<-r.release
	return &report.Dashboard{Selection: sel}
}

func (r *blockingReporter) Leaderboard(filter.Selection) *aggregate.Leaderboard {
	<-r.release
	return &aggregate.Leaderboard{}
}

func (r *blockingReporter) FilterOptions() filter.Options { return filter.Options{} }

func (r *blockingReporter) Warnings() []models.WinnerRecord { return nil }

func TestInflight_DuplicateClientRequestID(t *testing.T) {
	rep := &blockingReporter{release: make(chan struct{})}
	s, err := New("127.0.0.1:0", rep, 4)
	require.NoError(t, err)

	ts := httptest.NewServer(s.Handler())
	defer func() {
		ts.Close()
		_ = s.Stop(context.Background())
	}()

	var wg sync.WaitGroup
	echoed := make(chan string, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/dashboard", nil)
			if err != nil {
				return
			}
			req.Header.Set(RequestIDHeader, "same-id")
			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return
			}
			resp.Body.Close()
			echoed <- resp.Header.Get(RequestIDHeader)
		}()
	}

	require.Eventually(t, func() bool {
		return s.requestStatus().InFlight == 2
	}, 2*time.Second, 10*time.Millisecond)

	close(rep.release)
	wg.Wait()
	close(echoed)

	for id := range echoed {
		assert.Equal(t, "same-id", id)
	}
	assert.Eventually(t, func() bool {
		return s.requestStatus().InFlight == 0
	}, 2*time.Second, 10*time.Millisecond)
}
