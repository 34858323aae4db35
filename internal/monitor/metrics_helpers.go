package monitor

// 便捷函数供外部调用，无需访问 Metrics 实例

func IncSourceLoad(status string) {
	GetMetrics().IncSourceLoad(status)
}

func SetSourceRows(table string, rows int) {
	GetMetrics().SetSourceRows(table, rows)
}

func SetUnmatchedWinners(count int) {
	GetMetrics().SetUnmatchedWinners(count)
}

func IncCacheHit(cacheType string) {
	GetMetrics().IncCacheHit(cacheType)
}

func IncCacheMiss(cacheType string) {
	GetMetrics().IncCacheMiss(cacheType)
}

func ObserveReport(kind, status string, seconds float64) {
	GetMetrics().ObserveReport(kind, status, seconds)
}

func IncHTTPRequest(route, code string) {
	GetMetrics().IncHTTPRequest(route, code)
}

func AddReportsInFlight(delta float64) {
	GetMetrics().AddReportsInFlight(delta)
}
