package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// ReportCache 按筛选条件缓存计算结果，使用 go-cache 实现 TTL 自动过期
type ReportCache[T any] struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewReportCache 清理间隔为 2×TTL；ttl <= 0 时禁用缓存
func NewReportCache[T any](ttl time.Duration) *ReportCache[T] {
	c := &ReportCache[T]{ttl: ttl}
	if ttl > 0 {
		c.cache = cache.New(ttl, ttl*2)
	}
	return c
}

func (c *ReportCache[T]) Get(key string) (T, bool) {
	var zero T
	if c.cache == nil {
		return zero, false
	}
	v, ok := c.cache.Get(key)
	if !ok {
		return zero, false
	}
	return v.(T), true
}

func (c *ReportCache[T]) Set(key string, value T) {
	if c.cache == nil {
		return
	}
	c.cache.Set(key, value, cache.DefaultExpiration)
}

// Stats 获取统计信息
func (c *ReportCache[T]) Stats() map[string]any {
	count := 0
	if c.cache != nil {
		count = c.cache.ItemCount()
	}
	return map[string]any{
		"item_count":  count,
		"ttl_seconds": c.ttl.Seconds(),
	}
}
