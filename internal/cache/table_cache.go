package cache

import (
	"github.com/lbun/nft-dashboard/pkg/concurrent"
)

// TableCache 源表读穿缓存，无过期，进程重启才失效
type TableCache[T any] struct {
	entries concurrent.Map[string, T]
}

func NewTableCache[T any]() *TableCache[T] {
	return &TableCache[T]{}
}

// GetOrLoad 命中直接返回；未命中调用 load，失败不缓存
// 并发未命中时可能重复加载，但只保留第一次写入的结果
func (c *TableCache[T]) GetOrLoad(key string, load func() (T, error)) (T, bool, error) {
	if v, ok := c.entries.Load(key); ok {
		return v, true, nil
	}

	v, err := load()
	if err != nil {
		var zero T
		return zero, false, err
	}

	actual, _ := c.entries.LoadOrStore(key, v)
	return actual, false, nil
}

func (c *TableCache[T]) Len() int64 {
	return c.entries.Len()
}
