package goplus

import (
	"sync"
	"sync/atomic"
)

var (
	defaultGroup     *WaitGroup
	defaultGroupOnce sync.Once
)

func DefaultGroup() *WaitGroup {
	defaultGroupOnce.Do(func() {
		defaultGroup = &WaitGroup{}
	})
	return defaultGroup
}

// Go 在默认组中启动协程，panic 会被 Recover 记录
func Go(fn func()) {
	DefaultGroup().Go(fn)
}

type WaitGroup struct {
	wg      sync.WaitGroup
	running atomic.Int64
}

func (s *WaitGroup) Go(fn func()) {
	s.running.Add(1)
	s.wg.Add(1)

	go func() {
		defer Recover()
		defer func() {
			s.running.Add(-1)
			s.wg.Done()
		}()

		fn()
	}()
}

// Running 当前仍在运行的协程数
func (s *WaitGroup) Running() int64 {
	return s.running.Load()
}

func (s *WaitGroup) Wait() {
	s.wg.Wait()
}
