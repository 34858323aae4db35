package concurrent

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap_StoreLoadDelete(t *testing.T) {
	var m Map[string, int]

	m.Store("a", 1)
	m.Store("a", 2)
	m.Store("b", 3)
	assert.Equal(t, int64(2), m.Len())

	v, ok := m.Load("a")
	assert.True(t, ok)
	assert.Equal(t, 2, v)

	m.Delete("a")
	m.Delete("missing")
	assert.Equal(t, int64(1), m.Len())

	_, ok = m.Load("a")
	assert.False(t, ok)
}

func TestMap_LoadOrStoreConcurrent(t *testing.T) {
	var m Map[string, int]
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			m.LoadOrStore(fmt.Sprintf("k%d", n%10), n)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(10), m.Len())

	count := 0
	m.Range(func(string, int) bool {
		count++
		return true
	})
	assert.Equal(t, 10, count)
}
