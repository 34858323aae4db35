package aggregate

import "sort"

// Bucket 单个分组的累计值
type Bucket[K comparable] struct {
	Key    K
	Sum    float64
	Count  int
	blocks map[string]struct{}
}

// Distinct 不同 virtual_block 的数量
func (b *Bucket[K]) Distinct() int {
	return len(b.blocks)
}

// Groups 按首次出现顺序保存的分组（有序 map）
type Groups[K comparable] struct {
	index map[K]*Bucket[K]
	order []*Bucket[K]
}

func NewGroups[K comparable]() *Groups[K] {
	return &Groups[K]{index: make(map[K]*Bucket[K])}
}

// Add 累加一行；block 为空时不计入去重计数
func (g *Groups[K]) Add(key K, value float64, block string) {
	b, ok := g.index[key]
	if !ok {
		b = &Bucket[K]{Key: key, blocks: make(map[string]struct{})}
		g.index[key] = b
		g.order = append(g.order, b)
	}
	b.Sum += value
	b.Count++
	if block != "" {
		b.blocks[block] = struct{}{}
	}
}

func (g *Groups[K]) Len() int {
	return len(g.order)
}

// Sorted 按 key 排序后的分组，与常见 group-by 输出顺序一致
func (g *Groups[K]) Sorted(less func(a, b K) bool) []*Bucket[K] {
	out := make([]*Bucket[K], len(g.order))
	copy(out, g.order)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i].Key, out[j].Key) })
	return out
}

func stringLess(a, b string) bool {
	return a < b
}
