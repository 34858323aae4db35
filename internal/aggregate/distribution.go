package aggregate

import (
	"github.com/lbun/nft-dashboard/internal/join"
	"github.com/lbun/nft-dashboard/internal/models"
)

// Thresholds 饼图标签显示阈值（百分比，严格大于才显示）
type Thresholds struct {
	Equipment float64
	Boost     float64
	Ownership float64
}

func DefaultThresholds() Thresholds {
	return Thresholds{Equipment: 5, Boost: 3, Ownership: 3}
}

type Slice struct {
	Category  string  `json:"category"`
	Value     float64 `json:"value"`
	Percent   float64 `json:"percent"`
	ShowLabel bool    `json:"show_label"`
	Label     string  `json:"label"`
}

type Distribution struct {
	Title     string  `json:"title"`
	Dimension string  `json:"dimension"` // equipment / boost / owner
	Total     float64 `json:"total"`
	Chartable bool    `json:"chartable"` // 总量为 0 时不出图
	Slices    []Slice `json:"slices"`
}

// distribute 计算每个分组的占比；总量为 0 时占比全部为 0
func distribute(buckets []*Bucket[string], value func(*Bucket[string]) float64, threshold float64) ([]Slice, float64) {
	var total float64
	for _, b := range buckets {
		total += value(b)
	}

	slices := make([]Slice, 0, len(buckets))
	for _, b := range buckets {
		s := Slice{Category: b.Key, Value: value(b)}
		if total != 0 {
			s.Percent = 100 * s.Value / total
		}
		s.ShowLabel = s.Percent > threshold
		if s.ShowLabel {
			s.Label = FormatPercent(s.Percent)
		}
		slices = append(slices, s)
	}
	return slices, total
}

// RewardsBy 按类别汇总去重后的奖励，类别缺失的记录不参与分组
func RewardsBy(wins []models.Win, dimension string, category func(*models.Win) string, threshold float64) Distribution {
	g := NewGroups[string]()
	for _, w := range join.DedupeByBlock(wins) {
		key := category(&w)
		if key == "" {
			continue
		}
		g.Add(key, w.RewardBase, w.VirtualBlock)
	}

	slices, total := distribute(g.Sorted(stringLess), func(b *Bucket[string]) float64 { return b.Sum }, threshold)
	return Distribution{
		Dimension: dimension,
		Total:     total,
		Chartable: total != 0,
		Slices:    slices,
	}
}

// RewardDistribution 未选设备时按设备分布，选定设备时按 boost 分布
func RewardDistribution(wins []models.Win, equipment string, th Thresholds) Distribution {
	if equipment == "" {
		d := RewardsBy(wins, "equipment", func(w *models.Win) string { return w.Equipment }, th.Equipment)
		d.Title = "Reward Distribution by Equipment"
		return d
	}

	d := RewardsBy(wins, "boost", func(w *models.Win) string { return w.Boost }, th.Boost)
	d.Title = "Reward Distribution by Boost (" + equipment + ")"
	return d
}

// Ownership 每个持有人（缩写地址）拥有的 NFT 数量占比，无持有人的 NFT 不计入
func Ownership(nfts []models.NftRecord, equipment string, threshold float64) Distribution {
	g := NewGroups[string]()
	for _, nft := range nfts {
		if nft.ShortOwner == "" {
			continue
		}
		g.Add(nft.ShortOwner, 1, "")
	}

	slices, total := distribute(g.Sorted(stringLess), func(b *Bucket[string]) float64 { return float64(b.Count) }, threshold)

	scope := "All Equipment"
	if equipment != "" {
		scope = equipment
	}
	return Distribution{
		Title:     "NFT Ownership Distribution (" + scope + ")",
		Dimension: "owner",
		Total:     total,
		Chartable: total != 0,
		Slices:    slices,
	}
}
