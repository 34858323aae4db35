package aggregate

import (
	"sort"
	"strconv"

	"github.com/lbun/nft-dashboard/internal/join"
	"github.com/lbun/nft-dashboard/internal/models"
)

// DefaultBoardSize 排行榜默认条数
const DefaultBoardSize = 10

// OwnerStat 按完整持有人地址汇总
type OwnerStat struct {
	Owner        string  `json:"owner"`
	ShortOwner   string  `json:"short_owner"`
	TotalRewards float64 `json:"total_rewards"`
	TotalWins    int     `json:"total_wins"`
	NftsOwned    int     `json:"nfts_owned"`
}

// RankedRow 排行榜一行，Rank 从 1 开始
type RankedRow struct {
	Rank    int     `json:"rank"`
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Display string  `json:"display"`
}

type ComboRow struct {
	Rank         int     `json:"rank"`
	Equipment    string  `json:"equipment"`
	Boost        string  `json:"boost"`
	TotalRewards float64 `json:"total_rewards"`
	Display      string  `json:"display"`
}

type Leaderboard struct {
	TopRewards    []RankedRow `json:"top_rewards"`
	BottomRewards []RankedRow `json:"bottom_rewards"`
	TopWins       []RankedRow `json:"top_wins"`
	BottomWins    []RankedRow `json:"bottom_wins"`
	TopNftsOwned  []RankedRow `json:"top_nfts_owned"`
	TopCombos     []ComboRow  `json:"top_combos"`
}

// OwnerStats 胜场与奖励来自去重后的中奖记录，按持有人地址升序；无持有人的记录跳过
func OwnerStats(wins []models.Win) []OwnerStat {
	g := NewGroups[string]()
	short := make(map[string]string)
	for _, w := range join.DedupeByBlock(wins) {
		if w.Owner == "" {
			continue
		}
		g.Add(w.Owner, w.RewardBase, w.VirtualBlock)
		short[w.Owner] = w.ShortOwner
	}

	stats := make([]OwnerStat, 0, g.Len())
	for _, b := range g.Sorted(stringLess) {
		stats = append(stats, OwnerStat{
			Owner:        b.Key,
			ShortOwner:   short[b.Key],
			TotalRewards: b.Sum,
			TotalWins:    b.Distinct(),
		})
	}
	return stats
}

// NftHoldings 每个持有人拥有的 NFT 数量，按持有人地址升序
func NftHoldings(nfts []models.NftRecord) []OwnerStat {
	g := NewGroups[string]()
	short := make(map[string]string)
	for _, nft := range nfts {
		if nft.Owner == "" {
			continue
		}
		g.Add(nft.Owner, 0, "")
		short[nft.Owner] = nft.ShortOwner
	}

	stats := make([]OwnerStat, 0, g.Len())
	for _, b := range g.Sorted(stringLess) {
		stats = append(stats, OwnerStat{Owner: b.Key, ShortOwner: short[b.Key], NftsOwned: b.Count})
	}
	return stats
}

// TopN 按 metric 降序取前 n 条，相同值保持输入顺序
func TopN[T any](items []T, n int, metric func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return metric(out[i]) > metric(out[j]) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// BottomN 先按升序选出最小的 n 条，再把这 n 条按降序展示
func BottomN[T any](items []T, n int, metric func(T) float64) []T {
	out := make([]T, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool { return metric(out[i]) < metric(out[j]) })
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	sort.SliceStable(out, func(i, j int) bool { return metric(out[i]) > metric(out[j]) })
	return out
}

func rank(stats []OwnerStat, metric func(OwnerStat) float64, display func(float64) string) []RankedRow {
	rows := make([]RankedRow, 0, len(stats))
	for i, s := range stats {
		v := metric(s)
		rows = append(rows, RankedRow{Rank: i + 1, Label: s.ShortOwner, Value: v, Display: display(v)})
	}
	return rows
}

func formatCount(v float64) string {
	return strconv.FormatInt(int64(v), 10)
}

type combo struct {
	equipment string
	boost     string
}

// TopCombos 设备 + boost 组合的奖励排行
func TopCombos(wins []models.Win, n int) []ComboRow {
	g := NewGroups[combo]()
	for _, w := range join.DedupeByBlock(wins) {
		if w.Equipment == "" || w.Boost == "" {
			continue
		}
		g.Add(combo{equipment: w.Equipment, boost: w.Boost}, w.RewardBase, w.VirtualBlock)
	}

	buckets := g.Sorted(func(a, b combo) bool {
		if a.equipment != b.equipment {
			return a.equipment < b.equipment
		}
		return a.boost < b.boost
	})
	top := TopN(buckets, n, func(b *Bucket[combo]) float64 { return b.Sum })

	rows := make([]ComboRow, 0, len(top))
	for i, b := range top {
		rows = append(rows, ComboRow{
			Rank:         i + 1,
			Equipment:    b.Key.equipment,
			Boost:        b.Key.boost,
			TotalRewards: b.Sum,
			Display:      FormatRewards(b.Sum),
		})
	}
	return rows
}

// BuildLeaderboard 汇总所有排行榜
func BuildLeaderboard(nfts []models.NftRecord, wins []models.Win, n int) *Leaderboard {
	if n <= 0 {
		n = DefaultBoardSize
	}

	stats := OwnerStats(wins)
	rewards := func(s OwnerStat) float64 { return s.TotalRewards }
	winCount := func(s OwnerStat) float64 { return float64(s.TotalWins) }
	owned := func(s OwnerStat) float64 { return float64(s.NftsOwned) }

	return &Leaderboard{
		TopRewards:    rank(TopN(stats, n, rewards), rewards, FormatRewards),
		BottomRewards: rank(BottomN(stats, n, rewards), rewards, FormatRewards),
		TopWins:       rank(TopN(stats, n, winCount), winCount, formatCount),
		BottomWins:    rank(BottomN(stats, n, winCount), winCount, formatCount),
		TopNftsOwned:  rank(TopN(NftHoldings(nfts), n, owned), owned, formatCount),
		TopCombos:     TopCombos(wins, n),
	}
}
