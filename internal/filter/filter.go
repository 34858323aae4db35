package filter

import (
	"sort"

	"github.com/lbun/nft-dashboard/internal/models"
)

// All 表示不过滤
const All = "All"

// Selection 设备与持有人两个独立条件；空值等同 All
type Selection struct {
	Equipment string `json:"equipment"`
	Owner     string `json:"owner"` // 缩写后的地址
}

func active(v string) bool {
	return v != "" && v != All
}

func (s Selection) EquipmentSelected() bool {
	return active(s.Equipment)
}

func (s Selection) OwnerSelected() bool {
	return active(s.Owner)
}

// Normalize 空值统一为 All
func (s Selection) Normalize() Selection {
	if !s.EquipmentSelected() {
		s.Equipment = All
	}
	if !s.OwnerSelected() {
		s.Owner = All
	}
	return s
}

// Key 缓存键
func (s Selection) Key() string {
	n := s.Normalize()
	return n.Equipment + "|" + n.Owner
}

func (s Selection) Match(nft *models.NftRecord) bool {
	if s.EquipmentSelected() && nft.Equipment != s.Equipment {
		return false
	}
	if s.OwnerSelected() && nft.ShortOwner != s.Owner {
		return false
	}
	return true
}

// Apply 返回满足条件的 NFT，保持原顺序
func (s Selection) Apply(nfts []models.NftRecord) []models.NftRecord {
	out := make([]models.NftRecord, 0, len(nfts))
	for i := range nfts {
		if s.Match(&nfts[i]) {
			out = append(out, nfts[i])
		}
	}
	return out
}

// Wins 对过滤后的 NFT 子集做内连接：只保留 unique_id 在子集中的中奖记录
func Wins(subset []models.NftRecord, wins []models.Win) []models.Win {
	ids := make(map[int]struct{}, len(subset))
	for _, nft := range subset {
		ids[nft.UniqueID] = struct{}{}
	}

	out := make([]models.Win, 0, len(wins))
	for _, w := range wins {
		if _, ok := ids[w.UniqueID]; ok {
			out = append(out, w)
		}
	}
	return out
}

// Options 下拉框候选项："All" + 排序去重后的非空取值
type Options struct {
	Equipment []string `json:"equipment"`
	Owners    []string `json:"owners"`
}

func BuildOptions(nfts []models.NftRecord) Options {
	return Options{
		Equipment: withAll(distinct(nfts, func(n *models.NftRecord) string { return n.Equipment })),
		Owners:    withAll(distinct(nfts, func(n *models.NftRecord) string { return n.ShortOwner })),
	}
}

func distinct(nfts []models.NftRecord, field func(*models.NftRecord) string) []string {
	seen := make(map[string]struct{})
	var values []string
	for i := range nfts {
		v := field(&nfts[i])
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

func withAll(values []string) []string {
	return append([]string{All}, values...)
}
