package join

import (
	"strconv"
	"strings"

	"github.com/spf13/cast"

	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

// Result 关联结果；Unmatched 只用于告警，不参与后续统计
type Result struct {
	Wins      []models.Win          `json:"wins"`
	Unmatched []models.WinnerRecord `json:"unmatched"`
}

// NormalizeKey 关联键统一成整数字符串（"3"、"3.0"、" 3 " 都视为 "3"），无法识别时原样去空白
func NormalizeKey(v any) string {
	s := strings.TrimSpace(cast.ToString(v))
	f, err := cast.ToFloat64E(s)
	if err == nil && f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// Index unique_id -> NFT
type Index map[string]*models.NftRecord

func NewIndex(nfts []models.NftRecord) Index {
	idx := make(Index, len(nfts))
	for i := range nfts {
		idx[strconv.Itoa(nfts[i].UniqueID)] = &nfts[i]
	}
	return idx
}

// Winners 按 winner_row == unique_id 内连接，保持中奖表原有顺序
func Winners(idx Index, winners []models.WinnerRecord) Result {
	res := Result{Wins: make([]models.Win, 0, len(winners))}

	for _, w := range winners {
		nft, ok := idx[NormalizeKey(w.WinnerRow)]
		if !ok {
			res.Unmatched = append(res.Unmatched, w)
			continue
		}
		res.Wins = append(res.Wins, models.Win{
			WinnerRecord: w,
			UniqueID:     nft.UniqueID,
			Owner:        nft.Owner,
			ShortOwner:   nft.ShortOwner,
			Equipment:    nft.Equipment,
			Boost:        nft.Boost,
		})
	}

	if len(res.Unmatched) > 0 {
		rows := make([]string, 0, len(res.Unmatched))
		for _, w := range res.Unmatched {
			rows = append(rows, w.WinnerRow)
		}
		logger.Warn().
			Int("count", len(res.Unmatched)).
			Strs("winner_rows", rows).
			Msg("unmatched winner rows excluded from reports")
	}

	return res
}

// DedupeByBlock 同一 virtual_block 只保留第一次出现的记录
func DedupeByBlock(wins []models.Win) []models.Win {
	seen := make(map[string]struct{}, len(wins))
	out := make([]models.Win, 0, len(wins))
	for _, w := range wins {
		if _, ok := seen[w.VirtualBlock]; ok {
			continue
		}
		seen[w.VirtualBlock] = struct{}{}
		out = append(out, w)
	}
	return out
}
