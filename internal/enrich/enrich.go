package enrich

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/spf13/cast"

	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

const Expired = "Expired"

var ErrBadMintDate = errors.New("malformed mint date")

type Options struct {
	ReferenceDate time.Time // life_left 的 "今天"，固定值保证结果可复现
	MintLayout    string
	WindowDays    int
}

func DefaultOptions() Options {
	return Options{
		ReferenceDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
		MintLayout:    "1/2/2006",
		WindowDays:    365,
	}
}

// ShortenAddress 前 6 位 + "..." + 后 5 位；非字符串原样转成字符串，不截断
func ShortenAddress(owner any) string {
	s, ok := owner.(string)
	if !ok {
		return cast.ToString(owner)
	}

	r := []rune(s)
	head := r[:min(6, len(r))]
	tail := r[max(0, len(r)-5):]
	return string(head) + "..." + string(tail)
}

// LifeLeft 剩余天数 = min(window - 已过天数, window)，为负时返回 Expired
func LifeLeft(minted, reference time.Time, window int) (int, string) {
	elapsed := int(math.Floor(reference.Sub(minted).Hours() / 24))
	left := window - elapsed
	if left < 0 {
		return left, Expired
	}
	left = min(left, window)
	return left, strconv.Itoa(left)
}

// Enrich 按行序分配 unique_id（从 1 开始）并计算派生字段
func Enrich(rows []models.NftSource, opts Options) ([]models.NftRecord, error) {
	records := make([]models.NftRecord, 0, len(rows))
	expired := 0

	for i, row := range rows {
		minted, err := time.Parse(opts.MintLayout, row.Minted)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d token %s: %q", ErrBadMintDate, i+1, row.TokenID, row.Minted)
		}

		days, label := LifeLeft(minted, opts.ReferenceDate, opts.WindowDays)
		if label == Expired {
			expired++
		}

		records = append(records, models.NftRecord{
			UniqueID:     i + 1,
			TokenID:      row.TokenID,
			Market:       row.Market,
			Equipment:    row.Equipment,
			Boost:        row.Boost,
			Owner:        cast.ToString(row.Owner),
			ShortOwner:   ShortenAddress(row.Owner),
			Minted:       row.Minted,
			MintedDate:   minted,
			LifeLeftDays: days,
			LifeLeft:     label,
		})
	}

	logger.Debug().
		Int("nfts", len(records)).
		Int("expired", expired).
		Time("reference_date", opts.ReferenceDate).
		Msg("nft records enriched")

	return records, nil
}
