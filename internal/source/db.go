package source

import (
	"fmt"

	"github.com/lbun/nft-dashboard/internal/dao"
	"github.com/lbun/nft-dashboard/internal/models"
)

// DBSource 从 nft_details / winner_list 表读取（需先 dao.InitDAO）
type DBSource struct {
	driver string
}

func NewDBSource(driver string) *DBSource {
	return &DBSource{driver: driver}
}

func (s *DBSource) Name() string {
	return "db:" + s.driver
}

func (s *DBSource) Load() (*Tables, error) {
	nftRows, err := dao.NftDetail().ListAll()
	if err != nil {
		return nil, fmt.Errorf("list nft_details: %w", err)
	}
	winnerRows, err := dao.WinnerEntry().ListAll()
	if err != nil {
		return nil, fmt.Errorf("list winner_list: %w", err)
	}

	tables := &Tables{
		Nfts:    make([]models.NftSource, 0, len(nftRows)),
		Winners: make([]models.WinnerRecord, 0, len(winnerRows)),
	}

	for _, row := range nftRows {
		var owner any
		if row.Owner != nil {
			owner = *row.Owner
		}
		tables.Nfts = append(tables.Nfts, models.NftSource{
			TokenID:   row.TokenID,
			Market:    row.Market,
			Equipment: row.Equipment,
			Boost:     row.Boost,
			Owner:     owner,
			Minted:    row.Minted,
		})
	}

	for _, row := range winnerRows {
		w, err := parseWinner(row.WinnerRow, row.VirtualBlock, row.RewardBase)
		if err != nil {
			return nil, fmt.Errorf("winner_list id %d: %w", row.ID, err)
		}
		tables.Winners = append(tables.Winners, w)
	}

	return tables, nil
}
