package dao

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lbun/nft-dashboard/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NftDetail{}, &models.WinnerEntry{}))
	return db
}

func strPtr(s string) *string { return &s }

func TestNftDetailDAO_ListAllKeepsInsertOrder(t *testing.T) {
	db := setupTestDB(t)
	InitDAO(db)

	rows := []*models.NftDetail{
		{TokenID: "30", Equipment: "GPU", Boost: "1.5x", Owner: strPtr("0xaaa"), Minted: "01/01/2024"},
		{TokenID: "10", Equipment: "ASIC", Boost: "1x", Owner: nil, Minted: "02/01/2024"},
		{TokenID: "20", Equipment: "GPU", Boost: "2x", Owner: strPtr("0xbbb"), Minted: "03/01/2024"},
	}
	require.NoError(t, db.Create(rows).Error)

	got, err := NftDetail().ListAll()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "30", got[0].TokenID)
	assert.Equal(t, "10", got[1].TokenID)
	assert.Nil(t, got[1].Owner)
	assert.Equal(t, "20", got[2].TokenID)
}

func TestWinnerEntryDAO_ListAll(t *testing.T) {
	db := setupTestDB(t)
	InitDAO(db)

	require.NoError(t, db.Create([]*models.WinnerEntry{
		{WinnerRow: "2", VirtualBlock: "100", RewardBase: 1.5},
		{WinnerRow: "1", VirtualBlock: "101", RewardBase: 2.5},
	}).Error)

	got, err := WinnerEntry().ListAll()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2", got[0].WinnerRow)
	assert.Equal(t, 2.5, got[1].RewardBase)
}
