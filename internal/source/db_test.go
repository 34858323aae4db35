package source

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lbun/nft-dashboard/internal/dao"
	"github.com/lbun/nft-dashboard/internal/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.NftDetail{}, &models.WinnerEntry{}))
	dao.InitDAO(db)
	return db
}

func TestDBSource_Load(t *testing.T) {
	db := setupDB(t)

	owner := "0xabcdef0123456789"
	require.NoError(t, db.Create([]*models.NftDetail{
		{TokenID: "1", Equipment: "GPU", Boost: "1x", Owner: &owner, Minted: "01/01/2024"},
		{TokenID: "2", Equipment: "CPU", Boost: "2x", Minted: "02/01/2024"},
	}).Error)
	require.NoError(t, db.Create([]*models.WinnerEntry{
		{WinnerRow: "2", VirtualBlock: "900", RewardBase: 0.75},
	}).Error)

	src := NewDBSource("sqlite")
	assert.Equal(t, "db:sqlite", src.Name())

	tables, err := src.Load()
	require.NoError(t, err)
	require.Len(t, tables.Nfts, 2)
	assert.Equal(t, owner, tables.Nfts[0].Owner)
	assert.Nil(t, tables.Nfts[1].Owner)

	require.Len(t, tables.Winners, 1)
	assert.Equal(t, "900", tables.Winners[0].VirtualBlock)
	assert.InDelta(t, 0.75, tables.Winners[0].RewardBase, 1e-9)
}

func TestDBSource_EmptyBlockIsMalformed(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Create(&models.WinnerEntry{WinnerRow: "1", VirtualBlock: ""}).Error)

	_, err := NewDBSource("sqlite").Load()
	assert.ErrorIs(t, err, ErrMalformedRow)
}
