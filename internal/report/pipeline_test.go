package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/internal/source"
)

type memSource struct {
	tables *source.Tables
	err    error
	loads  int
}

func (s *memSource) Name() string { return "memory" }

func (s *memSource) Load() (*source.Tables, error) {
	s.loads++
	return s.tables, s.err
}

const (
	ownerA = "0xAAAAAA1111111111111111111111111111111111"
	ownerB = "0xBBBBBB2222222222222222222222222222222222"
)

func sampleTables() *source.Tables {
	return &source.Tables{
		Nfts: []models.NftSource{
			{TokenID: "1", Market: "m", Equipment: "GPU", Boost: "x2", Owner: ownerA, Minted: "12/01/2023"},
			{TokenID: "2", Market: "m", Equipment: "GPU", Boost: "x1", Owner: ownerB, Minted: "12/24/2024"},
			{TokenID: "3", Market: "m", Equipment: "CPU", Boost: "x1", Owner: ownerA, Minted: "01/10/2023"},
		},
		Winners: []models.WinnerRecord{
			{WinnerRow: "1", VirtualBlock: "100", RewardBase: 1.5},
			{WinnerRow: "2", VirtualBlock: "101", RewardBase: 2.5},
			{WinnerRow: "3", VirtualBlock: "102", RewardBase: 10},
			{WinnerRow: "9", VirtualBlock: "103", RewardBase: 99},
		},
	}
}

func newPipeline(t *testing.T) *Pipeline {
	t.Helper()
	p, err := NewPipeline(source.NewLoader(&memSource{tables: sampleTables()}), DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestNewPipeline_UnmatchedWinnersAreWarnings(t *testing.T) {
	p := newPipeline(t)

	require.Len(t, p.Warnings(), 1)
	assert.Equal(t, "9", p.Warnings()[0].WinnerRow)

	d := p.Dashboard(filter.Selection{})
	assert.Equal(t, 3, d.Totals.Wins)
	assert.Equal(t, "14.000", d.Totals.RewardsText)
	assert.Equal(t, "Total Rewards Earned: 14.000 BASE", d.TotalsText)
	assert.Equal(t, "All NFTs:", d.Caption)
	assert.Len(t, d.Nfts, 3)
}

func TestNewPipeline_LoadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewPipeline(source.NewLoader(&memSource{err: boom}), DefaultOptions())
	assert.ErrorIs(t, err, boom)
}

func TestDashboard_EquipmentThenOwner(t *testing.T) {
	p := newPipeline(t)

	gpu := p.Dashboard(filter.Selection{Equipment: "GPU"})
	assert.Equal(t, 2, gpu.Totals.Wins)
	assert.Equal(t, "4.000", gpu.Totals.RewardsText)
	assert.Equal(t, "Reward Distribution by Boost (GPU)", gpu.RewardDistribution.Title)
	assert.Equal(t, "NFT Ownership Distribution (GPU)", gpu.Ownership.Title)

	short := gpu.Nfts[0].ShortOwner
	assert.Equal(t, "0xAAAA...11111", short)

	both := p.Dashboard(filter.Selection{Equipment: "GPU", Owner: short})
	assert.Equal(t, "NFTs owned by 0xAAAA...11111:", both.Caption)
	require.Len(t, both.Nfts, 1)
	assert.Equal(t, "1", both.Nfts[0].TokenID)
	assert.Equal(t, 1, both.Totals.Wins)
	assert.Equal(t, "1.500", both.Totals.RewardsText)
}

func TestDashboard_LifeLeft(t *testing.T) {
	p := newPipeline(t)

	d := p.Dashboard(filter.Selection{Equipment: filter.All})
	assert.Equal(t, "Expired", d.Nfts[0].LifeLeft)
	assert.Equal(t, "356", d.Nfts[1].LifeLeft)
	assert.Equal(t, "Reward Distribution by Equipment", d.RewardDistribution.Title)
}

func TestDashboard_NoMatchesNotChartable(t *testing.T) {
	p := newPipeline(t)

	d := p.Dashboard(filter.Selection{Equipment: "TPU"})
	assert.Empty(t, d.Nfts)
	assert.Equal(t, 0, d.Totals.Wins)
	assert.False(t, d.RewardDistribution.Chartable)
	assert.False(t, d.Ownership.Chartable)
}

func TestDashboard_Cached(t *testing.T) {
	opts := DefaultOptions()
	opts.CacheTTL = time.Minute
	src := &memSource{tables: sampleTables()}
	p, err := NewPipeline(source.NewLoader(src), opts)
	require.NoError(t, err)

	first := p.Dashboard(filter.Selection{})
	second := p.Dashboard(filter.Selection{Equipment: filter.All, Owner: filter.All})
	assert.Same(t, first, second)
	assert.Equal(t, 1, src.loads)
}

func TestLeaderboard(t *testing.T) {
	p := newPipeline(t)

	b := p.Leaderboard(filter.Selection{})
	require.Len(t, b.TopRewards, 2)
	assert.Equal(t, "0xAAAA...11111", b.TopRewards[0].Label)
	assert.Equal(t, "11.500", b.TopRewards[0].Display)
	assert.Equal(t, 1, b.TopRewards[0].Rank)

	require.Len(t, b.TopNftsOwned, 2)
	assert.Equal(t, "2", b.TopNftsOwned[0].Display)

	require.Len(t, b.TopCombos, 3)
	assert.Equal(t, "CPU", b.TopCombos[0].Equipment)

	gpu := p.Leaderboard(filter.Selection{Equipment: "GPU"})
	require.Len(t, gpu.TopRewards, 2)
	assert.Equal(t, "0xBBBB...22222", gpu.TopRewards[0].Label)
}

func TestFilterOptions(t *testing.T) {
	p := newPipeline(t)

	opts := p.FilterOptions()
	assert.Equal(t, []string{filter.All, "CPU", "GPU"}, opts.Equipment)
	assert.Equal(t, []string{filter.All, "0xAAAA...11111", "0xBBBB...22222"}, opts.Owners)
}

func TestPipeline_NftWithoutOwner(t *testing.T) {
	tables := sampleTables()
	tables.Nfts = append(tables.Nfts, models.NftSource{TokenID: "4", Equipment: "GPU", Boost: "x1", Owner: nil, Minted: "12/30/2024"})
	tables.Winners = append(tables.Winners, models.WinnerRecord{WinnerRow: "4", VirtualBlock: "104", RewardBase: 1})

	p, err := NewPipeline(source.NewLoader(&memSource{tables: tables}), DefaultOptions())
	require.NoError(t, err)

	assert.NotContains(t, p.FilterOptions().Owners, "")

	d := p.Dashboard(filter.Selection{})
	assert.Len(t, d.Nfts, 4)
	assert.Equal(t, "15.000", d.Totals.RewardsText)
	for _, s := range d.Ownership.Slices {
		assert.NotEmpty(t, s.Category)
	}

	b := p.Leaderboard(filter.Selection{})
	for _, r := range b.TopRewards {
		assert.NotEmpty(t, r.Label)
	}
}
