package report

import (
	"fmt"
	"time"

	"github.com/lbun/nft-dashboard/config"
	"github.com/lbun/nft-dashboard/internal/aggregate"
	"github.com/lbun/nft-dashboard/internal/cache"
	"github.com/lbun/nft-dashboard/internal/enrich"
	"github.com/lbun/nft-dashboard/internal/filter"
	"github.com/lbun/nft-dashboard/internal/join"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/internal/monitor"
	"github.com/lbun/nft-dashboard/internal/source"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

type Options struct {
	Enrich          enrich.Options
	Thresholds      aggregate.Thresholds
	LeaderboardSize int
	CacheTTL        time.Duration
}

func DefaultOptions() Options {
	return Options{
		Enrich:          enrich.DefaultOptions(),
		Thresholds:      aggregate.DefaultThresholds(),
		LeaderboardSize: aggregate.DefaultBoardSize,
	}
}

// OptionsFromConfig 由 [dashboard] 配置生成
func OptionsFromConfig(d config.Dashboard) (Options, error) {
	ref, err := d.ReferenceTime()
	if err != nil {
		return Options{}, fmt.Errorf("reference date: %w", err)
	}
	return Options{
		Enrich: enrich.Options{
			ReferenceDate: ref,
			MintLayout:    d.MintDateLayout,
			WindowDays:    d.LifeWindowDays,
		},
		Thresholds: aggregate.Thresholds{
			Equipment: d.EquipmentLabelThreshold,
			Boost:     d.BoostLabelThreshold,
			Ownership: d.OwnershipLabelThreshold,
		},
		LeaderboardSize: d.LeaderboardSize,
		CacheTTL:        d.ReportCacheTTL,
	}, nil
}

// Pipeline 源表只加载、富化、关联一次，之后按筛选条件计算报表
type Pipeline struct {
	opts    Options
	nfts    []models.NftRecord
	joined  join.Result
	filters filter.Options

	dashboards   *cache.ReportCache[*Dashboard]
	leaderboards *cache.ReportCache[*aggregate.Leaderboard]
}

// NewPipeline 加载失败直接返回错误；未匹配的中奖记录只告警
func NewPipeline(loader *source.Loader, opts Options) (*Pipeline, error) {
	tables, err := loader.Tables()
	if err != nil {
		return nil, err
	}

	nfts, err := enrich.Enrich(tables.Nfts, opts.Enrich)
	if err != nil {
		return nil, fmt.Errorf("enrich nfts: %w", err)
	}

	joined := join.Winners(join.NewIndex(nfts), tables.Winners)
	monitor.SetUnmatchedWinners(len(joined.Unmatched))

	p := &Pipeline{
		opts:         opts,
		nfts:         nfts,
		joined:       joined,
		filters:      filter.BuildOptions(nfts),
		dashboards:   cache.NewReportCache[*Dashboard](opts.CacheTTL),
		leaderboards: cache.NewReportCache[*aggregate.Leaderboard](opts.CacheTTL),
	}

	logger.Info().
		Int("nfts", len(nfts)).
		Int("wins", len(joined.Wins)).
		Int("unmatched", len(joined.Unmatched)).
		Int("equipment", len(p.filters.Equipment)-1).
		Int("owners", len(p.filters.Owners)-1).
		Msg("report pipeline ready")

	return p, nil
}

// FilterOptions 下拉框候选项
func (p *Pipeline) FilterOptions() filter.Options {
	return p.filters
}

// Warnings 未匹配到 NFT 的中奖记录
func (p *Pipeline) Warnings() []models.WinnerRecord {
	return p.joined.Unmatched
}

// subset 过滤 NFT 后再与中奖记录内连接
func (p *Pipeline) subset(sel filter.Selection) ([]models.NftRecord, []models.Win) {
	nfts := sel.Apply(p.nfts)
	return nfts, filter.Wins(nfts, p.joined.Wins)
}

// Dashboard 返回的结果在缓存中共享，调用方不得修改
func (p *Pipeline) Dashboard(sel filter.Selection) *Dashboard {
	sel = sel.Normalize()
	key := sel.Key()
	if d, ok := p.dashboards.Get(key); ok {
		monitor.IncCacheHit("dashboard")
		return d
	}
	monitor.IncCacheMiss("dashboard")

	start := time.Now()
	nfts, wins := p.subset(sel)
	d := buildDashboard(sel, nfts, wins, p.opts.Thresholds)
	p.dashboards.Set(key, d)

	monitor.ObserveReport("dashboard", "success", time.Since(start).Seconds())
	logger.Debug().
		Str("selection", key).
		Int("nfts", len(nfts)).
		Int("wins", d.Totals.Wins).
		Msg("dashboard computed")

	return d
}

// Leaderboard 排行榜同样基于筛选后的数据，All 即全量
func (p *Pipeline) Leaderboard(sel filter.Selection) *aggregate.Leaderboard {
	sel = sel.Normalize()
	key := sel.Key()
	if b, ok := p.leaderboards.Get(key); ok {
		monitor.IncCacheHit("leaderboard")
		return b
	}
	monitor.IncCacheMiss("leaderboard")

	start := time.Now()
	nfts, wins := p.subset(sel)
	b := aggregate.BuildLeaderboard(nfts, wins, p.opts.LeaderboardSize)
	p.leaderboards.Set(key, b)

	monitor.ObserveReport("leaderboard", "success", time.Since(start).Seconds())
	logger.Debug().Str("selection", key).Int("wins", len(wins)).Msg("leaderboard computed")

	return b
}
