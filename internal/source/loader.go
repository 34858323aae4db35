package source

import (
	"time"

	"github.com/lbun/nft-dashboard/internal/cache"
	"github.com/lbun/nft-dashboard/internal/monitor"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

// Loader 进程内唯一的数据加载器，按引用传给各个处理阶段
type Loader struct {
	src   Source
	cache *cache.TableCache[*Tables]
}

func NewLoader(src Source) *Loader {
	return &Loader{
		src:   src,
		cache: cache.NewTableCache[*Tables](),
	}
}

// Tables 读穿缓存：首次调用读取源，失败原样返回且不缓存
func (l *Loader) Tables() (*Tables, error) {
	start := time.Now()

	tables, hit, err := l.cache.GetOrLoad(l.src.Name(), l.src.Load)
	if err != nil {
		monitor.IncSourceLoad("error")
		logger.Error().Err(err).Str("source", l.src.Name()).Msg("load source tables failed")
		return nil, err
	}

	if hit {
		monitor.IncCacheHit("tables")
		return tables, nil
	}

	monitor.IncCacheMiss("tables")
	monitor.IncSourceLoad("success")
	monitor.SetSourceRows("nft", len(tables.Nfts))
	monitor.SetSourceRows("winner", len(tables.Winners))

	logger.Info().
		Str("source", l.src.Name()).
		Int("nfts", len(tables.Nfts)).
		Int("winners", len(tables.Winners)).
		Dur("took", time.Since(start)).
		Msg("source tables loaded")

	return tables, nil
}
