package dal

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	proxymysql "github.com/go-sql-driver/mysql"
	"golang.org/x/net/proxy"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/lbun/nft-dashboard/config"
	"github.com/lbun/nft-dashboard/internal/models"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

// GormLogger 把 gorm 日志转到 zerolog
type GormLogger struct{}

func (l GormLogger) Printf(f string, args ...any) {
	logger.Warnf(f, args...)
}

var (
	sourceDB     *gorm.DB
	sourceDBOnce sync.Once
	sourceDBErr  error
)

// InitSourceDB 打开只读数据源（仅 source = "db" 时需要）
func InitSourceDB(cfg config.Database) error {
	sourceDBOnce.Do(func() {
		sourceDB, sourceDBErr = Open(cfg)
	})
	return sourceDBErr
}

func SourceDB() *gorm.DB {
	return sourceDB
}

func dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite", "":
		return sqlite.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// registerProxyDialer 注册 SOCKS5 代理拨号器（仅 mysql）
func registerProxyDialer(proxyAddr string) error {
	dialer, err := proxy.SOCKS5("tcp", proxyAddr, nil, &net.Dialer{})
	if err != nil {
		return fmt.Errorf("create proxy dialer failed: %w", err)
	}

	proxymysql.RegisterDialContext("tcp", func(ctx context.Context, addr string) (net.Conn, error) {
		return dialer.Dial("tcp", addr)
	})

	return nil
}

// Open 按配置打开数据库，配置了 replicas 时读请求走从库
func Open(cfg config.Database) (*gorm.DB, error) {
	if cfg.ProxyEnabled && cfg.Driver == "mysql" {
		if err := registerProxyDialer(cfg.ProxyAddr); err != nil {
			return nil, err
		}
		logger.Infof("mysql proxy enabled: %s", cfg.ProxyAddr)
	}

	primary, err := dialector(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(primary, &gorm.Config{
		Logger: gormlogger.New(GormLogger{}, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database failed: %w", cfg.Driver, err)
	}

	maxIdleTime := time.Hour
	if cfg.ConnMaxIdleTime > 0 {
		maxIdleTime = time.Duration(cfg.ConnMaxIdleTime) * time.Second
	}
	maxLifetime := 2 * time.Hour
	if cfg.ConnMaxLifetime > 0 {
		maxLifetime = time.Duration(cfg.ConnMaxLifetime) * time.Second
	}

	if len(cfg.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(cfg.Replicas))
		for _, dsn := range cfg.Replicas {
			d, err := dialector(cfg.Driver, dsn)
			if err != nil {
				return nil, err
			}
			replicas = append(replicas, d)
		}

		plugin := dbresolver.Register(dbresolver.Config{Replicas: replicas}).
			SetConnMaxIdleTime(maxIdleTime).
			SetConnMaxLifetime(maxLifetime).
			SetMaxIdleConns(cfg.MaxIdleConnections).
			SetMaxOpenConns(cfg.MaxOpenConnections)
		if err = db.Use(plugin); err != nil {
			return nil, fmt.Errorf("register dbresolver failed: %w", err)
		}
		logger.Infof("%d replica(s) configured", len(cfg.Replicas))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB failed: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConnections)
	sqlDB.SetConnMaxIdleTime(maxIdleTime)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	logger.Info().
		Str("driver", cfg.Driver).
		Int("max_idle", cfg.MaxIdleConnections).
		Int("max_open", cfg.MaxOpenConnections).
		Msg("source database connected")

	return db, nil
}

// CheckSchema 确认源表存在；数据源只读，这里不做迁移
func CheckSchema(db *gorm.DB) error {
	for _, model := range []any{&models.NftDetail{}, &models.WinnerEntry{}} {
		if !db.Migrator().HasTable(model) {
			return fmt.Errorf("table %s not found", tableName(model))
		}
	}
	return nil
}

func tableName(model any) string {
	if t, ok := model.(interface{ TableName() string }); ok {
		return t.TableName()
	}
	return "unknown"
}

func CloseSourceDB() {
	if sourceDB == nil {
		return
	}
	sqlDB, err := sourceDB.DB()
	if err != nil {
		logger.Error().Err(err).Msg("get sql.DB failed")
		return
	}
	if err = sqlDB.Close(); err != nil {
		logger.Error().Err(err).Msg("close source database failed")
		return
	}
	logger.Info().Msg("source database closed")
}
