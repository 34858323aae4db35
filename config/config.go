package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	SourceCSV = "csv"
	SourceDB  = "db"
)

type Dashboard struct {
	Source                  string        `toml:"source"` // csv / db
	NftFile                 string        `toml:"nft_file"`
	WinnerFile              string        `toml:"winner_file"`
	ReferenceDate           string        `toml:"reference_date"`   // 2006-01-02
	MintDateLayout          string        `toml:"mint_date_layout"` // Go layout，对应 %m/%d/%Y
	LifeWindowDays          int           `toml:"life_window_days"`
	EquipmentLabelThreshold float64       `toml:"equipment_label_threshold"`
	BoostLabelThreshold     float64       `toml:"boost_label_threshold"`
	OwnershipLabelThreshold float64       `toml:"ownership_label_threshold"`
	LeaderboardSize         int           `toml:"leaderboard_size"`
	ReportCacheTTL          time.Duration `toml:"report_cache_ttl"`
	HTTPAddr                string        `toml:"http_addr"`
	MaxConcurrentReports    int           `toml:"max_concurrent_reports"`
}

type Database struct {
	Driver             string   `toml:"driver"` // sqlite / mysql / postgres
	DSN                string   `toml:"dsn"`
	Replicas           []string `toml:"replicas"`
	MaxIdleConnections int      `toml:"max_idle_connections"`
	MaxOpenConnections int      `toml:"max_open_connections"`
	ConnMaxLifetime    int      `toml:"conn_max_lifetime"` // 秒
	ConnMaxIdleTime    int      `toml:"conn_max_idle_time"`
	ProxyEnabled       bool     `toml:"proxy_enabled"`
	ProxyAddr          string   `toml:"proxy_addr"`
}

type Logger struct {
	Level      string `toml:"level"`
	MaxSize    int    `toml:"max_size"`
	MaxBackups int    `toml:"max_backups"`
	MaxAge     int    `toml:"max_age"`
	Compress   bool   `toml:"compress"`
	Console    bool   `toml:"console"`
}

type Config struct {
	Dashboard Dashboard `toml:"dashboard"`
	Database  Database  `toml:"database"`
	Logger    Logger    `toml:"log"`
}

var (
	cfg     *Config
	cfgLock sync.RWMutex
)

func Default() *Config {
	return &Config{
		Dashboard: Dashboard{
			Source:                  SourceCSV,
			NftFile:                 "nft_details.csv",
			WinnerFile:              "winner_list.csv",
			ReferenceDate:           "2025-01-02",
			MintDateLayout:          "1/2/2006",
			LifeWindowDays:          365,
			EquipmentLabelThreshold: 5,
			BoostLabelThreshold:     3,
			OwnershipLabelThreshold: 3,
			LeaderboardSize:         10,
			ReportCacheTTL:          5 * time.Minute,
			HTTPAddr:                "0.0.0.0:16900",
			MaxConcurrentReports:    8,
		},
		Database: Database{
			Driver:             "sqlite",
			DSN:                "file:dashboard.db?mode=ro",
			MaxIdleConnections: 4,
			MaxOpenConnections: 16,
			ConnMaxLifetime:    7200,
			ConnMaxIdleTime:    3600,
			ProxyAddr:          "127.0.0.1:7890",
		},
		Logger: Logger{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 30,
			MaxAge:     7,
		},
	}
}

// Load 读取 TOML 配置（覆盖默认值）并校验
func Load(path string) error {
	c := Default()
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}

	cfgLock.Lock()
	defer cfgLock.Unlock()
	cfg = c

	return nil
}

// Get 返回已加载的配置，未加载时返回默认配置
func Get() *Config {
	cfgLock.RLock()
	defer cfgLock.RUnlock()
	if cfg == nil {
		return Default()
	}
	return cfg
}

// ReferenceTime 解析参考日期（life_left 的 "今天"）
func (d Dashboard) ReferenceTime() (time.Time, error) {
	return time.Parse(time.DateOnly, d.ReferenceDate)
}

func (c *Config) Validate() error {
	d := c.Dashboard
	switch d.Source {
	case SourceCSV:
		if d.NftFile == "" || d.WinnerFile == "" {
			return fmt.Errorf("nft_file and winner_file are required for csv source")
		}
	case SourceDB:
		if c.Database.DSN == "" {
			return fmt.Errorf("database dsn is required for db source")
		}
	default:
		return fmt.Errorf("unknown source %q (must be csv or db)", d.Source)
	}

	if _, err := d.ReferenceTime(); err != nil {
		return fmt.Errorf("reference_date: %w", err)
	}
	if d.MintDateLayout == "" {
		return fmt.Errorf("mint_date_layout is required")
	}
	if d.LifeWindowDays <= 0 {
		return fmt.Errorf("life_window_days must be positive")
	}
	if d.LeaderboardSize <= 0 {
		return fmt.Errorf("leaderboard_size must be positive")
	}
	if d.MaxConcurrentReports <= 0 {
		return fmt.Errorf("max_concurrent_reports must be positive")
	}
	for name, v := range map[string]float64{
		"equipment_label_threshold": d.EquipmentLabelThreshold,
		"boost_label_threshold":     d.BoostLabelThreshold,
		"ownership_label_threshold": d.OwnershipLabelThreshold,
	} {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be within [0, 100], got %v", name, v)
		}
	}

	return nil
}
