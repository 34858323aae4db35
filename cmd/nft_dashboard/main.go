package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/lbun/nft-dashboard/config"
	"github.com/lbun/nft-dashboard/internal/dal"
	"github.com/lbun/nft-dashboard/internal/dao"
	"github.com/lbun/nft-dashboard/internal/monitor"
	"github.com/lbun/nft-dashboard/internal/report"
	"github.com/lbun/nft-dashboard/internal/server"
	"github.com/lbun/nft-dashboard/internal/source"
	"github.com/lbun/nft-dashboard/pkg/logger"
	"github.com/lbun/nft-dashboard/pkg/sigproc"
)

const configEnv = "NFT_DASHBOARD_CONFIG"

func main() {
	// .env 可选
	_ = godotenv.Load()

	defaultConfig := "cfg.toml"
	if v := os.Getenv(configEnv); v != "" {
		defaultConfig = v
	}

	var configFile string
	flag.StringVar(&configFile, "config", defaultConfig, "config file path")
	flag.Parse()

	// 加载配置
	if err := config.Load(configFile); err != nil {
		panic(err)
	}
	cfg := config.Get()

	// 初始化日志
	if err := initLogger(cfg); err != nil {
		panic("init logger failed: " + err.Error())
	}
	defer logger.Close()

	logger.Info().Str("config", configFile).Msg("nft_dashboard service starting...")

	// 初始化指标
	monitor.InitMetrics()

	src, err := newSource(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("init source failed")
	}

	opts, err := report.OptionsFromConfig(cfg.Dashboard)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid report options")
	}

	// 源表只加载一次
	pipeline, err := report.NewPipeline(source.NewLoader(src), opts)
	if err != nil {
		logger.Fatal().Err(err).Str("source", src.Name()).Msg("build report pipeline failed")
	}

	srv, err := server.New(cfg.Dashboard.HTTPAddr, pipeline, cfg.Dashboard.MaxConcurrentReports)
	if err != nil {
		logger.Fatal().Err(err).Msg("init dashboard server failed")
	}
	if err = srv.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start dashboard server failed")
	}

	logger.Info().
		Str("source", src.Name()).
		Str("http_addr", cfg.Dashboard.HTTPAddr).
		Int("unmatched_winners", len(pipeline.Warnings())).
		Msg("nft_dashboard service started successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 优雅关闭
	sigproc.GracefulShutdown(10*time.Second, func(sig os.Signal) {
		logger.Info().Str("signal", sig.String()).Msg("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("stop dashboard server failed")
		}

		dal.CloseSourceDB()
		cancel()

		logger.Info().Msg("nft_dashboard service stopped")
		logger.Close()
	})

	<-ctx.Done()
}

func newSource(cfg *config.Config) (source.Source, error) {
	if cfg.Dashboard.Source != config.SourceDB {
		return source.NewCSVSource(cfg.Dashboard.NftFile, cfg.Dashboard.WinnerFile), nil
	}

	if err := dal.InitSourceDB(cfg.Database); err != nil {
		return nil, err
	}
	if err := dal.CheckSchema(dal.SourceDB()); err != nil {
		return nil, err
	}
	dao.InitDAO(dal.SourceDB())

	return source.NewDBSource(cfg.Database.Driver), nil
}

func initLogger(cfg *config.Config) error {
	return logger.NewBuilder().
		SetMaxSize(cfg.Logger.MaxSize).
		SetMaxBackups(cfg.Logger.MaxBackups).
		SetMaxAge(cfg.Logger.MaxAge).
		SetLevel(cfg.Logger.Level).
		EnableCompression(cfg.Logger.Compress).
		EnableConsoleOutput(cfg.Logger.Console).
		Build()
}
