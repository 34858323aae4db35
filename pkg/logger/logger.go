package logger

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logMu   sync.Mutex
	writers []*lumberjack.Logger

	TimeFormat = "2006-01-02 15:04:05"
)

// initLogger 初始化全局 logger
func initLogger(config Config) error {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(parseLevel(config.Level))

	if config.LevelFiles.IsEmpty() {
		config.LevelFiles = LevelFiles{{Level: INFO, Path: "logs/info.log"}}
	}

	for _, entry := range config.LevelFiles {
		if err := os.MkdirAll(filepath.Dir(entry.Path), 0755); err != nil {
			return err
		}
	}

	// 已配置的等级位掩码，未单独配置的等级落到 info 文件
	var configured uint8
	for _, entry := range config.LevelFiles {
		configured |= levelBit(parseLevel(entry.Level))
	}

	newWriters := make([]io.Writer, 0, len(config.LevelFiles)+1)
	lumberjacks := make([]*lumberjack.Logger, 0, len(config.LevelFiles))
	for _, entry := range config.LevelFiles {
		lj := &lumberjack.Logger{
			Filename:   entry.Path,
			MaxSize:    config.MaxSize,
			MaxBackups: config.MaxBackups,
			MaxAge:     config.MaxAge,
			Compress:   config.Compress,
		}
		lumberjacks = append(lumberjacks, lj)
		newWriters = append(newWriters, &levelFilterWriter{
			level:      parseLevel(entry.Level),
			configured: configured,
			Writer:     &zerolog.ConsoleWriter{Out: lj, TimeFormat: TimeFormat, NoColor: true},
		})
	}

	if config.Console {
		newWriters = append(newWriters, &zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: TimeFormat})
	}

	logMu.Lock()
	defer logMu.Unlock()

	closeWriters()
	writers = lumberjacks
	log.Logger = zerolog.New(zerolog.MultiLevelWriter(newWriters...)).With().Timestamp().Caller().Logger()

	return nil
}

// levelFilterWriter 只写入指定等级；info 文件兜底未配置的等级，error 文件兜底 fatal
type levelFilterWriter struct {
	level      zerolog.Level
	configured uint8
	io.Writer
}

func (w *levelFilterWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level == w.level {
		return w.Writer.Write(p)
	}

	switch w.level {
	case zerolog.InfoLevel:
		if w.configured&levelBit(level) == 0 && level != zerolog.FatalLevel {
			return w.Writer.Write(p)
		}
	case zerolog.ErrorLevel:
		if level == zerolog.FatalLevel && w.configured&levelBit(level) == 0 {
			return w.Writer.Write(p)
		}
	}
	return len(p), nil
}

// levelBit trace/panic 等不在 0..7 范围的等级不占位
func levelBit(level zerolog.Level) uint8 {
	if level < 0 || level > 7 {
		return 0
	}
	return 1 << uint8(level)
}

func closeWriters() {
	for _, lj := range writers {
		if err := lj.Close(); err != nil {
			log.Logger.Err(err).Str("file", lj.Filename).Msg("close log file failed")
		}
	}
	writers = nil
}

// L 返回全局 logger
func L() zerolog.Logger {
	return log.Logger
}

func Info() *zerolog.Event {
	return log.Logger.Info()
}

func Debug() *zerolog.Event {
	return log.Logger.Debug()
}

func Warn() *zerolog.Event {
	return log.Logger.Warn()
}

func Error() *zerolog.Event {
	return log.Logger.Error()
}

func Fatal() *zerolog.Event {
	return log.Logger.Fatal()
}

// Err 直接记录错误
func Err(err error) *zerolog.Event {
	return log.Logger.Err(err)
}

// Close 关闭所有日志文件
func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	closeWriters()
}
