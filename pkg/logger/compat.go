package logger

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// logf 兼容 printf 风格调用，跳过两层栈帧以记录真实调用位置
func logf(event *zerolog.Event, format string, args ...any) {
	if event == nil {
		return
	}
	event = event.CallerSkipFrame(2)
	if len(args) == 0 {
		event.Msg(format)
		return
	}
	event.Msg(fmt.Sprintf(format, args...))
}

func Infof(format string, v ...any) {
	logf(log.Logger.Info(), format, v...)
}

func Debugf(format string, v ...any) {
	logf(log.Logger.Debug(), format, v...)
}

func Warnf(format string, v ...any) {
	logf(log.Logger.Warn(), format, v...)
}

func Errorf(format string, v ...any) {
	logf(log.Logger.Error(), format, v...)
}
