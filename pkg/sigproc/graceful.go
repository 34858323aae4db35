package sigproc

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lbun/nft-dashboard/pkg/goplus"
	"github.com/lbun/nft-dashboard/pkg/logger"
)

type HandlerFunc func(os.Signal)

// GracefulShutdown 收到退出信号后执行 shutdown，最多等待 timeout 后强制退出
func GracefulShutdown(timeout time.Duration, shutdown HandlerFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	goplus.Go(func() {
		sig := <-sigChan
		logger.Info().Str("signal", sig.String()).Msg("received signal")

		done := make(chan struct{})
		goplus.Go(func() {
			defer close(done)
			shutdown(sig)
		})

		select {
		case <-done:
		case <-time.After(timeout):
			logger.Warn().Dur("timeout", timeout).Msg("shutdown timed out")
		}

		os.Exit(0)
	})
}
