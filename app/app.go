package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo/v5"

	"findaccommodation/worker"
)

// Start serves e on port and runs workerCount workers from pool until SIGINT or
// SIGTERM. A nil pool runs no workers.
func Start(e *echo.Echo, port int, pool *worker.Pool, workerCount int) error {
	sigCtx, sigCancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer sigCancel()

	// start workers
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var workerWg sync.WaitGroup
	if pool != nil {
		for range workerCount {
			workerWg.Go(func() {
				pool.StartWorker(workerCtx)
			})
		}
	}

	slog.Info(fmt.Sprintf("http://localhost:%d", port))

	// start server
	serverErr := make(chan error, 1)
	go func() {
		sc := echo.StartConfig{
			Address:         fmt.Sprintf("0.0.0.0:%d", port),
			GracefulTimeout: 10 * time.Second,
		}
		if err := sc.Start(sigCtx, e); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// wait for shutdown signal or a failed server
	var err error
	select {
	case <-sigCtx.Done():
		slog.Info("shutdown signal received")
	case err = <-serverErr:
	}

	// stop and wait for workers
	workerCancel()
	workerWg.Wait()

	return err
}
