// The laptop process runs on the developer's machine: it reads code
// off the screen, asks a language model about it, and sends the
// answer to the duck on the Pi to be spoken.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/debug-duck/go-duck/internal/config"
	"github.com/debug-duck/go-duck/internal/log"
	"github.com/debug-duck/go-duck/pkg/laptop"
	"github.com/debug-duck/go-duck/pkg/llm"
	"github.com/debug-duck/go-duck/pkg/ocr"
)

func main() {
	var (
		addr    = flag.String("addr", config.LaptopAddr(), "listen address")
		duckURL = flag.String("duck", config.SentryURL(), "base URL of the sentry on the Pi")
		region  = flag.String("region", "", "capture region x,y,width,height (default: full screen)")
	)
	flag.Parse()

	log.Init(config.LogLevel())
	logger := log.With("process", "laptop")

	key := config.EnvRequired("OPENROUTER_API_KEY", "OPENROUTER_API_KEY=sk-... laptop")
	provider, err := llm.NewClient(llm.WithAPIKey(key))
	if err != nil {
		logger.Error("llm client setup failed", "error", err)
		os.Exit(1)
	}
	defer provider.Close()

	var ocrOpts []ocr.Option
	if *region != "" {
		x, y, w, h, err := ocr.ParseRegion(*region)
		if err != nil {
			logger.Error("invalid capture region", "region", *region, "error", err)
			os.Exit(1)
		}
		ocrOpts = append(ocrOpts, ocr.WithRegion(x, y, w, h))
	}
	screen := ocr.NewService(logger, ocrOpts...)
	defer screen.Close()

	pi := laptop.NewPiClient(*duckURL, 10*time.Second)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := pi.Health(ctx); err != nil {
		logger.Warn("duck not reachable at startup", "url", *duckURL, "error", err)
	}

	srv := laptop.NewServer(laptop.Config{
		Addr:   *addr,
		Screen: screen,
		Helper: llm.NewRouter(provider, logger),
		Duck:   pi,
		Logger: logger,
	})

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen() }()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		if err := srv.Shutdown(); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}
