// The sentry runs on the Raspberry Pi next to the duck: it watches
// the user's face for sustained frustration, speaks comfort when the
// counter fires, voices whatever the laptop sends it, and relays the
// physical button to the laptop's help endpoint.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/debug-duck/go-duck/internal/config"
	"github.com/debug-duck/go-duck/internal/httpc"
	"github.com/debug-duck/go-duck/internal/log"
	"github.com/debug-duck/go-duck/pkg/button"
	"github.com/debug-duck/go-duck/pkg/duck"
	"github.com/debug-duck/go-duck/pkg/emotion"
	"github.com/debug-duck/go-duck/pkg/fer"
	"github.com/debug-duck/go-duck/pkg/llm"
	"github.com/debug-duck/go-duck/pkg/sentry"
	"github.com/debug-duck/go-duck/pkg/tts"
)

func main() {
	var (
		addr      = flag.String("addr", config.SentryAddr(), "listen address")
		camera    = flag.Int("camera", 0, "video device index")
		noCamera  = flag.Bool("no-camera", false, "disable frustration monitoring")
		noButton  = flag.Bool("no-button", false, "disable the GPIO button")
		cascade   = flag.String("cascade", config.CascadePath(), "Haar cascade XML path")
		model     = flag.String("model", config.EmotionModelPath(), "expression ONNX model path")
		ortLib    = flag.String("ort-lib", config.ORTLibPath(), "onnxruntime shared library path")
		buttonPin = flag.Int("button-pin", config.ButtonPin(), "GPIO pin for the help button")
	)
	flag.Parse()

	log.Init(config.LogLevel())
	logger := log.With("process", "sentry")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Speech. Without a voice the duck is pointless, so this one is fatal.
	var ttsOpts []tts.Option
	if bin := config.PiperExecutable(); bin != "" {
		ttsOpts = append(ttsOpts, tts.WithExecutable(bin))
	}
	if voice := config.PiperVoiceModel(); voice != "" {
		ttsOpts = append(ttsOpts, tts.WithVoiceModel(voice))
	}
	speaker, err := tts.NewPiper(ttsOpts...)
	if err != nil {
		logger.Error("piper unavailable", "error", err)
		os.Exit(1)
	}
	defer speaker.Close()

	// Comfort phrases. Without an API key the canned phrases serve.
	var provider llm.Provider
	if key := config.OpenRouterKey(); key != "" {
		provider, err = llm.NewClient(llm.WithAPIKey(key))
		if err != nil {
			logger.Warn("llm client unavailable, using canned phrases", "error", err)
		}
	} else {
		logger.Warn("OPENROUTER_API_KEY not set, using canned comfort phrases")
	}
	router := llm.NewRouter(provider, logger)

	face := duck.NewFace()

	empathize := func(ctx context.Context) {
		phrase := router.ComfortingPhrase(ctx)
		face.Set(duck.ExpressionConcerned)
		if err := speaker.Speak(ctx, phrase); err != nil {
			logger.Error("comfort speech failed", "error", err)
		}
		face.SetFor(duck.ExpressionConcerned, time.Second, duck.ExpressionNeutral)
	}

	// Frustration monitor. Degrades to server-only when the camera
	// stack is unavailable.
	var monitor *fer.Monitor
	if !*noCamera {
		monitor = startMonitor(ctx, monitorDeps{
			camera:  *camera,
			cascade: *cascade,
			model:   *model,
			ortLib:  *ortLib,
			onFire:  func(ctx context.Context, ev *emotion.Event) { empathize(ctx) },
			logger:  logger,
		})
	}

	// Help button. Degrades to HTTP-only when GPIO is unavailable.
	if !*noButton {
		helpURL := config.LaptopURL() + "/get-help"
		listener, err := button.NewListener(button.Config{
			Pin:      *buttonPin,
			Debounce: button.NewDebouncer(config.ButtonDebounce()),
			OnPress: func() {
				go requestHelp(logger, helpURL)
			},
			Logger: logger,
		})
		if err != nil {
			logger.Warn("button unavailable", "error", err)
		} else {
			defer listener.Close()
		}
	}

	srv := sentry.NewServer(sentry.Config{
		Addr:    *addr,
		Speaker: speaker,
		Comfort: router,
		Face:    face,
		Monitor: monitor,
		Logger:  logger,
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

type monitorDeps struct {
	camera  int
	cascade string
	model   string
	ortLib  string
	onFire  fer.FrustrationFunc
	logger  *slog.Logger
}

// startMonitor assembles the camera pipeline and runs the monitor in
// the background. Any setup failure logs a warning and returns nil.
func startMonitor(ctx context.Context, deps monitorDeps) *fer.Monitor {
	faces, err := fer.NewFaceDetector(deps.cascade)
	if err != nil {
		deps.logger.Warn("face detector unavailable, monitoring disabled", "error", err)
		return nil
	}

	confidence := float32(config.ConfidenceThreshold())
	classifier, err := fer.NewONNXClassifier(deps.model, deps.ortLib, confidence)
	if err != nil {
		faces.Close()
		deps.logger.Warn("expression model unavailable, monitoring disabled", "error", err)
		return nil
	}

	cam, err := fer.OpenCamera(deps.camera)
	if err != nil {
		faces.Close()
		classifier.Close()
		deps.logger.Warn("camera unavailable, monitoring disabled", "error", err)
		return nil
	}

	detector, err := emotion.New(
		emotion.DefaultFrustrationSet(),
		config.FrustrationThreshold(),
		config.DecayStep(),
	)
	if err != nil {
		faces.Close()
		classifier.Close()
		cam.Close()
		deps.logger.Warn("invalid frustration settings, monitoring disabled", "error", err)
		return nil
	}

	pipeline := fer.NewPipeline(cam, faces, classifier)
	monitor, err := fer.NewMonitor(fer.MonitorConfig{
		Sampler:       pipeline,
		Detector:      detector,
		Interval:      config.SampleInterval(),
		FrameSkip:     config.FrameSkip(),
		OnFrustration: deps.onFire,
	})
	if err != nil {
		pipeline.Close()
		deps.logger.Warn("monitor setup failed, monitoring disabled", "error", err)
		return nil
	}

	go func() {
		defer pipeline.Close()
		monitor.Run(ctx)
	}()
	return monitor
}

// requestHelp hits the laptop's help endpoint on a button press.
func requestHelp(logger *slog.Logger, url string) {
	resp, err := httpc.Get(url)
	if err != nil {
		logger.Warn("help request failed", "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		logger.Warn("help request rejected", "status", resp.StatusCode)
		return
	}
	logger.Info("help requested via button")
}
