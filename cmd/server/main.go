package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/your-org/facerec/internal/api"
	"github.com/your-org/facerec/internal/config"
	"github.com/your-org/facerec/internal/observability"
	"github.com/your-org/facerec/internal/recognition"
	"github.com/your-org/facerec/internal/storage"
	"github.com/your-org/facerec/internal/vision"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	observability.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("starting face recognition server", "port", cfg.Server.Port, "storage", cfg.Storage.BasePath)

	known, err := storage.NewKnownStore(cfg.Storage.BasePath)
	if err != nil {
		slog.Error("init known-face store", "error", err)
		os.Exit(1)
	}
	unknown, err := storage.NewUnknownStore(cfg.Storage.BasePath)
	if err != nil {
		slog.Error("init unknown-face store", "error", err)
		os.Exit(1)
	}
	events, err := storage.NewEventStore(cfg.Storage.BasePath)
	if err != nil {
		slog.Error("init event store", "error", err)
		os.Exit(1)
	}
	settings := storage.NewSettingsStore(cfg.Storage.BasePath, cfg.Vision.Tolerance)

	ort.SetSharedLibraryPath(getONNXLibPath())
	if err := ort.InitializeEnvironment(); err != nil {
		slog.Error("onnx runtime init", "error", err)
		os.Exit(1)
	}
	defer ort.DestroyEnvironment()

	detector, err := vision.NewONNXDetector(cfg.Vision)
	if err != nil {
		slog.Error("init detector", "error", err)
		os.Exit(1)
	}
	defer detector.Close()

	service := recognition.NewService(detector, known, unknown, events, settings)

	router := api.NewRouter(api.RouterConfig{
		APIKey:   cfg.Server.APIKey,
		BasePath: cfg.Storage.BasePath,
		Service:  service,
		Known:    known,
		Unknown:  unknown,
		Events:   events,
		Settings: settings,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("server stopped")
}

// getONNXLibPath returns the ONNX Runtime shared library path.
func getONNXLibPath() string {
	switch runtime.GOOS {
	case "windows":
		return "onnxruntime.dll"
	case "linux":
		return "libonnxruntime.so"
	case "darwin":
		return "libonnxruntime.dylib"
	default:
		return "onnxruntime.dll"
	}
}
