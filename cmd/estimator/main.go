package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"job-estimator/config"
	"job-estimator/internal/application"
	"job-estimator/internal/infra/audio"
	"job-estimator/internal/infra/openai"
	"job-estimator/internal/infra/web"
)

const drainTimeout = 15 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// A missing .env is fine; the variables may come from the environment.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := setupLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setting up logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	mic := createMicrophone(cfg.Audio, logger)
	client := openai.NewClientWithURL(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL)

	dashboard := application.NewDashboard(client, client, mic, logger)

	server := web.NewServer(web.Options{
		Addr:           cfg.Server.Addr,
		RateLimit:      *cfg.Server.RateLimit,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}, dashboard, logger)

	logger.Info("starting job estimator",
		zap.String("addr", cfg.Server.Addr),
		zap.String("audio_source", mic.Name()),
	)

	if err := server.Start(ctx); err != nil {
		logger.Error("starting server", zap.Error(err))
		os.Exit(1)
	}

	<-ctx.Done()

	if err := server.Stop(); err != nil {
		logger.Error("stopping server", zap.Error(err))
	}

	// Let a capture in flight finish so the microphone is released.
	drainCtx, drainCancel := context.WithTimeout(context.Background(), drainTimeout)
	defer drainCancel()
	if err := dashboard.Wait(drainCtx); err != nil {
		logger.Warn("shutting down with work in flight", zap.Error(err))
	}
}

func createMicrophone(cfg config.AudioConfig, logger *zap.Logger) application.Microphone {
	switch cfg.Source {
	case "file":
		return audio.NewFileSource(cfg.FilePath, logger)
	case "microphone":
		return audio.NewMicrophoneSource(cfg.SampleRate, logger)
	default:
		logger.Warn("unknown audio source, using microphone", zap.String("source", cfg.Source))
		return audio.NewMicrophoneSource(cfg.SampleRate, logger)
	}
}

func setupLogger(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sink := zapcore.Lock(os.Stdout)
	if cfg.File != "" {
		sink = zapcore.NewMultiWriteSyncer(sink, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}))
	}

	return zap.New(zapcore.NewCore(encoder, sink, level), zap.AddCaller()), nil
}
