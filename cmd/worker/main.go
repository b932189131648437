// The worker consumes call/process events and hands each new call record to
// the transcript-scoring pipeline. Scoring itself runs behind this boundary;
// the worker's job is to keep webhook handlers from ever waiting on it.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/dealsignal/callintake/internal/config"
	"github.com/dealsignal/callintake/internal/domain/entity"
	"github.com/dealsignal/callintake/internal/infrastructure/messaging"
	"github.com/dealsignal/callintake/internal/platform/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Output:      cfg.Log.Output,
		FilePath:    cfg.Log.FilePath,
		Development: cfg.Log.Development,
	})
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	bus, err := messaging.NewRedisBus(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer func() {
		if err := bus.Close(); err != nil {
			zapLogger.Error("Failed to close event bus", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := bus.Subscribe(ctx, cfg.Intake.EventChannel)
	if err != nil {
		zapLogger.Fatal("Failed to subscribe to event channel",
			zap.String("channel", cfg.Intake.EventChannel),
			zap.Error(err))
	}

	zapLogger.Info("Scoring dispatcher started",
		zap.String("channel", cfg.Intake.EventChannel))

	go func() {
		for msg := range messages {
			var event entity.CallCreatedEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				zapLogger.Warn("Discarding malformed event",
					zap.String("channel", msg.Channel),
					zap.Error(err))
				continue
			}

			// Hand-off point to the scoring pipeline. Reprocessing the same
			// call id here must stay safe: intake's external-id dedupe means
			// redelivered webhooks never mint a second record, and the
			// pipeline keys its work by call record id.
			zapLogger.Info("Dispatching call for scoring",
				zap.String("call_record_id", event.CallRecordID),
				zap.String("source", event.Source))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Scoring dispatcher shutting down")
	cancel()
}
