package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PritamP20/Streamer.fun/internal/config"
	"github.com/PritamP20/Streamer.fun/internal/dispatch"
	"github.com/PritamP20/Streamer.fun/internal/handler"
	"github.com/PritamP20/Streamer.fun/internal/hub"
	"github.com/PritamP20/Streamer.fun/internal/kafka"
	"github.com/PritamP20/Streamer.fun/internal/log"
	"github.com/PritamP20/Streamer.fun/internal/pubsub"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		l := log.L()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Init(log.Config{Level: cfg.Log.Level, ServiceName: "signaling-server"})
	logger := log.L()

	logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Msg("starting signaling server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize hub
	wsHub := hub.NewHub(cfg.WebSocket)
	go wsHub.Run()

	// Optional Kafka chat audit producer for the moderation agents
	var auditProducer dispatch.AuditProducer
	if cfg.Kafka.AuditEnabled {
		producer, err := kafka.NewConfluentProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.Partitions)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to create kafka producer, chat audit disabled")
		} else {
			defer producer.Close()
			auditProducer = producer
			logger.Info().Str("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("connected to kafka")
		}
	}

	// Initialize dispatcher (the single writer of all room state)
	dispatcher := dispatch.New(wsHub, cfg.Stream, auditProducer)
	go dispatcher.Run(ctx)

	// Optional Redis bridge for marketplace events
	if cfg.Redis.MarketEventsEnabled {
		subscriber, err := pubsub.NewRedisSubscriber(cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to connect to redis, market events disabled")
		} else {
			defer subscriber.Close()
			bridge := pubsub.NewMarketBridge(subscriber, dispatcher, cfg.Redis.MarketEventsChannel)
			if err := bridge.Start(ctx); err != nil {
				logger.Warn().Err(err).Msg("failed to start market bridge")
			} else {
				defer bridge.Stop()
				logger.Info().Str("channel", cfg.Redis.MarketEventsChannel).Msg("subscribed to market events")
			}
		}
	}

	// Initialize handler
	wsHandler := handler.NewWSHandler(wsHub, dispatcher, cfg.CORS)

	// Setup HTTP server
	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("signaling server is running\n"))
	})

	server := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     log.HTTPMiddleware(logger)(mux),
		IdleTimeout: 60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().Str("host", cfg.Server.Host).Int("port", cfg.Server.Port).Str("cors_origin", cfg.CORS.AllowedOrigin).Msg("signaling server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down signaling server")

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("signaling server stopped")
}
