// main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	cardapi "github.com/Ftotnem/lichess-stats/card/api"
	"github.com/Ftotnem/lichess-stats/card/lichess"
	"github.com/Ftotnem/lichess-stats/card/render"
	"github.com/Ftotnem/lichess-stats/card/service"
	"github.com/Ftotnem/lichess-stats/card/store"
	"github.com/Ftotnem/lichess-stats/shared/api"
	"github.com/Ftotnem/lichess-stats/shared/config"
	"github.com/Ftotnem/lichess-stats/shared/logging"
	mongodbu "github.com/Ftotnem/lichess-stats/shared/mongodb"
	redisu "github.com/Ftotnem/lichess-stats/shared/redis"
	"github.com/Ftotnem/lichess-stats/shared/registry"
	"go.uber.org/zap"
)

const serviceType = "card-service"

func main() {
	// --- 1. Load Configuration ---
	cfg, err := config.LoadCardServiceConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// --- 2. Logger ---
	logger, err := logging.NewLogger(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync() //nolint:errcheck

	defaultVariant, err := render.ParseVariant(cfg.DefaultVariant)
	if err != nil {
		logger.Fatal("Invalid CARD_VARIANT", zap.Error(err))
	}

	// --- 3. Upstream client ---
	lichessClient := lichess.NewClient(cfg.LichessBaseURL, api.NewDefaultHTTPClient(cfg.UpstreamTimeout), logger.Named("lichess"))

	opts := []service.Option{}

	// --- 4. Lookup audit log (optional) ---
	if cfg.MongoDBConnStr != "" {
		mongoClient, err := mongodbu.NewClient(cfg.MongoDBConnStr, cfg.MongoDBDatabase, logger)
		if err != nil {
			logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				logger.Error("Failed to disconnect from MongoDB", zap.Error(err))
			}
		}()

		lookupStore := store.NewLookupStore(mongoClient.Collection(cfg.MongoDBLookupsCollection))
		indexCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := lookupStore.EnsureIndexes(indexCtx); err != nil {
			logger.Warn("Failed to ensure lookup indexes", zap.Error(err))
		}
		cancel()
		opts = append(opts, service.WithLookupRecorder(lookupStore))
	}

	// --- 5. Business logic and handlers ---
	cardService := service.NewCardService(lichessClient, render.Renderer{}, logger.Named("service"), opts...)
	cardHandlers := cardapi.NewCardAPIHandlers(cardService, defaultVariant, cfg.UpstreamTimeout, logger.Named("api"))

	// --- 6. Service registrar (optional) ---
	if cfg.RegistryEnabled {
		redisClient, err := redisu.NewRedisClient(cfg.RedisAddrs, cfg.RedisPassword, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error("Error closing Redis client", zap.Error(err))
			}
		}()

		registrar := registry.NewServiceRegistrar(redisClient, serviceType, &cfg.CommonConfig,
			map[string]string{"default_variant": defaultVariant.String()}, logger.Named("registry"))
		registrar.Start()
		defer registrar.Stop()
	}

	// --- 7. HTTP server ---
	baseServer := api.NewBaseServer(cfg.ListenAddr, logger)
	cardHandlers.RegisterRoutes(baseServer.Router)

	serverErr := make(chan error, 1)
	go func() {
		if err := baseServer.Start(); err != nil {
			serverErr <- err
		}
	}()

	// --- 8. Graceful Shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-stop:
		logger.Info("Shutting down server", zap.Stringer("signal", sig))
	case err := <-serverErr:
		logger.Error("HTTP server failed", zap.Error(err))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := baseServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", zap.Error(err))
		return
	}
	logger.Info("Server gracefully stopped")
}
