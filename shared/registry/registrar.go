package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ftotnem/lichess-stats/shared/config"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ServiceRegistrar handles the self-registration and heartbeating of a service instance.
type ServiceRegistrar struct {
	redisClient redis.UniversalClient
	serviceType string
	cfg         *config.CommonConfig
	serviceID   string
	metadata    map[string]string
	logger      *zap.Logger
	stopChan    chan struct{}
	doneChan    chan struct{}
}

// NewServiceRegistrar creates a new ServiceRegistrar for serviceType.
func NewServiceRegistrar(redisClient redis.UniversalClient, serviceType string, cfg *config.CommonConfig, metadata map[string]string, logger *zap.Logger) *ServiceRegistrar {
	return &ServiceRegistrar{
		redisClient: redisClient,
		serviceType: serviceType,
		cfg:         cfg,
		serviceID:   fmt.Sprintf("%s-%s", serviceType, uuid.New().String()),
		metadata:    metadata,
		logger:      logger.With(zap.String("service_type", serviceType)),
		stopChan:    make(chan struct{}),
		doneChan:    make(chan struct{}),
	}
}

// Start begins the service registration and heartbeating process in a goroutine.
func (sr *ServiceRegistrar) Start() {
	sr.logger.Info("Starting service registrar",
		zap.String("service_id", sr.serviceID),
		zap.String("ip", sr.cfg.ServiceIP),
		zap.Int("port", sr.cfg.ServicePort),
	)
	go sr.run()
}

// Stop signals the registrar to stop, waits for it, and removes this instance from the registry.
func (sr *ServiceRegistrar) Stop() {
	close(sr.stopChan)
	<-sr.doneChan

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sr.redisClient.HDel(ctx, sr.hashKey(), sr.serviceID).Err(); err != nil {
		sr.logger.Error("Failed to remove service from registry on shutdown", zap.String("service_id", sr.serviceID), zap.Error(err))
		return
	}
	sr.logger.Info("Service removed from registry", zap.String("service_id", sr.serviceID))
}

// run is the main loop for the registrar's background goroutine.
func (sr *ServiceRegistrar) run() {
	defer close(sr.doneChan)

	ticker := time.NewTicker(sr.cfg.HeartbeatInterval)
	defer ticker.Stop()

	var cleanup <-chan time.Time
	if sr.cfg.RegistryCleanupInterval > 0 {
		cleanupTicker := time.NewTicker(sr.cfg.RegistryCleanupInterval)
		defer cleanupTicker.Stop()
		cleanup = cleanupTicker.C
	}

	sr.registerService()
	for {
		select {
		case <-ticker.C:
			sr.registerService()
		case <-cleanup:
			sr.performCleanup()
		case <-sr.stopChan:
			return
		}
	}
}

func (sr *ServiceRegistrar) hashKey() string {
	return RedisRegistryHashPrefix + sr.serviceType
}

// registerService performs the actual registration/heartbeat in Redis.
func (sr *ServiceRegistrar) registerService() {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	infoJSON, err := json.Marshal(sr.serviceInfo(time.Now()))
	if err != nil {
		sr.logger.Error("Failed to marshal ServiceInfo", zap.Error(err))
		return
	}

	if err := sr.redisClient.HSet(ctx, sr.hashKey(), sr.serviceID, infoJSON).Err(); err != nil {
		sr.logger.Error("Failed to heartbeat service to Redis", zap.String("service_id", sr.serviceID), zap.Error(err))
		return
	}
	sr.logger.Debug("Service heartbeated", zap.String("service_id", sr.serviceID))
}

func (sr *ServiceRegistrar) serviceInfo(now time.Time) ServiceInfo {
	return ServiceInfo{
		ServiceID:   sr.serviceID,
		ServiceType: sr.serviceType,
		IP:          sr.cfg.ServiceIP,
		Port:        sr.cfg.ServicePort,
		LastSeen:    now.UnixMilli(),
		Metadata:    sr.metadata,
	}
}

// performCleanup removes registry entries whose heartbeat is older than HeartbeatTTL.
func (sr *ServiceRegistrar) performCleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	results, err := sr.redisClient.HGetAll(ctx, sr.hashKey()).Result()
	if err != nil {
		sr.logger.Error("Cleanup failed to read registry", zap.Error(err))
		return
	}

	stale := staleEntries(results, time.Now(), sr.cfg.HeartbeatTTL)
	if len(stale) == 0 {
		return
	}
	if err := sr.redisClient.HDel(ctx, sr.hashKey(), stale...).Err(); err != nil {
		sr.logger.Error("Cleanup failed to delete stale entries", zap.Strings("service_ids", stale), zap.Error(err))
		return
	}
	sr.logger.Info("Removed stale services from registry", zap.Strings("service_ids", stale))
}

// staleEntries returns the IDs of corrupt entries and of entries last seen more than ttl before now.
func staleEntries(entries map[string]string, now time.Time, ttl time.Duration) []string {
	var stale []string
	for instanceID, infoJSON := range entries {
		var info ServiceInfo
		if err := json.Unmarshal([]byte(infoJSON), &info); err != nil {
			stale = append(stale, instanceID)
			continue
		}
		if now.Sub(time.UnixMilli(info.LastSeen)) > ttl {
			stale = append(stale, instanceID)
		}
	}
	return stale
}

// GetServiceID returns the unique ID assigned to this service instance.
func (sr *ServiceRegistrar) GetServiceID() string {
	return sr.serviceID
}
