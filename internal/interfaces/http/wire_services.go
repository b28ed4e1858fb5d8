package http

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	approvalservices "github.com/assetdesk/assetdesk/internal/application/approval/services"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	"github.com/assetdesk/assetdesk/internal/infrastructure/config"
	"github.com/assetdesk/assetdesk/internal/infrastructure/pubsub"
	shareddb "github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

// allServices holds the core components shared by several use cases.
type allServices struct {
	allocator   *services.NumberAllocator
	licenses    *services.LicenseCounter
	ledger      *services.AttachmentLedger
	coordinator *services.RetirementCoordinator
	gateway     *approvalservices.Gateway
}

// ============================================================
// Section 1: Infrastructure - Redis, Repositories, Publisher
// ============================================================

func (c *Container) initInfrastructure() error {
	cfg := c.cfg
	log := c.log

	if cfg.Redis.Enabled {
		client, err := initRedis(cfg, log)
		if err != nil {
			return err
		}
		c.redis = client
	}

	c.tm = shareddb.NewTransactionManager(c.db)
	c.repos = newRepositories(c.db, log)

	if c.redis != nil {
		c.publisher = pubsub.NewRedisAssetEventBus(c.redis, cfg.Events.Channel, log.Named("events"))
	} else {
		log.Infow("Redis disabled, asset events are logged only")
		c.publisher = pubsub.NewLogPublisher(log.Named("events"))
	}
	return nil
}

// initRedis connects to Redis and verifies the connection with a ping.
func initRedis(cfg *config.Config, log logger.Interface) (*redis.Client, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.GetAddr(), err)
	}
	log.Infow("Redis connection established successfully", "addr", cfg.Redis.GetAddr())

	return redisClient, nil
}

// ============================================================
// Section 2: Core components
// ============================================================

func (c *Container) initServices() {
	r := c.repos
	log := c.log

	licenses := services.NewLicenseCounter(r.assetRepo, r.attachmentRepo)
	ledger := services.NewAttachmentLedger(
		c.tm, r.assetRepo, r.attachmentRepo, r.attachmentRepo, licenses, c.publisher, log.Named("ledger"),
	)
	gateway := approvalservices.NewGateway(r.settingRepo, r.flowRepo, r.formRepo, log.Named("approval"))

	c.svcs = &allServices{
		allocator: services.NewNumberAllocator(
			c.tm, r.numberRuleRepo, r.numberTrackRepo, r.assetRepo, log.Named("allocator"),
		),
		licenses: licenses,
		ledger:   ledger,
		coordinator: services.NewRetirementCoordinator(
			c.tm, r.assetRepo, r.attachmentRepo, ledger, gateway, c.publisher, log.Named("retirement"),
		),
		gateway: gateway,
	}
}
