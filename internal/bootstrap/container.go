package bootstrap

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"eviden-bot/internal/config"
	"eviden-bot/internal/controller"
	"eviden-bot/internal/pkg/blob"
	"eviden-bot/internal/pkg/logger"
	"eviden-bot/internal/pkg/telegram"
	"eviden-bot/internal/repository/memory"
	"eviden-bot/internal/repository/unitofwork"
	"eviden-bot/internal/service"

	pktNats "eviden-bot/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController controller.IWebhookController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	ConversationService service.IConversationService
	Logger              logger.ILogger

	// Health reports whether the database answers.
	Health func(ctx context.Context) error

	closers []func()
}

// Externals are the network clients the services talk to. Redis and Nats are optional.
type Externals struct {
	Messenger  telegram.Messenger
	BlobStore  blob.Store
	HTTPClient *http.Client
	Redis      *redis.Client
	Nats       service.EventForwarder
}

// NewContainer connects every external client from cfg. Failing to reach a required one is fatal.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	ctx := context.Background()
	var closers []func()

	messenger, err := telegram.NewBotMessenger(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Telegram client: %v", err)
	}

	var store blob.Store
	switch cfg.Storage.Driver {
	case "local":
		publicBase := strings.TrimRight(cfg.Storage.PublicBaseURL, "/") + "/uploads"
		store = blob.NewLocalStore(cfg.Storage.LocalDir, publicBase)
		log.Printf("[INFO] Using Blob Store: LOCAL (%s)", cfg.Storage.LocalDir)
	default:
		gcs, err := blob.NewGCSStore(ctx, cfg.Storage.Bucket, cfg.Storage.CDNDomain, blob.ClientOptions(cfg.Storage.Credentials)...)
		if err != nil {
			log.Fatalf("[FATAL] Failed to initialize GCS client: %v", err)
		}
		closers = append(closers, func() { _ = gcs.Close() })
		store = gcs
		log.Printf("[INFO] Using Blob Store: GCS (bucket %s)", cfg.Storage.Bucket)
	}

	ext := &Externals{
		Messenger:  messenger,
		BlobStore:  store,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}

	// Redis
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{
				Addr: cfg.App.RedisURL,
			}
		}
		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Using in-process update guard", err)
			_ = rdb.Close()
		} else {
			ext.Redis = rdb
			closers = append(closers, func() { _ = rdb.Close() })
		}
	}

	// NATS
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			ext.Nats = natsPub
			closers = append(closers, natsPub.Close)
		}
	}

	c := NewContainerWith(db, cfg, ext)
	c.closers = append(c.closers, closers...)
	return c
}

// NewContainerWith wires services around already built clients.
func NewContainerWith(db *gorm.DB, cfg *config.Config, ext *Externals) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	auditLogger := logger.NewIsolatedLogger(cfg.App.AuditLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.App.ReportTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.ReportTopic,
		auditLogger,
		ext.Nats,
		sysLogger,
	)

	sessionService := service.NewSessionService(uowFactory, sysLogger)
	catalogService := service.NewCatalogService(uowFactory, memory.NewCatalogCache(cfg.Cache.CatalogTTL), sysLogger)
	evidenceService := service.NewEvidenceService(ext.Messenger, ext.BlobStore, ext.HTTPClient, cfg.Storage.EvidenceFolder, sysLogger)
	reportService := service.NewReportService(uowFactory, publisherService, sysLogger)
	conversationService := service.NewConversationService(
		sessionService,
		catalogService,
		evidenceService,
		reportService,
		ext.Messenger,
		sysLogger,
	)
	updateGuard := service.NewUpdateGuard(ext.Redis, cfg.Cache.UpdateTTL)

	// 4. Controllers
	webhookController := controller.NewWebhookController(
		conversationService,
		updateGuard,
		sysLogger,
		cfg.Telegram.WebhookPath,
		cfg.Telegram.WebhookSecret,
		cfg.App.UpdateTimeout,
	)

	return &Container{
		WebhookController:   webhookController,
		ConsumerService:     consumerService,
		ConversationService: conversationService,
		Logger:              sysLogger,
		Health:              databaseHealth(db),
		closers: []func(){
			func() { _ = pubSub.Close() },
			func() { _ = auditLogger.Sync() },
			func() { _ = sysLogger.Sync() },
		},
	}
}

// Close releases clients in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}

func databaseHealth(db *gorm.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
}
