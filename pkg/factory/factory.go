package factory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/redis/go-redis/v9"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"finaudit/internal/config"
	"finaudit/internal/database"
	"finaudit/internal/domain"
	"finaudit/internal/engine"
	"finaudit/internal/ledger"
	"finaudit/internal/repository"
	"finaudit/internal/service"
	"finaudit/pkg/cache"
	"finaudit/pkg/logger"
)

type Factory interface {
	GetLogger() logger.Logger
	GetConfig() *config.Config
	GetDB() *sql.DB
	GetRedisClient() *redis.Client
	GetCache() cache.Cache
	GetMigrationService() *database.MigrationService

	GetAccountRepository() domain.AccountRepository
	GetJournalRepository() domain.JournalRepository
	GetEventStoreRepository() domain.EventStoreRepository
	GetLedger() domain.Ledger

	GetValidationService() domain.ValidationService
	GetComplianceService() domain.ComplianceService

	Close() error
}

type AppFactory struct {
	config      *config.Config
	logger      logger.Logger
	db          *sql.DB
	redisClient *redis.Client
	cache       cache.Cache
	migrations  *database.MigrationService

	accountRepository    domain.AccountRepository
	journalRepository    domain.JournalRepository
	eventStoreRepository domain.EventStoreRepository
	ledger               domain.Ledger

	auditService      *service.FinancialAuditService
	complianceService domain.ComplianceService
}

func NewFactory() (Factory, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.New(logger.LogLevel(cfg.LogLevel), nil)

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	factory := &AppFactory{
		config:     cfg,
		logger:     log,
		db:         db,
		migrations: database.NewMigrationService(db, cfg.Database.Driver, log),
	}

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			return nil, fmt.Errorf("redis connection failed: %w", err)
		}

		factory.redisClient = redisClient
		factory.cache = cache.NewRedisCache(redisClient, log, "finaudit")
	}

	factory.initRepositories()
	if err := factory.initServices(); err != nil {
		return nil, err
	}

	return factory, nil
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	switch cfg.Database.Driver {
	case "sqlite":
		db, err := sql.Open("sqlite3", cfg.Database.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		return db, nil
	case "postgres":
		connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
			cfg.Database.SSLMode)

		db, err := sql.Open("postgres", connStr)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDriver, cfg.Database.Driver)
	}
}

func (f *AppFactory) initRepositories() {
	f.accountRepository = repository.NewAccountRepository(f.db, f.logger)
	f.journalRepository = repository.NewJournalRepository(f.db, f.logger)
	f.eventStoreRepository = repository.NewEventStoreRepository(f.db, f.logger)
	f.ledger = ledger.NewSQL(f.accountRepository, f.journalRepository, f.logger)
}

func (f *AppFactory) initServices() error {
	observer := service.NewEventPersistingObserver(f.eventStoreRepository, f.logger)

	auditService, err := service.NewFinancialAuditService(
		f.ledger,
		engine.Config{
			TrailCapacity:        f.config.Engine.AuditTrailCapacity,
			SuspiciousMultiplier: f.config.Engine.SuspiciousMultiplier,
			DocumentationRate:    f.config.Engine.DocumentationRate,
			Observers:            []domain.EngineObserver{observer},
		},
		f.config.Engine.WorkerCount,
		f.config.Engine.QueueSize,
		f.logger,
	)
	if err != nil {
		return err
	}
	f.auditService = auditService

	f.complianceService = auditService
	if f.cache != nil {
		f.complianceService = service.NewCachedComplianceService(
			auditService,
			f.cache,
			f.config.Engine.ReportCacheTTL,
			f.logger,
		)
	}

	return nil
}

func (f *AppFactory) GetLogger() logger.Logger {
	return f.logger
}

func (f *AppFactory) GetConfig() *config.Config {
	return f.config
}

func (f *AppFactory) GetDB() *sql.DB {
	return f.db
}

func (f *AppFactory) GetRedisClient() *redis.Client {
	return f.redisClient
}

func (f *AppFactory) GetCache() cache.Cache {
	return f.cache
}

func (f *AppFactory) GetMigrationService() *database.MigrationService {
	return f.migrations
}

func (f *AppFactory) GetAccountRepository() domain.AccountRepository {
	return f.accountRepository
}

func (f *AppFactory) GetJournalRepository() domain.JournalRepository {
	return f.journalRepository
}

func (f *AppFactory) GetEventStoreRepository() domain.EventStoreRepository {
	return f.eventStoreRepository
}

func (f *AppFactory) GetLedger() domain.Ledger {
	return f.ledger
}

func (f *AppFactory) GetValidationService() domain.ValidationService {
	return f.auditService
}

func (f *AppFactory) GetComplianceService() domain.ComplianceService {
	return f.complianceService
}

func (f *AppFactory) Close() error {
	f.auditService.Shutdown()

	if f.redisClient != nil {
		if err := f.redisClient.Close(); err != nil {
			f.logger.Error("Error closing redis client", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return f.db.Close()
}
