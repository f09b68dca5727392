package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/sharesuki/internal/app/controllers"
	appMigrations "github.com/yigit/sharesuki/internal/app/migrations"
	appRepos "github.com/yigit/sharesuki/internal/app/repositories"
	appRoutes "github.com/yigit/sharesuki/internal/app/routes"
	appServices "github.com/yigit/sharesuki/internal/app/services"
	"github.com/yigit/sharesuki/internal/config"
	"github.com/yigit/sharesuki/internal/db"
	appMiddleware "github.com/yigit/sharesuki/internal/middleware"
	"github.com/yigit/sharesuki/internal/pkg/email"
	"github.com/yigit/sharesuki/internal/pkg/helpers"
	"github.com/yigit/sharesuki/internal/pkg/logger"
	"github.com/yigit/sharesuki/internal/pkg/taskqueue"
)

// DefaultConfigPath is used when no --config flag is given
const DefaultConfigPath = "configs/config.yaml"

// Store is an open database together with its repositories
type Store struct {
	Driver   string
	Repos    *appRepos.Repositories
	migrator *appMigrations.Migrator
	closer   io.Closer
}

// Migrate applies pending migrations and returns how many ran
func (s *Store) Migrate(ctx context.Context) (int, error) {
	return s.migrator.Up(ctx)
}

// Pending lists migrations that have not been applied
func (s *Store) Pending(ctx context.Context) ([]string, error) {
	return s.migrator.Pending(ctx)
}

// Close closes the underlying database
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Dependencies holds all the application dependencies
type Dependencies struct {
	Config *config.Config
	Logger zerolog.Logger
	Store  *Store
	Queue  *taskqueue.Queue
	Sender email.Sender

	NotificationService appServices.NotificationService
	SkillService        appServices.SkillService
	Dispatcher          *appServices.Dispatcher

	SkillController      *appControllers.SkillController
	MatchingController   *appControllers.MatchingController
	VocabularyController *appControllers.VocabularyController
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
// Log lines go to out, or stdout when out is nil.
func LoadConfigAndSetupLogger(configPath string, out io.Writer) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	format := strings.ToLower(cfg.Logging.Format)
	prettyLog := format == "text" || format == "pretty"

	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
		Output: out,
	})
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// OpenStore connects to the configured database without migrating it.
func OpenStore(cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		lgr.Info().Str("host", cfg.Database.Host).Msg("Establishing PostgreSQL connection...")
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   config.DriverPostgres,
			Repos:    appRepos.NewPostgresRepositories(database),
			migrator: appMigrations.NewMigrator(appMigrations.NewPostgresRunner(database), "postgres"),
			closer:   database,
		}, nil

	case config.DriverSQLite:
		lgr.Info().Str("path", cfg.Database.Path).Msg("Opening SQLite database...")
		database, err := db.NewSQLiteDB(cfg.Database.Path)
		if err != nil {
			return nil, err
		}
		return &Store{
			Driver:   config.DriverSQLite,
			Repos:    appRepos.NewSQLiteRepositories(database),
			migrator: appMigrations.NewMigrator(appMigrations.NewSQLiteRunner(database), "sqlite"),
			closer:   database,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*Store, error) {
	store, err := OpenStore(cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Str("driver", store.Driver).Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	applied, err := store.Migrate(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		store.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Int("applied", applied).Msg("Database migrations successfully applied.")

	return store, nil
}

// NewSender builds the email sender described by cfg.
func NewSender(cfg *config.Config, lgr zerolog.Logger) email.Sender {
	return email.NewSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
		Timeout:   helpers.ParseDuration(cfg.SMTP.Timeout, 30*time.Second),
		DryRun:    cfg.SMTP.DryRun,
	}, logger.Component(lgr, "email"))
}

// BuildDependencies initializes the queue, services and controllers on top of store.
func BuildDependencies(cfg *config.Config, store *Store, sender email.Sender, lgr zerolog.Logger) (*Dependencies, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	if sender == nil {
		sender = NewSender(cfg, lgr)
	}

	deps := &Dependencies{
		Config: cfg,
		Logger: lgr,
		Store:  store,
		Sender: sender,
	}

	deps.Queue = taskqueue.New(taskqueue.Config{
		Workers:   cfg.Matching.Workers,
		QueueSize: cfg.Matching.QueueSize,
	}, logger.Component(lgr, "taskqueue"))

	var ledger appRepos.NotificationLedger
	if cfg.Matching.DedupeNotifications {
		ledger = store.Repos.NotificationLedger
		lgr.Info().Msg("Notification de-duplication enabled")
	}

	deps.NotificationService = appServices.NewNotificationService(
		store.Repos.SkillRepository,
		ledger,
		sender,
		helpers.ParseDuration(cfg.Matching.BulkThrottle, time.Second),
		logger.Component(lgr, "notifier"),
	)
	deps.Dispatcher = appServices.NewDispatcher(deps.Queue, deps.NotificationService, logger.Component(lgr, "dispatcher"))
	deps.SkillService = appServices.NewSkillService(store.Repos.SkillRepository, deps.Dispatcher, logger.Component(lgr, "skills"))

	deps.SkillController = appControllers.NewSkillController(deps.SkillService)
	deps.MatchingController = appControllers.NewMatchingController(
		deps.NotificationService,
		deps.SkillService,
		deps.Dispatcher,
		deps.Queue,
	)
	deps.VocabularyController = appControllers.NewVocabularyController()

	return deps, nil
}

// Close drains the background queue, then closes the store. When the drain
// fails the store stays open, since jobs still running may write to it.
func (d *Dependencies) Close(ctx context.Context) error {
	if d.Queue != nil {
		d.Logger.Info().Int("pending", d.Queue.Stats().Pending).Msg("Draining background queue...")
		if err := d.Queue.Close(ctx); err != nil {
			d.Logger.Error().Err(err).Msg("Background queue did not drain, leaving store open")
			return err
		}
	}

	if d.Store != nil {
		if err := d.Store.Close(); err != nil {
			return fmt.Errorf("failed to close store: %w", err)
		}
	}

	return nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(appMiddleware.Recovery(lgr), appMiddleware.RequestLogger(logger.Component(lgr, "http")))

	appRoutes.SetupRouter(router,
		deps.SkillController,
		deps.MatchingController,
		deps.VocabularyController,
		helpers.ParseDuration(cfg.Matching.NotifyTimeout, 5*time.Minute),
	)

	// Health check endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
