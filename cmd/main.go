package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/pflag"

	"github.com/m04kA/SMC-EventPlanner/internal/api"
	addEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/add_event"
	clearEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/clear_events"
	getCatalogHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/get_catalog"
	listEventsHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/list_events"
	nextFreeDateHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/next_free_date"
	removeEventHandler "github.com/m04kA/SMC-EventPlanner/internal/api/handlers/remove_event"
	"github.com/m04kA/SMC-EventPlanner/internal/config"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/rulefile"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/eventstore"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/filesnapshot"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/mongoevents"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/persistence"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/pgevents"
	"github.com/m04kA/SMC-EventPlanner/internal/infra/storage/s3snapshot"
	"github.com/m04kA/SMC-EventPlanner/internal/service/availability"
	eventsService "github.com/m04kA/SMC-EventPlanner/internal/service/events"
	addEventUC "github.com/m04kA/SMC-EventPlanner/internal/usecase/add_event"
	"github.com/m04kA/SMC-EventPlanner/pkg/dbmetrics"
	"github.com/m04kA/SMC-EventPlanner/pkg/logger"
	"github.com/m04kA/SMC-EventPlanner/pkg/metrics"
	"github.com/m04kA/SMC-EventPlanner/pkg/txmanager"
)

func main() {
	configPath := pflag.StringP("config", "c", "config.toml", "path to config.toml")
	pflag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-EventPlanner...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Загружаем каталог ресурсов и правила
	catalog, err := rulefile.LoadCatalog(cfg.Planner.CatalogFile)
	if err != nil {
		log.Fatal("Failed to load resource catalog: %v", err)
	}
	rules, err := rulefile.LoadRules(cfg.Planner.RulesFile)
	if err != nil {
		log.Fatal("Failed to load rules: %v", err)
	}
	log.Info("Catalog loaded from %s (rooms=%d, resources=%d), rules loaded from %s (event types=%d)",
		cfg.Planner.CatalogFile, len(catalog.Rooms()), len(catalog.Resources()),
		cfg.Planner.RulesFile, len(rules.EventRules))

	// Инициализируем хранилище событий
	ctx := context.Background()
	backend, closeBackend, err := newPersister(ctx, cfg, metricsCollector, stopMetricsCh, log)
	if err != nil {
		log.Fatal("Failed to initialize storage driver %s: %v", cfg.Storage.Driver, err)
	}
	defer closeBackend()

	persister := persistence.NewObserved(
		backend,
		cfg.Storage.Driver,
		time.Duration(cfg.Storage.Timeout)*time.Second,
		metricsCollector,
		log,
	)

	store := eventstore.New()
	engine := availability.NewEngine(store, catalog, cfg.Planner.SearchHorizonDays, metricsCollector, log)

	// Общая блокировка: проверка + добавление и удаление выполняются последовательно
	mu := &sync.RWMutex{}

	eventSvc := eventsService.NewService(store, persister, engine, catalog, mu, metricsCollector, log)
	if _, err := eventSvc.Restore(ctx); err != nil {
		log.Fatal("Failed to restore events: %v", err)
	}

	addEventUseCase := addEventUC.NewUseCase(
		store,
		catalog,
		rules,
		engine,
		persister,
		mu,
		cfg.Planner.MaxAdvanceDays,
		metricsCollector,
		log,
	)

	// Инициализируем handlers и роутер
	r := api.NewRouter(api.Handlers{
		AddEvent:     addEventHandler.NewHandler(addEventUseCase, log),
		ListEvents:   listEventsHandler.NewHandler(eventSvc, log),
		RemoveEvent:  removeEventHandler.NewHandler(eventSvc, log),
		ClearEvents:  clearEventsHandler.NewHandler(eventSvc, log),
		NextFreeDate: nextFreeDateHandler.NewHandler(eventSvc, log),
		GetCatalog:   getCatalogHandler.NewHandler(eventSvc),
	}, api.RouterOptions{
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

// newPersister создает хранилище списка событий по storage.driver
// Возвращаемая функция освобождает ресурсы драйвера
func newPersister(
	ctx context.Context,
	cfg *config.Config,
	m *metrics.Metrics,
	stopMetricsCh <-chan struct{},
	log *logger.Logger,
) (persistence.EventPersister, func(), error) {
	timeout := time.Duration(cfg.Storage.Timeout) * time.Second

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		pg := cfg.Storage.Postgres
		db, err := sql.Open("postgres", pg.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(pg.MaxOpenConns)
		db.SetMaxIdleConns(pg.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(pg.ConnMaxLifetime) * time.Second)

		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := db.PingContext(pingCtx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)", pg.Host, pg.Port, pg.DBName)

		wrapped := dbmetrics.WrapWithDefault(db, m, stopMetricsCh)
		repo := pgevents.NewRepository(wrapped, txmanager.NewTransactionManager(wrapped))
		if err := repo.EnsureSchema(pingCtx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return repo, func() { db.Close() }, nil

	case config.StorageMongo:
		mc := cfg.Storage.Mongo
		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		p, err := mongoevents.Connect(connectCtx, mc.URI, mc.Database, mc.Collection)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Successfully connected to MongoDB (db=%s, collection=%s)", mc.Database, mc.Collection)

		return p, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			if err := p.Close(closeCtx); err != nil {
				log.Error("Failed to disconnect from MongoDB: %v", err)
			}
		}, nil

	case config.StorageS3:
		sc := cfg.Storage.S3
		client, err := s3snapshot.NewClient(sc.Region, sc.Endpoint)
		if err != nil {
			return nil, nil, err
		}
		p, err := s3snapshot.New(client, sc.Bucket, sc.Key)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using S3 snapshot s3://%s/%s (region=%s)", sc.Bucket, sc.Key, sc.Region)
		return p, func() {}, nil

	default:
		p, err := filesnapshot.New(cfg.Storage.File.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Info("Using file snapshot %s (format=%s)", cfg.Storage.File.Path, p.Format())
		return p, func() {}, nil
	}
}
