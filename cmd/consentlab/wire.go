package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/davicafu/consentlab/internal/config"
	consentApp "github.com/davicafu/consentlab/internal/consent/application"
	consentDomain "github.com/davicafu/consentlab/internal/consent/domain"
	consentPostgres "github.com/davicafu/consentlab/internal/consent/infra/outbound/db/postgres"
	consentSQLite "github.com/davicafu/consentlab/internal/consent/infra/outbound/db/sqlite"
	consentFixtures "github.com/davicafu/consentlab/internal/consent/infra/outbound/fixtures"
	dashboardApp "github.com/davicafu/consentlab/internal/dashboard/application"
	dashboardDomain "github.com/davicafu/consentlab/internal/dashboard/domain"
	dashboardClickHouse "github.com/davicafu/consentlab/internal/dashboard/infra/outbound/analytics/clickhouse"
	documentApp "github.com/davicafu/consentlab/internal/document/application"
	documentDomain "github.com/davicafu/consentlab/internal/document/domain"
	documentFS "github.com/davicafu/consentlab/internal/document/infra/outbound/filesystem"
	documentFixtures "github.com/davicafu/consentlab/internal/document/infra/outbound/fixtures"
	referralApp "github.com/davicafu/consentlab/internal/referral/application"
	referralDomain "github.com/davicafu/consentlab/internal/referral/domain"
	referralMongo "github.com/davicafu/consentlab/internal/referral/infra/outbound/db/mongodb"
	referralFixtures "github.com/davicafu/consentlab/internal/referral/infra/outbound/fixtures"
	sharedEvents "github.com/davicafu/consentlab/internal/shared/events"
	infraCache "github.com/davicafu/consentlab/internal/shared/infra/cache"
	sharedSQLite "github.com/davicafu/consentlab/internal/shared/infra/db/sqlite"
	infraEvents "github.com/davicafu/consentlab/internal/shared/infra/events"
	"github.com/davicafu/consentlab/internal/shared/infra/inbound/consumer"
	"github.com/davicafu/consentlab/internal/shared/infra/relayer"
	sharedBus "github.com/davicafu/consentlab/internal/shared/platform/bus"
	sharedCache "github.com/davicafu/consentlab/internal/shared/platform/cache"
	"github.com/davicafu/consentlab/internal/shared/platform/provider"
	taskApp "github.com/davicafu/consentlab/internal/task/application"
	taskDomain "github.com/davicafu/consentlab/internal/task/domain"
	taskSQLite "github.com/davicafu/consentlab/internal/task/infra/outbound/db/sqlite"
	taskFixtures "github.com/davicafu/consentlab/internal/task/infra/outbound/fixtures"
)

const consumerGroup = "consentlab-dataset-invalidation"

// App agrupa los servicios ya cableados y lo que hay que arrancar o cerrar.
type App struct {
	Applications *consentApp.ApplicationService
	Referrals    *referralApp.ReferralService
	Documents    *documentApp.DocumentService
	Tasks        *taskApp.TaskService
	Dashboard    *dashboardApp.DashboardService

	background []func(ctx context.Context)
	closers    []func()
}

// StartBackground lanza los workers (outbox, consumidores, fotos del panel).
func (a *App) StartBackground(ctx context.Context) {
	for _, run := range a.background {
		go run(ctx)
	}
}

// Close libera los recursos en orden inverso al de apertura.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func wire(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	app := &App{}

	// ---------------- DB ----------------
	// El tablero y el outbox viven siempre en SQLite.
	db, err := sharedSQLite.Open(cfg.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	app.closers = append(app.closers, func() { db.Close() })
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// ---------------- Cache ----------------
	cache := buildCache(ctx, cfg, log, app)

	// ---------------- Providers ----------------
	appsSource, err := applicationSource(ctx, cfg, db, log, app)
	if err != nil {
		return nil, err
	}
	refsSource, err := referralSource(ctx, cfg, log, app)
	if err != nil {
		return nil, err
	}
	docsSource, docStore, err := documentSource(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	taskRepo, err := taskStore(ctx, db)
	if err != nil {
		return nil, err
	}

	apps := provider.NewCached(appsSource, cache, consentDomain.Dataset, cfg.CacheTTL, log)
	refs := provider.NewCached(refsSource, cache, referralDomain.Dataset, cfg.CacheTTL, log)
	docs := provider.NewCached(docsSource, cache, documentDomain.Dataset, cfg.CacheTTL, log)
	tasks := provider.NewCached[taskDomain.Task](taskRepo, cache, taskDomain.Dataset, cfg.CacheTTL, log)

	// ---------------- Events ---------------
	registry := sharedEvents.MergeRegistries(sharedEvents.NewDatasetRegistry(), taskDomain.NewEventRegistry())
	datasetConsumer := consumer.NewDatasetConsumer(registry, log, apps, refs, docs, tasks)

	var publisher sharedBus.EventPublisher
	if cfg.UseKafka {
		log.Info("🚀 Usando Kafka como bus de eventos", zap.Strings("brokers", cfg.KafkaBrokers))
		writer := infraEvents.NewKafkaWriter(cfg.KafkaBrokers, cfg.KafkaTopic)
		app.closers = append(app.closers, func() { writer.Close() })
		publisher = infraEvents.NewKafkaPublisher(writer, log)

		reader := infraEvents.NewKafkaReader(cfg.KafkaBrokers, cfg.KafkaTopic, consumerGroup)
		adapter := infraEvents.NewConsumerAdapter(reader, datasetConsumer, log)
		app.background = append(app.background, adapter.Start)
	} else {
		bus := infraEvents.NewInMemoryEventBus(cfg.KafkaTopic, log)
		log.Info("⚡️ Usando bus de eventos en memoria (canales de Go)", zap.String("topic", bus.Topic()))
		publisher = bus
		ch := bus.Subscribe(32)
		app.background = append(app.background, func(ctx context.Context) {
			infraEvents.BackgroundConsumerChan(ctx, ch, datasetConsumer)
		})
	}

	// ------------ Outbox Worker ------------
	worker := relayer.NewOutboxWorker(sharedSQLite.NewOutboxRepoSQLite(db), publisher, registry, cfg.OutboxPeriod, cfg.OutboxLimit, log)
	app.background = append(app.background, worker.Start)

	// --------------- Servicios --------------
	app.Applications = consentApp.NewApplicationService(apps, log)
	app.Referrals = referralApp.NewReferralService(refs, time.Now, log)
	app.Documents = documentApp.NewDocumentService(docs, docStore, publisher, time.Now, log)
	app.Tasks = taskApp.NewTaskService(tasks, taskRepo, tasks, time.Now, log)

	snapshots, err := snapshotRepo(ctx, cfg, log, app)
	if err != nil {
		return nil, err
	}
	app.Dashboard = dashboardApp.NewDashboardService([]dashboardApp.Source{
		{Dataset: consentDomain.Dataset, Stats: app.Applications, Fields: []string{"status", "department"}},
		{Dataset: referralDomain.Dataset, Stats: app.Referrals, Fields: []string{"status", "department"}},
		{Dataset: documentDomain.Dataset, Stats: app.Documents, Fields: []string{"classification"}},
		{Dataset: taskDomain.Dataset, Stats: app.Tasks, Fields: []string{"column"}},
	}, snapshots, time.Now, log)
	if snapshots != nil {
		app.background = append(app.background, func(ctx context.Context) {
			app.Dashboard.StartSnapshots(ctx, cfg.SnapshotPeriod)
		})
	}

	return app, nil
}

// buildCache usa Redis si responde; si no, caché en memoria.
func buildCache(ctx context.Context, cfg *config.Config, log *zap.Logger, app *App) sharedCache.Cache {
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		err := rdb.Ping(ctx).Err()
		if err == nil {
			log.Info("✅ Redis conectado, cache habilitado")
			app.closers = append(app.closers, func() { rdb.Close() })
			return infraCache.NewRedisCache(rdb, cfg.CacheTTL)
		}
		log.Warn("⚠️ Redis no disponible, cache en memoria", zap.Error(err))
		rdb.Close()
	}
	mem := infraCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	app.closers = append(app.closers, mem.Stop)
	return mem
}

func applicationSource(ctx context.Context, cfg *config.Config, db *sql.DB, log *zap.Logger, app *App) (provider.Provider[consentDomain.Application], error) {
	if cfg.DataSource == config.SourceFixtures {
		return consentFixtures.NewApplicationRepo()
	}
	seed, err := consentFixtures.Applications()
	if err != nil {
		return nil, err
	}

	if cfg.DataSource == config.SourcePostgres {
		pg, err := consentPostgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { pg.Close() })
		repo := consentPostgres.NewApplicationRepoPostgres(pg)
		if err := repo.Migrate(ctx); err != nil {
			return nil, err
		}
		if err := repo.Seed(ctx, seed); err != nil {
			return nil, err
		}
		log.Info("🐘 Applications served from Postgres")
		return repo, nil
	}

	repo := consentSQLite.NewApplicationRepoSQLite(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, seed); err != nil {
		return nil, err
	}
	log.Info("🗄️ Applications served from SQLite", zap.String("path", cfg.SQLitePath))
	return repo, nil
}

// referralSource usa MongoDB si hay MONGO_URI; si no, los datos de ejemplo.
func referralSource(ctx context.Context, cfg *config.Config, log *zap.Logger, app *App) (provider.Provider[referralDomain.Referral], error) {
	if cfg.MongoURI == "" {
		return referralFixtures.NewReferralRepo()
	}
	client, err := referralMongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { client.Disconnect(context.Background()) })

	repo := referralMongo.NewReferralRepoMongoDB(client, cfg.MongoDB)
	seed, err := referralFixtures.Referrals()
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, seed); err != nil {
		return nil, err
	}
	log.Info("🍃 Referrals served from MongoDB", zap.String("db", cfg.MongoDB))
	return repo, nil
}

// documentSource: con DOCUMENTS_PATH el registro es un fichero JSON escribible.
func documentSource(ctx context.Context, cfg *config.Config, log *zap.Logger) (provider.Provider[documentDomain.Document], documentDomain.DocumentStore, error) {
	if cfg.DocumentsPath == "" {
		p, err := documentFixtures.NewDocumentRepo()
		return p, nil, err
	}
	store := documentFS.NewJSONDocumentStorage(cfg.DocumentsPath)
	seed, err := documentFixtures.Documents()
	if err != nil {
		return nil, nil, err
	}
	seeded, err := store.SeedIfMissing(ctx, seed)
	if err != nil {
		return nil, nil, err
	}
	log.Info("📁 Documents served from JSON file", zap.String("path", cfg.DocumentsPath), zap.Bool("seeded", seeded))
	return store, store, nil
}

func taskStore(ctx context.Context, db *sql.DB) (*taskSQLite.TaskRepoSQLite, error) {
	repo := taskSQLite.NewTaskRepoSQLite(db)
	if err := repo.Migrate(ctx); err != nil {
		return nil, err
	}
	seed, err := taskFixtures.Tasks()
	if err != nil {
		return nil, err
	}
	if err := repo.Seed(ctx, seed); err != nil {
		return nil, err
	}
	return repo, nil
}

// snapshotRepo devuelve nil (sin error) si no hay ClickHouse configurado.
func snapshotRepo(ctx context.Context, cfg *config.Config, log *zap.Logger, app *App) (dashboardDomain.SnapshotRepository, error) {
	if cfg.ClickHouseAddr == "" {
		return nil, nil
	}
	conn, err := dashboardClickHouse.Open(cfg.ClickHouseAddr, cfg.ClickHouseDB)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, func() { conn.Close() })
	repo := dashboardClickHouse.NewSnapshotRepo(conn)
	if err := repo.InitSchema(ctx); err != nil {
		return nil, err
	}
	log.Info("📊 Dashboard snapshots enabled", zap.String("addr", cfg.ClickHouseAddr), zap.Duration("every", cfg.SnapshotPeriod))
	return repo, nil
}
