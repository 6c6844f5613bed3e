package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta"
	"github.com/vfg2006/metrics-sync-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/metrics-sync-api/infrastructure/notifier"
	"github.com/vfg2006/metrics-sync-api/infrastructure/repository"
	"github.com/vfg2006/metrics-sync-api/internal/api"
	"github.com/vfg2006/metrics-sync-api/internal/api/handler"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/internal/scheduler"
	"github.com/vfg2006/metrics-sync-api/internal/usecases/syncing"
	"github.com/vfg2006/metrics-sync-api/pkg/log"
	"github.com/vfg2006/metrics-sync-api/pkg/middleware"
	"github.com/vfg2006/metrics-sync-api/pkg/retry"
)

func main() {
	configureWorkdir()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	entityRepo := repository.NewEntityRepository(pgConn)
	metricsRepo := repository.NewMetricsRepository(pgConn)
	jobRepo := repository.NewSyncJobRepository(pgConn)

	metaIntegrator := meta.New(cfg, metaClient(cfg), meta.WithRetryPolicy(retry.New(
		cfg.MetricsSync.MaxRetries,
		cfg.MetricsSync.RetryInitialInterval,
		cfg.MetricsSync.RetryMaxInterval,
		func(err error, wait time.Duration) {
			logrus.WithError(err).WithField("wait", wait.String()).Warn("Nova tentativa de busca de insights no Meta")
		},
	)))

	health := map[string]handler.Pinger{"postgres": pgConn}

	var changeNotifier syncing.ChangeNotifier = notifier.Noop{}
	if cfg.Redis.Enabled {
		redisClient := notifier.NewRedisClient(cfg.Redis)
		defer redisClient.Close()

		changeNotifier = notifier.NewRedisNotifier(redisClient)
		health["redis"] = handler.PingFunc(func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
		logrus.WithField("addr", cfg.Redis.Addr).Info("Notificações de mudança publicadas no Redis")
	}

	syncService := syncing.NewService(
		entityRepo,
		metaIntegrator,
		metaIntegrator,
		syncing.NewReconciler(time.Now),
		syncing.NewMetricsStore(metricsRepo, changeNotifier, cfg.MetricsSync.StoreChunkSize, time.Now),
		syncing.NewJobTracker(jobRepo, changeNotifier, time.Now),
	)

	metricsSyncScheduler := scheduler.NewMetricsSyncService(entityRepo, syncService, cfg)
	if err := metricsSyncScheduler.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de métricas")
	} else {
		logrus.Info("Agendador de sincronização de métricas iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Dependencies{
		Syncer:    syncService,
		Cron:      metricsSyncScheduler,
		Validator: middleware.NewJWTValidator(cfg.Auth.Secret),
		Health:    health,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// metaClient monta o cliente do Graph API, protegido pelo circuit breaker quando habilitado
func metaClient(cfg *config.Config) metaclient.Client {
	client := metaclient.NewClient(cfg)
	if !cfg.Meta.BreakerEnabled {
		return client
	}
	return metaclient.NewCircuitBreakerClient(client, metaclient.DefaultBreakerSettings("meta-graph"))
}

// configureWorkdir garante que o .env ao lado do binário seja encontrado
func configureWorkdir() {
	_, file, _, _ := runtime.Caller(0)
	os.Chdir(path.Dir(file))
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
