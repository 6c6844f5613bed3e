package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/metrics-sync-api/infrastructure/database/postgres"
	"github.com/vfg2006/metrics-sync-api/internal/config"
	"github.com/vfg2006/metrics-sync-api/pkg/log"
)

// Aplica as migrações embutidas sem subir a API
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}
	log.Configure(cfg.App.LogLevel)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// a própria execução abaixo cuida das migrações
	cfg.Database.AutoMigrate = false

	conn, err := postgres.NewConnection(ctx, cfg.Database)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}
	defer conn.Close()

	if err := conn.Migrate(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações")
	}
}
