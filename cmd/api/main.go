package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/almahq/crm-analytics-api/infrastructure/bronze"
	"github.com/almahq/crm-analytics-api/infrastructure/database/postgres"
	"github.com/almahq/crm-analytics-api/infrastructure/migration"
	"github.com/almahq/crm-analytics-api/infrastructure/repository"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/api"
	"github.com/almahq/crm-analytics-api/internal/config"
	"github.com/almahq/crm-analytics-api/internal/scheduler"
	"github.com/almahq/crm-analytics-api/internal/usecases/aggregating"
	"github.com/almahq/crm-analytics-api/internal/usecases/authenticating"
	"github.com/almahq/crm-analytics-api/internal/usecases/diagnosing"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
	"github.com/almahq/crm-analytics-api/internal/usecases/reporting"
	"github.com/sirupsen/logrus"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	// As migrações precisam terminar antes do servidor aceitar conexões
	if err := migration.NewMigrator(pgConn).Run(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao aplicar migrações do banco de dados")
	}

	userRepo := repository.NewUserRepository(pgConn)
	pipelineRunRepo := repository.NewPipelineRunRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)

	bronzeSource := bronze.NewSource(cfg.Pipeline.BronzeDir)
	silverStore := snapshot.NewStore(cfg.Pipeline.SilverDir)
	goldStore := snapshot.NewStore(cfg.Pipeline.GoldDir)

	refiningService := refining.NewService(bronzeSource, silverStore)
	aggregatingService := aggregating.NewService(silverStore, goldStore, bronzeSource)
	diagnosingService := diagnosing.NewService(silverStore, goldStore)
	reportingService := reporting.NewService(goldStore)

	// Inicializa o agendador do pipeline bronze -> silver -> gold
	pipelineSyncService := scheduler.NewPipelineSyncService(
		refiningService,
		aggregatingService,
		diagnosingService,
		pipelineRunRepo,
		cfg,
	)

	// Inicia o agendador em background
	if err := pipelineSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do pipeline de análise")
	} else {
		logrus.Info("Agendador do pipeline de análise iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		reportingService,
		authenticator,
		pipelineSyncService,
		pipelineRunRepo,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
