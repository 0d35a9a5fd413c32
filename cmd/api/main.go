package main

import (
	"context"

	"github.com/grupold/bi-marmoraria-api/infrastructure/database/postgres"
	"github.com/grupold/bi-marmoraria-api/infrastructure/repository"
	"github.com/grupold/bi-marmoraria-api/internal/api"
	"github.com/grupold/bi-marmoraria-api/internal/api/handler"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/scheduler"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/authenticating"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/importing"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/preferences"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/ranking"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/reporting"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/log"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	salesRepo := repository.NewSalesRecordRepository(pgConn, cfg.Import.PageSize)
	globalRepo := repository.NewGlobalConfigRepository(pgConn)
	monthlyRepo := repository.NewMonthlyFinancialRepository(pgConn)
	goalRepo := repository.NewSellerGoalRepository(pgConn)
	preferenceRepo := repository.NewPreferenceRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	importer := importing.NewService(salesRepo, cfg)
	reporter := reporting.NewService(salesRepo, globalRepo, monthlyRepo, cfg)
	ranker := ranking.NewService(salesRepo, goalRepo)
	simulator := simulating.NewService(salesRepo, globalRepo, monthlyRepo, cfg)
	preferenceStore := preferences.NewService(preferenceRepo)

	monthlyRecordsSync := scheduler.NewMonthlyRecordsSyncService(userRepo, simulator, cfg)
	sessionCleanup := scheduler.NewSessionCleanupService(simulator, authenticator, cfg)

	if err := monthlyRecordsSync.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de registros mensais")
	} else {
		logrus.Info("Agendador de registros mensais iniciado com sucesso")
	}

	if err := sessionCleanup.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Authenticator: authenticator,
		Importer:      importer,
		Reporter:      reporter,
		Ranker:        ranker,
		Simulator:     simulator,
		Preferences:   preferenceStore,
		CronJobs: handler.CronJobServices{
			MonthlyRecordsSync: monthlyRecordsSync,
			SessionCleanup:     sessionCleanup,
		},
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
