package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/infrastructure/database/postgres"
	"github.com/vfg2006/budget-planner-api/infrastructure/repository"
	"github.com/vfg2006/budget-planner-api/internal/api"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/internal/usecases/allocating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/costing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/planning"
	"github.com/vfg2006/budget-planner-api/internal/usecases/reporting"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spanning"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

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

	userRepo := repository.NewUserRepository(pgConn)
	scenarioRepo := repository.NewScenarioRepository(pgConn)
	headcountRepo := repository.NewHeadcountRepository(pgConn)
	catalogRepo := repository.NewCatalogRepository(pgConn)
	costRowRepo := repository.NewCostRowRepository(pgConn)
	revenueRepo := repository.NewRevenueRepository(pgConn)
	allocationGroupRepo := repository.NewAllocationGroupRepository(pgConn)
	lockRepo := repository.NewScenarioLockRepository()

	authenticator := authenticating.NewService(userRepo, cfg)
	reporter := reporting.NewService(scenarioRepo, costRowRepo)

	spanResolver := spanning.NewService(pgConn, scenarioRepo, headcountRepo, lockRepo)
	costEngine := costing.NewService(
		pgConn,
		scenarioRepo,
		headcountRepo,
		catalogRepo,
		costRowRepo,
		revenueRepo,
		lockRepo,
		cfg,
	)
	allocSolver := allocating.NewService(
		pgConn,
		scenarioRepo,
		headcountRepo,
		catalogRepo,
		allocationGroupRepo,
		costRowRepo,
		lockRepo,
		cfg,
	)
	overheadPlanner := planning.NewService(scenarioRepo, headcountRepo)

	recomputeSyncService := scheduler.NewRecomputeSyncService(scenarioRepo, costEngine, cfg)
	if err := recomputeSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recálculo de cenários")
	} else {
		logrus.Info("Agendador de recálculo de cenários iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		reporter,
		costEngine,
		spanResolver,
		allocSolver,
		overheadPlanner,
		recomputeSyncService,
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

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
