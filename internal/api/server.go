package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/budget-planner-api/internal/api/handler"
	"github.com/vfg2006/budget-planner-api/internal/api/handler/router"
	"github.com/vfg2006/budget-planner-api/internal/config"
	"github.com/vfg2006/budget-planner-api/internal/scheduler"
	"github.com/vfg2006/budget-planner-api/internal/usecases/allocating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/authenticating"
	"github.com/vfg2006/budget-planner-api/internal/usecases/costing"
	"github.com/vfg2006/budget-planner-api/internal/usecases/planning"
	"github.com/vfg2006/budget-planner-api/internal/usecases/reporting"
	"github.com/vfg2006/budget-planner-api/internal/usecases/spanning"
	"github.com/vfg2006/budget-planner-api/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	cfg *config.Config,
	authenticator authenticating.Authenticator,
	reporter reporting.Reporter,
	costEngine costing.Engine,
	spanResolver spanning.Resolver,
	allocSolver allocating.Solver,
	overheadPlanner planning.Planner,
	recomputeSync *scheduler.RecomputeSyncService,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(authenticator)...),
		router.WithRoutes(handler.User(authenticator)...),
		router.WithRoutes(handler.Scenarios(reporter)...),
		router.WithRoutes(handler.Compute(costEngine, spanResolver, allocSolver, overheadPlanner)...),
		router.WithRoutes(handler.CronJobs(recomputeSync)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
		middleware.AuthMiddleware(authenticator),
	}

	chained := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           chained,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
