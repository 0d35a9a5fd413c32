package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grupold/bi-marmoraria-api/internal/api/handler"
	"github.com/grupold/bi-marmoraria-api/internal/api/handler/router"
	"github.com/grupold/bi-marmoraria-api/internal/config"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/authenticating"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/importing"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/preferences"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/ranking"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/reporting"
	"github.com/grupold/bi-marmoraria-api/internal/usecases/simulating"
	"github.com/grupold/bi-marmoraria-api/pkg/middleware"
	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
)

const shutdownTimeout = 15 * time.Second

// Services reúne os casos de uso expostos pela API
type Services struct {
	Authenticator authenticating.Authenticator
	Importer      importing.Importer
	Reporter      reporting.Reporter
	Ranker        ranking.Ranker
	Simulator     simulating.Simulator
	Preferences   preferences.Store
	CronJobs      handler.CronJobServices
}

type Server struct {
	httpServer *http.Server
	simulator  simulating.Simulator
}

func New(config *config.Config, services Services) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.Imports(services.Importer, config.Import.MaxUploadMB)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.Rankings(services.Ranker)...),
		router.WithRoutes(handler.Simulation(services.Simulator)...),
		router.WithRoutes(handler.Preferences(services.Preferences)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.App.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
		simulator: services.Simulator,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

// Shutdown para de aceitar requisições e grava as edições do simulador que
// ainda esperavam o debounce
func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}
	logrus.Info("Servidor HTTP desligado com sucesso")

	if s.simulator != nil {
		flushed := s.simulator.FlushAll(ctx)
		logrus.WithField("sessions", flushed).Info("Edições pendentes do DRE gravadas")
	}

	return nil
}
