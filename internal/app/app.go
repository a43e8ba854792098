package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-core/internal/config"
	"github.com/vancomm/minesweeper-core/internal/session"
	"github.com/vancomm/minesweeper-core/internal/ticket"
)

type App struct {
	log     *logrus.Logger
	config  *config.Config
	router  *http.ServeMux
	store   *session.Store
	tickets *ticket.Issuer
	ws      *config.WebSocket
}

func New(log *logrus.Logger, cfg *config.Config) (*App, error) {
	tickets, err := ticket.NewIssuer(cfg.Ticket.Secret, cfg.Ticket.Lifetime)
	if err != nil {
		return nil, err
	}

	app := &App{
		log:     log,
		config:  cfg,
		router:  http.NewServeMux(),
		store:   session.NewStore(cfg.Server.SessionTTL),
		tickets: tickets,
		ws:      config.NewWebSocket(cfg.Server.AllowedOrigins),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Store() *session.Store {
	return a.store
}

// Run serves HTTP on the configured address and sweeps idle sessions until
// ctx is done, then shuts the server down gracefully.
func (a *App) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Server.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", a.config.Server.Addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), a.config.Server.ShutdownTimeout,
		)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.config.Server.SweepInterval)
	})

	return g.Wait()
}
