package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/okulov/sweeper/internal/middleware"
	"github.com/okulov/sweeper/internal/session"
)

const sweepInterval = 5 * time.Minute

type App struct {
	log    *logrus.Logger
	router *http.ServeMux
	store  *session.Store
}

func New(log *logrus.Logger, sessionTTL time.Duration) *App {
	app := &App{
		log:    log,
		router: http.NewServeMux(),
		store:  session.NewStore(sessionTTL),
	}
	session.Log = log
	app.loadRoutes()
	return app
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Cors(),
		middleware.Logging(a.log),
	)
}

func (a *App) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:    addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	a.log.Infof("ready to serve @ %s", addr)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe()
	})
	g.Go(func() error {
		return a.store.Run(gCtx, sweepInterval)
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 30*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
