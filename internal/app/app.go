package app

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/config"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/database"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/rest"
)

// Application wires configuration, storage, router, and server lifecycle.
type Application struct {
	cfg    config.Application
	deps   *Dependencies
	router *mux.Router
	srv    *http.Server
}

// NewApplication constructs the full HTTP application, ready to Run().
func NewApplication() (*Application, error) {
	cfg, err := config.Load("./config/application.yaml")
	if err != nil {
		return nil, err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}

	r := mux.NewRouter()

	deps, err := BuildDependencies(db, cfg)
	if err != nil {
		return nil, err
	}

	SetupMiddleware(r)
	RegisterRoutes(r, deps)

	if cfg.Frontend.Enabled {
		frontend := rest.NewFrontendHandler("frontend", "index.html")
		r.PathPrefix("/").Handler(frontend)
	}

	srv := &http.Server{
		Handler:      r,
		Addr:         cfg.Addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Application{cfg: cfg, deps: deps, router: r, srv: srv}, nil
}

// Run starts the backup scheduler and the HTTP server, and blocks.
func (a *Application) Run() error {
	if a.deps.BackupScheduler != nil {
		if err := a.deps.BackupScheduler.Start(); err != nil {
			return err
		}
		defer a.deps.BackupScheduler.Stop()
	}

	log.Infof("Starting server on %s", a.srv.Addr)
	return a.srv.ListenAndServe()
}

// openDatabase connects and migrates Postgres when it is the configured
// backend. The CSV backend needs no connection.
func openDatabase(cfg config.Application) (*sql.DB, error) {
	if cfg.Storage.Backend != database.BackendPostgres {
		return nil, nil
	}
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(cfg.Database); err != nil {
		return nil, err
	}
	return db, nil
}
