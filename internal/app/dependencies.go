package app

import (
	"database/sql"
	"fmt"

	"github.com/creekroadpottery/PotteryCalendarApp/internal/backup"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/config"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/database"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/event_bus"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/filestore"
	"github.com/creekroadpottery/PotteryCalendarApp/internal/store"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/event"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/export"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/goal"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/journal"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/portfolio"
	"github.com/creekroadpottery/PotteryCalendarApp/pkg/timelog"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus

	EventRepo    event.EventRepository
	EventService event.EventService
	EventHandler *event.EventHandler

	JournalRepo    journal.Repository
	JournalService journal.Service
	JournalHandler *journal.Handler

	PortfolioRepo    portfolio.Repository
	PortfolioService portfolio.Service
	PortfolioHandler *portfolio.Handler

	GoalRepo    goal.Repository
	GoalService goal.Service
	GoalHandler *goal.Handler

	TimelogRepo       timelog.Repository
	TimelogService    timelog.Service
	TimelogHandler    *timelog.Handler
	CsvSummaryRender  *timelog.CsvSummaryRendererImpl

	CsvRenderer *export.CsvRendererImpl
	IcsRenderer *export.IcsRendererImpl
	PdfRenderer *export.PdfRendererImpl

	BackupScheduler *backup.Scheduler
}

// BuildDependencies initializes and wires all application services and handlers.
// db is nil when the CSV backend is active.
func BuildDependencies(db *sql.DB, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}
	deps.EventBus = event_bus.NewEventBus()

	eventTable, err := newTable(event.Schema(), db, cfg, deps.EventBus)
	if err != nil {
		return nil, err
	}
	journalTable, err := newTable(journal.Schema(), db, cfg, deps.EventBus)
	if err != nil {
		return nil, err
	}
	portfolioTable, err := newTable(portfolio.Schema(), db, cfg, deps.EventBus)
	if err != nil {
		return nil, err
	}
	goalTable, err := newTable(goal.Schema(), db, cfg, deps.EventBus)
	if err != nil {
		return nil, err
	}
	timelogTable, err := newTable(timelog.Schema(), db, cfg, deps.EventBus)
	if err != nil {
		return nil, err
	}

	deps.CsvRenderer = export.NewCsvRenderer()
	deps.IcsRenderer = export.NewIcsRenderer()
	deps.PdfRenderer = export.NewPdfRenderer()

	deps.EventRepo = event.NewEventRepo(eventTable)
	deps.EventService = event.NewEventService(deps.EventRepo)
	deps.EventHandler = event.NewEventHandler(deps.EventService, deps.CsvRenderer, deps.IcsRenderer, deps.PdfRenderer)

	deps.JournalRepo = journal.NewRepository(journalTable)
	deps.JournalService = journal.NewService(deps.JournalRepo)
	deps.JournalHandler = journal.NewHandler(deps.JournalService, deps.CsvRenderer)

	photos := filestore.New(cfg.Storage.PhotoDir)
	deps.PortfolioRepo = portfolio.NewRepository(portfolioTable)
	deps.PortfolioService = portfolio.NewService(deps.PortfolioRepo, photos)
	deps.PortfolioHandler = portfolio.NewHandler(deps.PortfolioService, deps.CsvRenderer)

	deps.GoalRepo = goal.NewRepository(goalTable)
	deps.GoalService = goal.NewService(deps.GoalRepo)
	deps.GoalHandler = goal.NewHandler(deps.GoalService, deps.CsvRenderer)

	deps.TimelogRepo = timelog.NewRepository(timelogTable)
	deps.TimelogService = timelog.NewService(deps.TimelogRepo)
	deps.CsvSummaryRender = timelog.NewCsvSummaryRenderer()
	deps.TimelogHandler = timelog.NewHandler(deps.TimelogService, deps.CsvRenderer, deps.CsvSummaryRender)

	// Backups only make sense for the file-backed store.
	if cfg.Backup.Enabled && cfg.Storage.Backend == database.BackendCsv {
		deps.BackupScheduler = backup.NewScheduler(deps.EventBus, cfg.Storage.DataDir, cfg.Backup.Dir, cfg.Backup.Schedule)
	}

	return deps, nil
}

func newTable[T any](schema store.Schema[T], db *sql.DB, cfg config.Application, bus *event_bus.EventBus) (store.Table[T], error) {
	switch cfg.Storage.Backend {
	case database.BackendCsv:
		return store.NewCsvTable(schema, cfg.Storage.DataDir, bus), nil
	case database.BackendPostgres:
		return store.NewSqlTable(schema, db, bus), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
