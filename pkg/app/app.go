package app

import (
	"context"
	"fmt"
	"time"

	"github.com/CreaRec/crea-expenses-bot/pkg/db"
	"github.com/CreaRec/crea-expenses-bot/pkg/expenses"
	"github.com/CreaRec/crea-expenses-bot/pkg/services"
	"github.com/CreaRec/crea-expenses-bot/pkg/telegram"

	"github.com/go-pg/pg/v10"
	monitor "github.com/hypnoglow/go-pg-monitor"
	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/vmkteam/appkit"
	"github.com/vmkteam/embedlog"
)

type Config struct {
	Database *pg.Options
	Server   struct {
		Host    string
		Port    int
		IsDevel bool
	}
	Telegram struct {
		Token        string
		Debug        bool
		AllowedUsers []int64
		NotifyChats  []int64
	}
	Budget struct {
		FoodLimit    int
		GeneralLimit int
		FunLimit     int
		StatementDay int
	}
	Scheduler struct {
		ReportCron string
	}
	Logs struct {
		Dir string
	}
}

type App struct {
	embedlog.Logger
	appName string
	cfg     Config
	db      db.DB
	mon     *monitor.Monitor
	echo    *echo.Echo
	tgBot   *telegram.Bot
	cron    *cron.Cron
	journal *services.Journal
}

func New(ctx context.Context, appName string, sl embedlog.Logger, cfg Config, dbc db.DB) (*App, error) {
	a := &App{
		appName: appName,
		cfg:     cfg,
		db:      dbc,
		echo:    appkit.NewEcho(),
		cron:    cron.New(),
		Logger:  sl,
	}

	journal, err := services.NewJournal(cfg.Logs.Dir)
	if err != nil {
		return nil, err
	}
	a.journal = journal

	manager := expenses.NewManager(
		db.NewExpenseRepo(dbc.DB),
		expenses.Limits{
			Food:    cfg.Budget.FoodLimit,
			General: cfg.Budget.GeneralLimit,
			Fun:     cfg.Budget.FunLimit,
		},
		cfg.Budget.StatementDay,
		sl,
	)

	tgBot, err := telegram.New(ctx, telegram.Config{
		Token:        cfg.Telegram.Token,
		Debug:        cfg.Telegram.Debug,
		AllowedUsers: cfg.Telegram.AllowedUsers,
		NotifyChats:  cfg.Telegram.NotifyChats,
	}, manager, journal, sl)
	if err != nil {
		return nil, err
	}
	a.tgBot = tgBot

	return a, nil
}

// Run is a function that runs application.
func (a *App) Run(ctx context.Context) error {
	a.registerMetrics()
	a.registerDebugHandlers()
	a.registerMetadata()

	if err := a.startScheduler(ctx); err != nil {
		return err
	}

	go func() {
		if err := a.tgBot.Start(ctx); err != nil {
			a.Error(ctx, "telegram bot error", "err", err)
		}
	}()

	return a.runHTTPServer(ctx, a.cfg.Server.Host, a.cfg.Server.Port)
}

// startScheduler registers the cron-triggered limit-status broadcast.
func (a *App) startScheduler(ctx context.Context) error {
	if a.cfg.Scheduler.ReportCron == "" {
		a.Print(ctx, "report scheduler disabled")
		return nil
	}

	_, err := a.cron.AddFunc(a.cfg.Scheduler.ReportCron, func() {
		a.tgBot.BroadcastScheduledReport(context.Background())
	})
	if err != nil {
		return fmt.Errorf("failed to schedule report: %w", err)
	}

	a.cron.Start()
	a.Print(ctx, "report scheduler started", "cron", a.cfg.Scheduler.ReportCron)

	return nil
}

// Shutdown is a function that gracefully stops the application.
func (a *App) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	<-a.cron.Stop().Done()
	a.tgBot.Stop(ctx)
	a.mon.Close()

	if err := a.journal.Close(); err != nil {
		a.Error(ctx, "failed to close journal", "err", err)
	}

	return a.echo.Shutdown(ctx)
}

// registerMetadata is a function that registers meta info from service.
func (a *App) registerMetadata() {
	srv := []appkit.ServiceMetadata{
		// Telegram bot and report scheduler run asynchronously
		appkit.NewServiceMetadata("telegram-bot", appkit.MetadataServiceTypeAsync),
		appkit.NewServiceMetadata("report-scheduler", appkit.MetadataServiceTypeAsync),
	}

	opts := appkit.MetadataOpts{
		HasPublicAPI:  false, // No public API, only Telegram bot
		HasPrivateAPI: false,
		DBs: []appkit.DBMetadata{
			appkit.NewDBMetadata(a.cfg.Database.Database, a.cfg.Database.PoolSize, false),
		},
		Services: srv,
	}

	md := appkit.NewMetadataManager(opts)
	md.RegisterMetrics()

	a.echo.GET("/debug/metadata", md.Handler)
}
