package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/CreaRec/crea-expenses-bot/pkg/app"
	"github.com/CreaRec/crea-expenses-bot/pkg/db"

	"github.com/go-pg/pg/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
	"github.com/vmkteam/embedlog"
)

const appName = "crea-expenses-bot"

// envConfig is the flat environment configuration, read once at startup.
type envConfig struct {
	TelegramToken string `koanf:"TELEGRAM_TOKEN"`
	TelegramDebug bool   `koanf:"TELEGRAM_DEBUG"`
	AllowedUsers  string `koanf:"ALLOWED_USERS"` // comma-separated Telegram user ids
	NotifyChats   string `koanf:"NOTIFY_CHATS"`  // comma-separated chat ids for scheduled reports

	FoodLimit    int `koanf:"FOOD_LIMIT"`
	GeneralLimit int `koanf:"GENERAL_LIMIT"`
	FunLimit     int `koanf:"FUN_LIMIT"`
	StatementDay int `koanf:"STATEMENT_DAY"`

	ReportCron string `koanf:"REPORT_CRON"`
	LogsDir    string `koanf:"LOGS_DIR"`

	DBAddr     string `koanf:"DB_ADDR"`
	DBUser     string `koanf:"DB_USER"`
	DBPassword string `koanf:"DB_PASSWORD"`
	DBDatabase string `koanf:"DB_DATABASE"`
	DBPoolSize int    `koanf:"DB_POOL_SIZE"`

	ServerHost string `koanf:"SERVER_HOST"`
	ServerPort int    `koanf:"SERVER_PORT"`
	IsDevel    bool   `koanf:"IS_DEVEL"`
	Verbose    bool   `koanf:"VERBOSE"`
}

func main() {
	// .env is optional, real env wins
	_ = godotenv.Load()

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid configuration:", err)
		os.Exit(1)
	}

	sl := embedlog.NewLogger(cfg.Verbose, false)
	ctx := context.Background()
	acfg := appCfg(cfg)

	pgdb := pg.Connect(acfg.Database)
	dbc := db.New(pgdb)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := dbc.Ping(pingCtx); err != nil {
		sl.Error(ctx, "failed to connect to db", "err", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, appName, sl, acfg, dbc)
	if err != nil {
		sl.Error(ctx, "failed to create app", "err", err)
		os.Exit(1)
	}

	// graceful shutdown on SIGINT/SIGTERM
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		sl.Print(ctx, "shutdown signal received", "signal", sig.String())

		if err := a.Shutdown(30 * time.Second); err != nil {
			sl.Error(ctx, "shutdown error", "err", err)
		}
	}()

	if err := a.Run(ctx); err != nil {
		sl.Error(ctx, "app stopped", "err", err)
	}
}

// loadConfig reads the environment into envConfig and validates it.
func loadConfig() (envConfig, error) {
	cfg := envConfig{
		StatementDay: 1,
		LogsDir:      "logs",
		DBAddr:       "localhost:5432",
		DBUser:       "postgres",
		DBDatabase:   appName,
		DBPoolSize:   5,
		ServerHost:   "localhost",
		ServerPort:   8080,
	}

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", nil), nil); err != nil {
		return cfg, fmt.Errorf("failed to load env: %w", err)
	}
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf", FlatPaths: true}); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal env: %w", err)
	}

	if cfg.TelegramToken == "" {
		return cfg, fmt.Errorf("TELEGRAM_TOKEN is required")
	}
	if cfg.AllowedUsers == "" {
		return cfg, fmt.Errorf("ALLOWED_USERS is required")
	}
	if cfg.StatementDay < 1 || cfg.StatementDay > 28 {
		return cfg, fmt.Errorf("STATEMENT_DAY must be in [1, 28], got %d", cfg.StatementDay)
	}
	if cfg.FoodLimit < 0 || cfg.GeneralLimit < 0 || cfg.FunLimit < 0 {
		return cfg, fmt.Errorf("category limits must be non-negative")
	}
	if _, err := parseIDList(cfg.AllowedUsers); err != nil {
		return cfg, fmt.Errorf("invalid ALLOWED_USERS: %w", err)
	}
	if _, err := parseIDList(cfg.NotifyChats); err != nil {
		return cfg, fmt.Errorf("invalid NOTIFY_CHATS: %w", err)
	}

	return cfg, nil
}

// appCfg converts flat env values into the structured app config.
func appCfg(cfg envConfig) app.Config {
	var c app.Config

	c.Database = &pg.Options{
		Addr:     cfg.DBAddr,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Database: cfg.DBDatabase,
		PoolSize: cfg.DBPoolSize,
	}

	c.Server.Host = cfg.ServerHost
	c.Server.Port = cfg.ServerPort
	c.Server.IsDevel = cfg.IsDevel

	c.Telegram.Token = cfg.TelegramToken
	c.Telegram.Debug = cfg.TelegramDebug
	c.Telegram.AllowedUsers, _ = parseIDList(cfg.AllowedUsers)
	c.Telegram.NotifyChats, _ = parseIDList(cfg.NotifyChats)

	c.Budget.FoodLimit = cfg.FoodLimit
	c.Budget.GeneralLimit = cfg.GeneralLimit
	c.Budget.FunLimit = cfg.FunLimit
	c.Budget.StatementDay = cfg.StatementDay

	c.Scheduler.ReportCron = cfg.ReportCron
	c.Logs.Dir = cfg.LogsDir

	return c
}

// parseIDList parses a comma-separated list of int64 ids.
func parseIDList(s string) ([]int64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad id %q", p)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
