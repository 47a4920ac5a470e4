package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v5"
	"gopkg.in/gomail.v2"

	efs "findaccommodation"
	"findaccommodation/api"
	"findaccommodation/app"
	"findaccommodation/cache"
	"findaccommodation/config"
	"findaccommodation/data"
	"findaccommodation/db"
	"findaccommodation/handlers"
	"findaccommodation/helpers"
	"findaccommodation/httpx"
	"findaccommodation/worker"
)

func main() {
	if err := run(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func run() error {
	if err := config.InitConfig(); err != nil {
		return err
	}
	cfg := config.Config
	if cfg.IsDev {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	var store cache.Store = cache.NewMemoryStore(cfg.CacheTTL)
	if cfg.CacheURL != "" {
		redisStore, err := cache.NewRedisStore(cfg.CacheURL, cfg.CacheTTL)
		if err != nil {
			return err
		}
		defer redisStore.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = redisStore.Ping(ctx)
		cancel()
		if err != nil {
			return err
		}
		store = redisStore
	}

	tokenKey, err := helpers.TokenKey(cfg.AppKey)
	if err != nil {
		return err
	}

	client := api.NewClient(cfg.APIBaseURL, cfg.APITimeout)
	h := &handlers.Handlers{
		Listings:     api.NewCachedClient(client, store),
		Accounts:     client,
		PageSize:     cfg.PageSize,
		FeaturedSize: cfg.FeaturedSize,
		BaseURL:      cfg.BaseURL,
		TokenKey:     tokenKey,
	}

	var sessionStore sessions.Store
	var pool *worker.Pool
	if cfg.DatabaseURL != "" {
		bunDB := db.OpenPostgres(cfg.DatabaseURL)
		defer bunDB.Close()

		if err := db.Migrate(bunDB, efs.MigrationsFS, "migrations"); err != nil {
			return err
		}

		jobStore := data.NewJobStore(bunDB)
		if n, err := jobStore.RequeueStaleJobs(context.Background(), time.Hour); err != nil {
			return err
		} else if n > 0 {
			slog.Info("requeued stale jobs", "count", n)
		}
		h.Jobs = jobStore

		pool = worker.NewPool(jobStore, cfg.WorkerPoll)
		pool.SetMaxAttempts(cfg.JobAttempts)
		app.RegisterJobs(pool, gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPLogin, cfg.SMTPPassword))

		pgStore, err := httpx.NewPostgresSessionStore(cfg.DatabaseURL, []byte(cfg.AppKey), !cfg.IsDev)
		if err != nil {
			return err
		}
		defer pgStore.Close()
		defer pgStore.StopCleanup(pgStore.Cleanup(time.Minute * 60))
		sessionStore = pgStore
	} else {
		slog.Warn("DB_URI is not set: sessions are kept in cookies and the contact form is disabled")
		sessionStore = httpx.NewCookieSessionStore([]byte(cfg.AppKey), !cfg.IsDev)
	}

	e := echo.NewWithConfig(echo.Config{
		Filesystem:       efs.StaticFS,
		Validator:        httpx.NewValidator(),
		Logger:           slog.Default(),
		Binder:           &echo.DefaultBinder{},
		HTTPErrorHandler: h.HandleError,
	})

	e.Static("/static", "static")

	app.RegisterMiddleware(e, sessionStore, !cfg.IsDev)
	app.RegisterRoutes(e, h)

	return app.Start(e, cfg.Port, pool, cfg.WorkerCount)
}
