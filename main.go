package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/utils"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"certihub_backend/internals/configs"
	database "certihub_backend/internals/databases"
	scheduler "certihub_backend/internals/features/users/auth/scheduler"
	helper "certihub_backend/internals/helpers"
	helperAuth "certihub_backend/internals/helpers/auth"
	"certihub_backend/internals/helpers/blob"
	middlewares "certihub_backend/internals/middlewares"
	routes "certihub_backend/internals/route"
	"certihub_backend/internals/seeds"
)

// bodyLimit fits the largest accepted upload (1.5 GB video) plus form fields.
const bodyLimit = 1600 * 1024 * 1024

func main() {
	configs.InitLogger()
	configs.LoadEnv()

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(database.DB); err != nil {
			log.Fatal().Err(err).Msg("migration failed")
		}
	}

	// `go run . seed` seeds and exits
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.RunAllSeeds(database.DB); err != nil {
			log.Fatal().Err(err).Msg("❌ seeding failed")
		}
		log.Info().Msg("✅ seeding done")
		database.Close()
		return
	}
	database.WarmUpQueries()

	// 🗂 blob store + orphan tracking
	store, err := blob.NewStoreFromEnv(context.Background())
	if err != nil {
		log.Fatal().Err(err).Msg("blob store init failed")
	}
	orphans := blob.NewOrphanRepository(database.DB)
	gateway := blob.NewGateway(store, configs.GetEnv("BLOB_PREFIX"))
	gateway.Orphans = orphans

	// 🔐 tokens + revocation
	if configs.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}
	tokens := helperAuth.NewTokenService(configs.JWTSecret, configs.JWTExpiresIn)

	jobs := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	var revoker helperAuth.Revoker
	if redisURL := configs.GetEnv("REDIS_URL"); redisURL != "" {
		rr, err := helperAuth.NewRedisRevoker(redisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		revoker = rr
		log.Info().Msg("✅ token revocation: redis")
	} else {
		dr := helperAuth.NewDBRevoker(database.DB)
		revoker = dr
		if err := scheduler.StartBlacklistCleanupScheduler(jobs, dr, configs.GetEnv("TOKEN_CLEANUP_CRON", "@daily")); err != nil {
			log.Fatal().Err(err).Msg("cleanup schedule failed")
		}
		log.Info().Msg("✅ token revocation: database")
	}

	// ⏱ orphan reaper
	reaper := blob.NewOrphanReaper(store, orphans, blob.ReaperConfig{
		CronSchedule: configs.GetEnv("ORPHAN_REAPER_CRON", "@every 30m"),
		DryRun:       configs.GetEnvBool("ORPHAN_REAPER_DRY_RUN", false),
	})
	if err := reaper.Schedule(jobs); err != nil {
		log.Fatal().Err(err).Msg("reaper schedule failed")
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		BodyLimit:             bodyLimit,
		ErrorHandler:          helper.FiberErrorHandler,
		ProxyHeader:           fiber.HeaderXForwardedFor,
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// 🔎 Request-ID + timing
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		err := c.Next()
		log.Info().Msgf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	// ✅ Routes
	routes.SetupRoutes(app, routes.Deps{
		DB:      database.DB,
		Tokens:  tokens,
		Revoker: revoker,
		Blob:    gateway,
	})

	// 🔒 Keep-Alive & timeout koneksi server; uploads need a long read window
	app.Server().ReadTimeout = 10 * time.Minute
	app.Server().WriteTimeout = 10 * time.Minute
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	go func() {
		log.Info().Msgf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)
	<-jobs.Stop().Done()
	database.Close()
}
