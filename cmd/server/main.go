// main.go
//
// Portfolio content service with an embedded admin API
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of visionfolio.
// visionfolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// visionfolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with visionfolio.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/visionfolio/internal/config"
	"github.com/localnerve/visionfolio/internal/database"
	"github.com/localnerve/visionfolio/internal/handlers"
	"github.com/localnerve/visionfolio/internal/logging"
	"github.com/localnerve/visionfolio/internal/notify"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	_ "github.com/localnerve/visionfolio/docs/api" // Swagger docs
)

// @title VisionFolio API
// @version 1.0.0
// @description Portfolio content service with an embedded admin API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/visionfolio
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey AdminPassphrase
// @in header
// @name X-Admin-Passphrase

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(logging.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	ctx := context.Background()

	storeOpts := services.StoreOptions{
		Locale: cfg.Locale,
		Seeds:  seed.NewEmbedded(),
		Queue:  notify.NewQueue(cfg.NotificationTTL),
		Mailer: services.NewSimulatedMailer(cfg.MailDelay),
		Logger: log,
	}

	// Snapshot persistence is optional; memory keeps the seeded content only
	var db *gorm.DB
	if database.Enabled(cfg) {
		db, err = database.Connect(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to snapshot database")
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}

		repo := services.NewSnapshotRepository(db, log)
		storeOpts.Persister = repo

		content, version, err := repo.Load(ctx, cfg.Locale)
		switch {
		case err == nil:
			storeOpts.Initial = &content
			storeOpts.InitialVersion = version
			log.Info().Str("locale", cfg.Locale).Uint64("version", version).Msg("restored content snapshot")
		case errors.Is(err, services.ErrNoSnapshot):
			log.Info().Str("locale", cfg.Locale).Msg("no snapshot found, using seeded content")
		default:
			log.Fatal().Err(err).Msg("failed to load content snapshot")
		}
	}
	defer storeOpts.Queue.Close()

	store, err := services.NewStore(storeOpts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create content store")
	}

	gen, err := services.NewGeminiGenerator(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create text generator")
	}
	if gen == nil {
		log.Warn().Msg("no text generation key configured, chat replies will explain the missing key")
	}
	assistant := services.NewAssistant(gen, store.Snapshot(), log)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("visionfolio")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.Register(app, handlers.Handlers{
		Portfolio: &handlers.PortfolioHandler{Store: store, Assistant: assistant},
		Admin:     &handlers.AdminHandler{Store: store},
		Health: &handlers.HealthHandler{Inputs: services.HealthInputs{
			Store:           store,
			DB:              db,
			GenAIConfigured: gen != nil,
			PingMail:        services.DefaultMailPing,
			Log:             log,
		}},
		AdminPassphrase: cfg.AdminPassphrase,
	})

	// 404 handler
	app.Use(handlers.NotFound)

	log.Info().
		Str("port", cfg.Port).
		Str("locale", store.Locale()).
		Uint64("version", store.Version()).
		Int("projects", len(store.Projects())).
		Msg("starting server")

	// Graceful shutdown
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(sigCtx)
	g.Go(func() error {
		return app.Listen(":" + cfg.Port)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("gracefully shutting down")
		return app.Shutdown()
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}

	log.Info().Msg("server stopped")
}
