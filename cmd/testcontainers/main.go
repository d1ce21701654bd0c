package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/visionfolio/internal/database"
	"github.com/localnerve/visionfolio/internal/logging"
	"github.com/localnerve/visionfolio/internal/seed"
	"github.com/localnerve/visionfolio/internal/services"
	"github.com/localnerve/visionfolio/internal/testsupport"
	"github.com/rs/zerolog"
)

const usage = `
Run the visionfolio snapshot database in a container. Settings come from the
environment, optionally loaded from a .env file. Prints the STORE_BACKEND and
DB_* settings to point a local server at it.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-backend mariadb|postgres] [-seed LOCALE]

  -f        path to the .env file
  -backend  overrides DB_TYPE
  -seed     migrate and store the default content for LOCALE as version 1

example
  testcontainers -f /path/to/something/.env -seed en
`

func main() {
	var (
		showHelp    bool
		envFilename string
		backend     string
		seedLocale  string
	)
	flag.BoolVar(&showHelp, "h", false, "show help")
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.StringVar(&backend, "backend", "", "mariadb or postgres")
	flag.StringVar(&seedLocale, "seed", "", "locale to seed")
	flag.Parse()

	if showHelp {
		fmt.Print(usage)
		return
	}

	log := logging.New(logging.Options{Format: "console"})

	if envFilename != "" {
		log.Info().Str("file", envFilename).Msg("loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatal().Err(err).Msg("failed to load environment variables")
		}
	}

	opts := testsupport.ContainerOptionsFromEnv()
	if backend != "" {
		os.Setenv("DB_TYPE", backend)
		opts = testsupport.ContainerOptionsFromEnv()
	}

	ctx := context.Background()
	if err := testsupport.DockerAvailable(ctx); err != nil {
		log.Fatal().Err(err).Msg("docker is not available")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	started := make(chan *testsupport.DBContainer, 1)
	go func() {
		dbc, err := testsupport.StartDB(ctx, nil, opts)
		if err != nil {
			log.Fatal().Err(err).Str("image", opts.Image).Msg("failed to start database container")
		}
		started <- dbc

		cfg := dbc.Config()
		if seedLocale != "" {
			if err := seedSnapshot(ctx, dbc, seedLocale, log); err != nil {
				log.Error().Err(err).Str("locale", seedLocale).Msg("failed to seed snapshot")
			}
		}
		fmt.Printf("STORE_BACKEND=%s\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\nDB_PASSWORD=%s\n",
			cfg.StoreBackend, cfg.DBHost, cfg.DBPort, cfg.DBDatabase, cfg.DBUser, cfg.DBPassword)
	}()

	sig := <-sigs
	log.Info().Str("signal", sig.String()).Msg("terminating database container")
	select {
	case dbc := <-started:
		dbc.Terminate(nil)
	default:
	}
}

func seedSnapshot(ctx context.Context, dbc *testsupport.DBContainer, locale string, log zerolog.Logger) error {
	content, err := seed.NewEmbedded().Defaults(locale)
	if err != nil {
		return err
	}

	db, err := database.Connect(dbc.Config(), log)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if err := services.NewSnapshotRepository(db, log).Save(ctx, locale, 1, content); err != nil {
		return err
	}
	log.Info().Str("locale", locale).Msg("seeded snapshot")
	return nil
}
