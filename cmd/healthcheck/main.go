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
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/visionfolio/internal/config"
	"github.com/localnerve/visionfolio/internal/database"
	"github.com/localnerve/visionfolio/internal/logging"
	"github.com/localnerve/visionfolio/internal/services"
	"gorm.io/gorm"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New(logging.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := services.StoreOptions{Locale: cfg.Locale, Logger: log}

	var db *gorm.DB
	if database.Enabled(cfg) {
		db, err = database.Connect(cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer database.Close(db)

		// Mail settings live in the snapshot, so restore it when present
		content, version, err := services.NewSnapshotRepository(db, log).Load(ctx, cfg.Locale)
		if err == nil {
			opts.Initial = &content
			opts.InitialVersion = version
		}
	}

	store, err := services.NewStore(opts)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create content store")
	}

	// Perform health check
	result := services.HealthCheck(ctx, services.HealthInputs{
		Store:           store,
		DB:              db,
		GenAIConfigured: cfg.GenAIAPIKey != "",
		PingMail:        services.DefaultMailPing,
		Log:             log,
	})

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to marshal health check result")
	}

	fmt.Println(string(output))

	// Degraded still serves content
	if result.Status == "unhealthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
