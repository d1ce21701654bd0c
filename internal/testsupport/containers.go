// containers.go
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

// This file runs the snapshot database in a container. It is used by the
// database integration tests and by cmd/testcontainers for local development.

package testsupport

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/client"
	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/localnerve/visionfolio/internal/config"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/network"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ContainerOptions describes the database container to start
type ContainerOptions struct {
	Backend      string // mariadb, mysql or postgres
	Image        string
	Port         string
	Database     string
	User         string
	Password     string
	RootPassword string
	NetworkAlias string
}

// ContainerOptionsFromEnv reads DB_* variables, falling back to a MariaDB
// setup that needs no configuration
func ContainerOptionsFromEnv() ContainerOptions {
	opts := ContainerOptions{
		Backend:      getenv("DB_TYPE", "mariadb"),
		Database:     getenv("DB_DATABASE", "visionfolio"),
		User:         getenv("DB_USER", "visionfolio"),
		Password:     getenv("DB_PASSWORD", "visionfolio"),
		RootPassword: getenv("DB_ROOT_PASSWORD", "rootpassword"),
		NetworkAlias: getenv("DB_HOST", "snapshotdb"),
	}
	switch opts.Backend {
	case "postgres":
		opts.Image = getenv("DB_IMAGE", "postgres:17-alpine")
		opts.Port = getenv("DB_PORT", "5432")
	default:
		opts.Image = getenv("DB_IMAGE", "mariadb:11")
		opts.Port = getenv("DB_PORT", "3306")
	}
	return opts
}

// DBContainer is a running snapshot database
type DBContainer struct {
	Network   *testcontainers.DockerNetwork
	Container testcontainers.Container
	Options   ContainerOptions
	Host      string
	Port      nat.Port
}

// Config returns a configuration that points the server at the container
func (c *DBContainer) Config() *config.Config {
	return &config.Config{
		Port:              "3000",
		Locale:            "en",
		StoreBackend:      c.Options.Backend,
		DBHost:            c.Host,
		DBPort:            c.Port.Port(),
		DBDatabase:        c.Options.Database,
		DBUser:            c.Options.User,
		DBPassword:        c.Options.Password,
		DBConnectionLimit: 4,
	}
}

// Terminate stops the container and removes its network
func (c *DBContainer) Terminate(t *testing.T) {
	ctx := context.Background()
	if c.Container != nil {
		if err := c.Container.Terminate(ctx); err != nil {
			logMessage(t, "Failed to terminate database: %v", err)
		}
	}
	if c.Network != nil {
		if err := c.Network.Remove(ctx); err != nil {
			logMessage(t, "Failed to remove network: %v", err)
		}
	}
}

// DockerAvailable pings the Docker daemon named by the environment
func DockerAvailable(ctx context.Context) error {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return err
	}
	defer cli.Close()

	_, err = cli.Ping(ctx)
	return err
}

// RequireDocker skips t when no Docker daemon answers
func RequireDocker(t *testing.T) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := DockerAvailable(ctx); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
}

// StartDB starts the database described by opts and waits until it accepts
// logins. t may be nil when running outside a test.
func StartDB(ctx context.Context, t *testing.T, opts ContainerOptions) (*DBContainer, error) {
	dbc := &DBContainer{Options: opts}

	nw, err := network.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create network: %w", err)
	}
	dbc.Network = nw

	if exists, err := ImageExists(ctx, opts.Image); err == nil && !exists {
		logMessage(t, "Image %s not present, pulling...", opts.Image)
	}

	tcpPort, err := nat.NewPort("tcp", opts.Port)
	if err != nil {
		dbc.Terminate(t)
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        opts.Image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          initEnv(opts),
			WaitingFor:   wait.ForListeningPort(tcpPort).WithStartupTimeout(90 * time.Second),
			Networks:     []string{nw.Name},
			NetworkAliases: map[string][]string{
				nw.Name: {opts.NetworkAlias},
			},
		},
		Started: true,
	})
	if err != nil {
		dbc.Terminate(t)
		return nil, fmt.Errorf("failed to start database: %w", err)
	}
	dbc.Container = container

	host, err := container.Host(ctx)
	if err != nil {
		dbc.Terminate(t)
		return nil, err
	}
	port, err := container.MappedPort(ctx, tcpPort)
	if err != nil {
		dbc.Terminate(t)
		return nil, err
	}
	dbc.Host, dbc.Port = host, port

	if opts.Backend != "postgres" {
		if err := waitForMySQL(ctx, opts, host, port); err != nil {
			dbc.Terminate(t)
			return nil, err
		}
	}

	logMessage(t, "DB_HOST=%s DB_PORT=%s", host, port.Port())
	return dbc, nil
}

func initEnv(opts ContainerOptions) map[string]string {
	switch opts.Backend {
	case "postgres":
		return map[string]string{
			"POSTGRES_PASSWORD": opts.Password,
			"POSTGRES_USER":     opts.User,
			"POSTGRES_DB":       opts.Database,
		}
	default:
		return map[string]string{
			"MYSQL_ROOT_PASSWORD": opts.RootPassword,
			"MYSQL_DATABASE":      opts.Database,
			"MYSQL_USER":          opts.User,
			"MYSQL_PASSWORD":      opts.Password,
		}
	}
}

// waitForMySQL logs in as root until the server answers, then makes sure the
// application user owns the snapshot database
func waitForMySQL(ctx context.Context, opts ContainerOptions, host string, port nat.Port) error {
	db, err := sql.Open("mysql", fmt.Sprintf("root:%s@tcp(%s:%s)/", opts.RootPassword, host, port.Port()))
	if err != nil {
		return fmt.Errorf("failed to open MariaDB for setup: %w", err)
	}
	defer db.Close()

	for i := 0; i < 30; i++ {
		if err = db.PingContext(ctx); err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	if err != nil {
		return fmt.Errorf("MariaDB not ready after 30 seconds: %w", err)
	}

	statements := []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", opts.Database),
		fmt.Sprintf("GRANT ALL PRIVILEGES ON `%s`.* TO '%s'@'%%'", opts.Database, opts.User),
		"FLUSH PRIVILEGES",
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s : when executing > %s", err.Error(), stmt)
		}
	}
	return nil
}

// ImageExists reports whether imageName is already in the local image store
func ImageExists(ctx context.Context, imageName string) (bool, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return false, err
	}
	defer cli.Close()

	images, err := cli.ImageList(ctx, image.ListOptions{})
	if err != nil {
		return false, err
	}

	for _, img := range images {
		for _, tag := range img.RepoTags {
			if tag == imageName {
				return true, nil
			}
		}
	}

	return false, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
