// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/NVIDIA/sitrad-dashboard/pkg/dashboard"
	"github.com/NVIDIA/sitrad-dashboard/pkg/logging"
	"github.com/NVIDIA/sitrad-dashboard/pkg/server"
	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

const (
	name           = "sitradd"
	versionDefault = "dev"

	// envFile is loaded, when present, before the environment is read.
	envFile = ".env"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/sitrad-dashboard/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve configures logging and the upstream client from the environment and
// blocks serving the dashboard until SIGINT or SIGTERM.
func Serve() error {
	if err := sitrad.LoadEnvFile(envFile); err != nil {
		return err
	}

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	if err := Run(context.Background(), sitrad.ConfigFromEnv()); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}
	return nil
}

// Run serves the dashboard for the upstream described by cfg until ctx is
// cancelled or a termination signal arrives. opts are applied after the
// defaults and may override them.
func Run(ctx context.Context, cfg sitrad.Config, opts ...server.Option) error {
	slog.Info("upstream configured", "config", cfg.String())

	client, err := sitrad.NewClient(cfg, sitrad.WithUserAgent(name+"/"+version))
	if err != nil {
		return err
	}

	b := dashboard.NewBuilder(client, dashboard.WithConcurrency(cfg.Concurrency))

	s := server.New(append([]server.Option{
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(Routes(b)),
	}, opts...)...)

	return s.Run(ctx)
}

// Routes maps the dashboard handlers to their paths.
func Routes(b *dashboard.Builder) map[string]http.HandlerFunc {
	return map[string]http.HandlerFunc{
		dashboard.DataPath:        b.HandleData,
		dashboard.LegacyDataPath:  b.HandleData,
		dashboard.IndexPath:       b.HandleIndex,
		dashboard.LegacyIndexPath: b.HandleIndex,
		dashboard.LegacyRootPath:  b.HandleIndex,
	}
}
