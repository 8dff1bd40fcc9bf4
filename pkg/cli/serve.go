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

package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sitrad-dashboard/pkg/api"
	"github.com/NVIDIA/sitrad-dashboard/pkg/server"
)

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the dashboard over HTTP",
		Description: `Run the dashboard service in the foreground. Routes:

  GET /v1/dashboard              JSON snapshots
  GET /Sitrad/GetDashboardData   legacy JSON path
  GET /dashboard                 HTML table
  GET /Sitrad /Sitrad/Index      legacy HTML paths
  GET /health /ready /metrics`,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Listen port",
				Value:   8080,
				Sources: cli.EnvVars(server.EnvPort),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return api.Run(ctx, upstreamConfig(cmd), server.WithPort(int(cmd.Int("port"))))
		},
	}
}
