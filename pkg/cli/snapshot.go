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
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sitrad-dashboard/pkg/dashboard"
	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
)

func snapshotCmd() *cli.Command {
	return &cli.Command{
		Name:                  "snapshot",
		EnableShellCompletion: true,
		Usage:                 "Run one aggregation pass and print the camera readings",
		Description: `Fetch the instrument catalog, resolve every camera's readings and print one
row per camera with its temperature, humidity and evaporator temperature.
Unavailable readings are shown as N/A.

# Examples

  sitrad --url https://sitrad.local:8002 --username operator snapshot
  sitrad snapshot --format json --output cameras.json`,
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "deadline",
				Usage: "Overall time limit for the aggregation pass",
				Value: defaults.CLISnapshotTimeout,
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			client, cfg, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("deadline"))
			defer cancel()

			snaps, err := dashboard.NewBuilder(client, dashboard.WithConcurrency(cfg.Concurrency)).Build(ctx)
			if err != nil {
				return fmt.Errorf("aggregation pass did not complete: %w", err)
			}

			return writeOutput(ctx, cmd, dashboard.Snapshots(snaps))
		},
	}
}
