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
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sitrad-dashboard/pkg/camera"
	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

// instrumentRow is one catalog entry with the camera role derived from its name.
type instrumentRow struct {
	ID     int         `json:"id" yaml:"id"`
	Name   string      `json:"name" yaml:"name"`
	Status string      `json:"status,omitempty" yaml:"status,omitempty"`
	Role   camera.Role `json:"role,omitempty" yaml:"role,omitempty"`
	Key    string      `json:"key,omitempty" yaml:"key,omitempty"`
}

type instrumentRows []instrumentRow

func (r instrumentRows) TableHeader() []string {
	return []string{"ID", "NAME", "STATUS", "ROLE", "KEY"}
}

func (r instrumentRows) TableRows() [][]string {
	rows := make([][]string, 0, len(r))
	for _, row := range r {
		role := string(row.Role)
		if role == "" {
			role = "-"
		}
		rows = append(rows, []string{strconv.Itoa(row.ID), row.Name, row.Status, role, row.Key})
	}
	return rows
}

// classifyInstruments pairs each instrument with its matcher result.
// Unmatched instruments keep an empty role and key.
func classifyInstruments(instruments []sitrad.Instrument, match camera.Matcher) instrumentRows {
	if match == nil {
		match = camera.Classify
	}
	rows := make(instrumentRows, 0, len(instruments))
	for _, inst := range instruments {
		row := instrumentRow{ID: inst.ID, Name: inst.Name, Status: inst.Status}
		if role, key, ok := match(inst.Name); ok {
			row.Role = role
			row.Key = key
		}
		rows = append(rows, row)
	}
	return rows
}

func instrumentsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "instruments",
		EnableShellCompletion: true,
		Usage:                 "List upstream instruments and the camera role derived from each name",
		Description: `Print the instrument catalog with the role (main or evaporator) and camera
key assigned by name matching. Instruments without a role are ignored by the
dashboard; use this command to check controller naming.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "matched",
				Usage: "Only list instruments that belong to a camera",
			},
			outputFlag(),
			formatFlag(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if _, err := parseOutputFormat(cmd); err != nil {
				return err
			}

			client, _, err := newClient(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, defaults.CLISnapshotTimeout)
			defer cancel()

			instruments, err := client.Instruments(ctx)
			if err != nil {
				return fmt.Errorf("failed to list instruments: %w", err)
			}

			rows := classifyInstruments(instruments, nil)
			if cmd.Bool("matched") {
				matched := rows[:0]
				for _, row := range rows {
					if row.Role != "" {
						matched = append(matched, row)
					}
				}
				rows = matched
			}

			return writeOutput(ctx, cmd, rows)
		},
	}
}
