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
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/sitrad-dashboard/pkg/serializer"
	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

const (
	flagOutput      = "output"
	flagFormat      = "format"
	flagURL         = "url"
	flagUsername    = "username"
	flagPassword    = "password"
	flagInsecure    = "insecure-skip-verify"
	flagCAFile      = "ca-file"
	flagTimeout     = "timeout"
	flagConcurrency = "concurrency"
)

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagOutput,
		Aliases: []string{"o"},
		Usage:   "Output file path (default: stdout)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    flagFormat,
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
	}
}

// upstreamFlags have no env Sources: the SITRAD_* variables are read after
// --env-file is loaded, and flags override them only when set.
func upstreamFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  flagURL,
			Usage: "Base URL of the Sitrad REST API (env: " + sitrad.EnvURL + ")",
		},
		&cli.StringFlag{
			Name:  flagUsername,
			Usage: "Basic auth user (env: " + sitrad.EnvUsername + ")",
		},
		&cli.StringFlag{
			Name:  flagPassword,
			Usage: "Basic auth password (env: " + sitrad.EnvPassword + ")",
		},
		&cli.BoolFlag{
			Name:  flagInsecure,
			Usage: "Skip upstream TLS certificate verification (env: " + sitrad.EnvInsecureSkipVerify + ")",
		},
		&cli.StringFlag{
			Name:  flagCAFile,
			Usage: "PEM bundle trusted for the upstream certificate (env: " + sitrad.EnvCAFile + ")",
		},
		&cli.DurationFlag{
			Name:  flagTimeout,
			Usage: "Timeout of each upstream request (env: " + sitrad.EnvTimeout + ")",
		},
		&cli.IntFlag{
			Name:  flagConcurrency,
			Usage: "Maximum upstream value requests in flight (env: " + sitrad.EnvConcurrency + ")",
		},
	}
}

// parseOutputFormat returns the --format value or an error listing the
// supported formats.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String(flagFormat))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, supported values: %v", f, serializer.SupportedFormats())
	}
	return f, nil
}

// upstreamConfig reads the environment and applies any explicitly set
// upstream flag on top.
func upstreamConfig(cmd *cli.Command) sitrad.Config {
	cfg := sitrad.ConfigFromEnv()

	if cmd.IsSet(flagURL) {
		cfg.BaseURL = cmd.String(flagURL)
	}
	if cmd.IsSet(flagUsername) {
		cfg.Username = cmd.String(flagUsername)
	}
	if cmd.IsSet(flagPassword) {
		cfg.Password = cmd.String(flagPassword)
	}
	if cmd.IsSet(flagInsecure) {
		cfg.InsecureSkipVerify = cmd.Bool(flagInsecure)
	}
	if cmd.IsSet(flagCAFile) {
		cfg.CAFile = cmd.String(flagCAFile)
	}
	if cmd.IsSet(flagTimeout) {
		cfg.Timeout = cmd.Duration(flagTimeout)
	}
	if cmd.IsSet(flagConcurrency) {
		cfg.Concurrency = int(cmd.Int(flagConcurrency))
	}

	return cfg
}

// newClient builds the upstream client from flags and environment.
func newClient(cmd *cli.Command) (*sitrad.Client, sitrad.Config, error) {
	cfg := upstreamConfig(cmd)
	slog.Debug("upstream configured", "config", cfg.String())

	c, err := sitrad.NewClient(cfg, sitrad.WithUserAgent(name+"/"+version))
	if err != nil {
		return nil, cfg, err
	}
	return c, cfg, nil
}

// writeOutput serializes v to the --output destination in the --format format.
func writeOutput(ctx context.Context, cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w, err := serializer.NewFileWriterOrStdout(format, cmd.String(flagOutput))
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("failed to close output", "error", err)
		}
	}()

	return w.Serialize(ctx, v)
}
