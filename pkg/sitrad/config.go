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

package sitrad

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
)

// Environment variables read by ConfigFromEnv.
const (
	EnvURL                = "SITRAD_URL"
	EnvUsername           = "SITRAD_USERNAME"
	EnvPassword           = "SITRAD_PASSWORD"
	EnvInsecureSkipVerify = "SITRAD_INSECURE_SKIP_VERIFY"
	EnvCAFile             = "SITRAD_CA_FILE"
	EnvTimeout            = "SITRAD_TIMEOUT"
	EnvConcurrency        = "SITRAD_CONCURRENCY"
)

// Config holds the upstream connection settings. It is read-only once a
// Client has been built from it.
type Config struct {
	// BaseURL is the scheme and host of the instrument API, e.g. https://sitrad:8002.
	BaseURL string

	// Username and Password are sent as HTTP Basic credentials when Username is set.
	Username string
	Password string

	// InsecureSkipVerify disables server certificate validation.
	// Only for upstreams on a trusted private network.
	InsecureSkipVerify bool

	// CAFile is an optional PEM bundle used to validate the upstream certificate.
	CAFile string

	// Timeout bounds each individual upstream request.
	Timeout time.Duration

	// Concurrency bounds in-flight value requests during one aggregation pass.
	Concurrency int
}

// NewConfig returns a Config with defaults and no credentials.
func NewConfig() Config {
	return Config{
		BaseURL:     defaults.UpstreamURL,
		Timeout:     defaults.UpstreamTimeout,
		Concurrency: defaults.UpstreamConcurrency,
	}
}

// ConfigFromEnv returns defaults overridden by the SITRAD_* environment variables.
// Values that fail to parse are ignored.
func ConfigFromEnv() Config {
	cfg := NewConfig()

	if v := os.Getenv(EnvURL); v != "" {
		cfg.BaseURL = v
	}
	cfg.Username = os.Getenv(EnvUsername)
	cfg.Password = os.Getenv(EnvPassword)
	cfg.CAFile = os.Getenv(EnvCAFile)

	if v := os.Getenv(EnvInsecureSkipVerify); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.InsecureSkipVerify = b
		}
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if v := os.Getenv(EnvConcurrency); v != "" {
		var n int
		if _, err := fmt.Sscanf(v, "%d", &n); err == nil && n > 0 {
			cfg.Concurrency = n
		}
	}

	return cfg
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process environment
// without overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration can be used to build a Client.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("upstream url is empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid upstream url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported upstream url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("upstream url %q has no host", c.BaseURL)
	}
	if c.Password != "" && c.Username == "" {
		return fmt.Errorf("upstream password set without username")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("upstream timeout must not be negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("upstream concurrency must not be negative")
	}
	return nil
}

// String returns a loggable form of the configuration with the password redacted.
func (c Config) String() string {
	pw := ""
	if c.Password != "" {
		pw = "***"
	}
	return fmt.Sprintf("url=%s user=%s password=%s insecureSkipVerify=%t caFile=%s timeout=%s concurrency=%d",
		c.BaseURL, c.Username, pw, c.InsecureSkipVerify, c.CAFile, c.Timeout, c.Concurrency)
}
