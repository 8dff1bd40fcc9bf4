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

package server

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := parseConfig()

		assert.Empty(t, cfg.Address)
		assert.Equal(t, 8080, cfg.Port)
		assert.EqualValues(t, 100, cfg.RateLimit)
		assert.Equal(t, 200, cfg.RateLimitBurst)
		assert.Equal(t, 10*time.Second, cfg.ReadTimeout)
		assert.Equal(t, 5*time.Second, cfg.ReadHeaderTimeout)
		assert.Equal(t, 35*time.Second, cfg.WriteTimeout)
		assert.Equal(t, 120*time.Second, cfg.IdleTimeout)
		assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
		assert.Empty(t, cfg.AllowedOrigins)
	})

	t.Run("port from environment", func(t *testing.T) {
		t.Setenv(EnvPort, "9090")
		assert.Equal(t, 9090, parseConfig().Port)
	})

	t.Run("invalid port uses default", func(t *testing.T) {
		t.Setenv(EnvPort, "invalid")
		assert.Equal(t, 8080, parseConfig().Port)
	})

	t.Run("shutdown timeout from environment", func(t *testing.T) {
		t.Setenv(EnvShutdownTimeoutSeconds, "5")
		assert.Equal(t, 5*time.Second, parseConfig().ShutdownTimeout)
	})

	t.Run("non-positive shutdown timeout ignored", func(t *testing.T) {
		t.Setenv(EnvShutdownTimeoutSeconds, "0")
		assert.Equal(t, 30*time.Second, parseConfig().ShutdownTimeout)
	})

	t.Run("cors origins from environment", func(t *testing.T) {
		t.Setenv(EnvCORSAllowedOrigins, " http://a.local, ,http://b.local ")
		assert.Equal(t, []string{"http://a.local", "http://b.local"}, parseConfig().AllowedOrigins)
	})
}
