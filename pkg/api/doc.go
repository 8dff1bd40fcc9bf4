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

// Package api wires the dashboard service: logging, upstream client,
// aggregation handlers and the HTTP server.
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Endpoints
//
//	GET /v1/dashboard              JSON array of camera snapshots
//	GET /Sitrad/GetDashboardData   same payload, legacy path
//	GET /dashboard                 auto-refreshing HTML table
//	GET /Sitrad, /Sitrad/Index     same page, legacy paths
//	GET /health /ready /metrics    provided by pkg/server
//
// # Configuration
//
// A .env file in the working directory is loaded first, without overriding
// variables already set. The upstream is configured by SITRAD_URL,
// SITRAD_USERNAME, SITRAD_PASSWORD, SITRAD_CA_FILE,
// SITRAD_INSECURE_SKIP_VERIFY, SITRAD_TIMEOUT and SITRAD_CONCURRENCY; the
// server by PORT, SHUTDOWN_TIMEOUT_SECONDS and CORS_ALLOWED_ORIGINS; logging
// by LOG_LEVEL.
package api
