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

// Package cli implements the sitrad command line.
//
// # Commands
//
//	sitrad snapshot      one aggregation pass, one row per camera
//	sitrad instruments   instrument catalog with derived camera role and key
//	sitrad serve         run the HTTP dashboard in the foreground
//
// # Global Flags
//
//	--url, --username, --password    upstream API and basic auth
//	--ca-file                        PEM bundle trusted for the upstream
//	--insecure-skip-verify           disable upstream certificate checks
//	--timeout, --concurrency         per-request timeout, fan-out bound
//	--env-file                       KEY=VALUE file loaded first (default .env)
//	--log-level                      debug, info, warn, error
//
// Upstream flags override the matching SITRAD_* variables only when given.
//
// # Output
//
// snapshot and instruments accept --format (table, json, yaml) and --output
// (file path, default stdout).
package cli
