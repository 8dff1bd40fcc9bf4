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

// Package defaults provides centralized configuration constants for the
// dashboard service and CLI.
//
// # Timeout Categories
//
//   - Upstream: base URL, per-request timeout and fan-out width for the
//     instrument API
//   - Handler timeouts: for HTTP request processing
//   - Server timeouts: for HTTP server configuration
//   - HTTP client timeouts: for the pooled upstream transport
//
// # Usage
//
//	ctx, cancel := context.WithTimeout(r.Context(), defaults.DashboardHandlerTimeout)
//	defer cancel()
package defaults
