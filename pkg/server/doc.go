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

// Package server provides the HTTP server shared by the dashboard service.
//
// Callers register their routes with WithHandler; every registered route is
// wrapped by the same middleware chain:
//
//   - Prometheus RED metrics
//   - API version negotiation (X-API-Version)
//   - request IDs (X-Request-Id, UUID)
//   - panic recovery
//   - token bucket rate limiting (golang.org/x/time/rate)
//   - debug request logging through log/slog
//
// The server also exposes /health, /ready and /metrics outside the chain, and
// serves a JSON index of its routes at "/" unless a root handler is supplied.
// Browser origins listed in CORS_ALLOWED_ORIGINS get CORS headers via
// github.com/rs/cors.
//
// Usage:
//
//	s := server.New(
//	    server.WithName("sitradd"),
//	    server.WithVersion(version),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/dashboard": builder.HandleData,
//	    }),
//	)
//	if err := s.Run(ctx); err != nil {
//	    return err
//	}
//
// Errors are written as ErrorResponse JSON by WriteError, or by
// WriteErrorFromErr which maps a pkg/errors code to its HTTP status:
//
//	{
//	  "code": "TIMEOUT",
//	  "message": "Dashboard build timed out",
//	  "details": {"error": "context deadline exceeded"},
//	  "requestId": "550e8400-e29b-41d4-a716-446655440000",
//	  "timestamp": "2025-01-15T10:30:00Z",
//	  "retryable": true
//	}
//
// Configuration is read from PORT, SHUTDOWN_TIMEOUT_SECONDS and
// CORS_ALLOWED_ORIGINS; timeouts come from pkg/defaults.
package server
