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

// Package dashboard aggregates instrument readings into one display-ready
// Snapshot per cold chamber.
//
// A Builder lists the instruments exposed by the upstream API, groups them by
// camera key, resolves each group's readings concurrently and formats the
// values for display:
//
//	client, err := sitrad.NewClient(sitrad.ConfigFromEnv())
//	if err != nil {
//		return err
//	}
//	snaps, err := dashboard.NewBuilder(client).Build(ctx)
//
// Build degrades rather than fails. An unreachable catalog yields an empty
// dashboard and a failing instrument yields "N/A" cells; only cancellation of
// the caller's context is reported as an error.
//
// HandleData and HandleIndex expose the same pass over HTTP as JSON and as an
// auto-refreshing HTML table.
package dashboard
