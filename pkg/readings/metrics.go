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

package readings

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	instrumentFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sitrad_instrument_value_failures_total",
			Help: "Instruments whose values could not be fetched, by failure kind",
		},
		[]string{"kind"}, // unavailable, malformed, cancelled, other
	)

	missingValues = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readings_missing_total",
			Help: "Matched measurement codes without a usable latest value",
		},
		[]string{"code"},
	)

	valuesInError = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "readings_in_error_total",
			Help: "Latest values flagged isInError by the upstream",
		},
		[]string{"code"},
	)
)
