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
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/sitrad-dashboard/pkg/errors"
	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

// Measurement codes consulted in an instrument's value groups.
const (
	CodeTemperature = "Temperature"
	CodeHumidity    = "Humidity"
)

// ValueSource fetches the current value groups of one instrument.
// *sitrad.Client satisfies it.
type ValueSource interface {
	InstrumentValues(ctx context.Context, id int) ([]sitrad.ValueGroup, error)
}

// MainReadings are the values extracted from a main chamber probe.
// A nil field means no usable value.
type MainReadings struct {
	Temperature *float64
	Humidity    *float64
}

// EvaporatorReading is the value extracted from an evaporator probe.
type EvaporatorReading struct {
	Temperature *float64
}

// Resolver extracts numeric readings from instruments. Failures never escape:
// an instrument whose values cannot be fetched simply yields empty readings.
type Resolver struct {
	Source ValueSource
}

// NewResolver returns a Resolver reading from src.
func NewResolver(src ValueSource) *Resolver {
	return &Resolver{Source: src}
}

// ResolveMain returns temperature and humidity for inst. A nil inst returns
// empty readings without contacting the upstream.
func (r *Resolver) ResolveMain(ctx context.Context, inst *sitrad.Instrument) MainReadings {
	if inst == nil {
		return MainReadings{}
	}
	found := r.resolve(ctx, inst, CodeTemperature, CodeHumidity)
	return MainReadings{
		Temperature: found[CodeTemperature],
		Humidity:    found[CodeHumidity],
	}
}

// ResolveEvaporator returns the temperature of an evaporator probe. Humidity is
// never requested for evaporators.
func (r *Resolver) ResolveEvaporator(ctx context.Context, inst *sitrad.Instrument) EvaporatorReading {
	if inst == nil {
		return EvaporatorReading{}
	}
	found := r.resolve(ctx, inst, CodeTemperature)
	return EvaporatorReading{Temperature: found[CodeTemperature]}
}

// resolve fetches inst's values and returns the latest value of each wanted
// code, keyed by the canonical code. Missing codes are absent from the map.
func (r *Resolver) resolve(ctx context.Context, inst *sitrad.Instrument, codes ...string) map[string]*float64 {
	found := make(map[string]*float64, len(codes))
	if r == nil || r.Source == nil {
		return found
	}

	groups, err := r.Source.InstrumentValues(ctx, inst.ID)
	if err != nil {
		level := slog.LevelWarn
		if errors.HasCode(err, errors.ErrCodeTimeout) {
			level = slog.LevelDebug
		}
		slog.Log(ctx, level, "instrument values unavailable",
			"instrumentId", inst.ID,
			"name", inst.Name,
			"code", string(errors.CodeOf(err)),
			"error", err,
		)
		instrumentFailures.WithLabelValues(failureLabel(err)).Inc()
		return found
	}

	for _, g := range groups {
		code, ok := canonicalCode(g.Code, codes)
		if !ok {
			continue
		}

		m, ok := g.Latest()
		if !ok {
			missingValues.WithLabelValues(code).Inc()
			slog.Debug("value group has no measurements",
				"instrumentId", inst.ID, "code", code,
				"reason", string(errors.ErrCodeMissingData))
			continue
		}

		if m.IsInError {
			valuesInError.WithLabelValues(code).Inc()
		}

		v, ok := m.Float()
		if !ok {
			missingValues.WithLabelValues(code).Inc()
			slog.Debug("measurement value missing or unparsable",
				"instrumentId", inst.ID, "code", code, "raw", string(m.Value),
				"reason", string(errors.ErrCodeMissingData))
			continue
		}

		slog.Debug("resolved reading",
			"instrumentId", inst.ID, "code", code, "value", v, "date", m.Date)
		found[code] = &v
	}

	return found
}

func canonicalCode(code string, wanted []string) (string, bool) {
	for _, w := range wanted {
		if strings.EqualFold(code, w) {
			return w, true
		}
	}
	return "", false
}

func failureLabel(err error) string {
	switch errors.CodeOf(err) {
	case errors.ErrCodeUnavailable:
		return "unavailable"
	case errors.ErrCodeMalformedResponse:
		return "malformed"
	case errors.ErrCodeTimeout:
		return "cancelled"
	default:
		return "other"
	}
}
