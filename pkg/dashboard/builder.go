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

package dashboard

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/sitrad-dashboard/pkg/camera"
	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
	"github.com/NVIDIA/sitrad-dashboard/pkg/errors"
	"github.com/NVIDIA/sitrad-dashboard/pkg/readings"
	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

// InstrumentLister fetches the instrument catalog.
type InstrumentLister interface {
	Instruments(ctx context.Context) ([]sitrad.Instrument, error)
}

// Upstream is the full set of calls the Builder needs. *sitrad.Client satisfies it.
type Upstream interface {
	InstrumentLister
	readings.ValueSource
}

// Builder runs aggregation passes. It holds no per-call state and is safe for
// concurrent use.
type Builder struct {
	// Lister provides the instrument catalog.
	Lister InstrumentLister

	// Resolver extracts readings from instruments.
	Resolver *readings.Resolver

	// Matcher classifies instruments. Nil means camera.Classify.
	Matcher camera.Matcher

	// Concurrency bounds the number of value requests in flight. Zero or less
	// means unbounded.
	Concurrency int
}

// Option is a functional option for configuring Builder instances.
type Option func(*Builder)

// WithConcurrency bounds the number of value requests in flight.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		b.Concurrency = n
	}
}

// WithMatcher replaces the default instrument name matcher.
func WithMatcher(m camera.Matcher) Option {
	return func(b *Builder) {
		b.Matcher = m
	}
}

// NewBuilder returns a Builder reading from up.
func NewBuilder(up Upstream, opts ...Option) *Builder {
	b := &Builder{
		Lister:      up,
		Resolver:    readings.NewResolver(up),
		Concurrency: defaults.UpstreamConcurrency,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build runs one aggregation pass and returns a snapshot per camera in the
// order the cameras were first seen in the catalog.
//
// If the catalog cannot be fetched the result is an empty slice and no error.
// Per-instrument failures only blank the affected readings. The only error
// returned is cancellation of ctx, in which case no snapshots are returned.
func (b *Builder) Build(ctx context.Context) ([]Snapshot, error) {
	start := time.Now()
	defer func() {
		buildDuration.Observe(time.Since(start).Seconds())
	}()

	instruments, err := b.Lister.Instruments(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			buildsTotal.WithLabelValues(statusCancelled).Inc()
			return nil, errors.Wrap(errors.ErrCodeTimeout, "dashboard build cancelled", ctxErr)
		}
		slog.Warn("instrument catalog unavailable, returning no cameras",
			"code", string(errors.CodeOf(err)),
			"error", err,
		)
		buildsTotal.WithLabelValues(statusCatalogUnavailable).Inc()
		camerasGauge.Set(0)
		return []Snapshot{}, nil
	}

	groups := camera.Group(instruments, b.Matcher).All()

	// each goroutine owns exactly one slot
	mains := make([]readings.MainReadings, len(groups))
	evaps := make([]readings.EvaporatorReading, len(groups))

	g, gctx := errgroup.WithContext(ctx)
	if b.Concurrency > 0 {
		g.SetLimit(b.Concurrency)
	}
	for i, grp := range groups {
		if grp.Main != nil {
			g.Go(func() error {
				mains[i] = b.Resolver.ResolveMain(gctx, grp.Main)
				return nil
			})
		}
		if grp.Evaporator != nil {
			g.Go(func() error {
				evaps[i] = b.Resolver.ResolveEvaporator(gctx, grp.Evaporator)
				return nil
			})
		}
	}
	// workers never return an error; per-instrument failures are absorbed by the resolver
	_ = g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		buildsTotal.WithLabelValues(statusCancelled).Inc()
		return nil, errors.Wrap(errors.ErrCodeTimeout, "dashboard build cancelled", ctxErr)
	}

	snaps := make([]Snapshot, 0, len(groups))
	for i, grp := range groups {
		snaps = append(snaps, Snapshot{
			CameraName:            grp.Name(),
			Temperature:           FormatTemperature(mains[i].Temperature),
			Humidity:              FormatHumidity(mains[i].Humidity),
			EvaporatorTemperature: FormatTemperature(evaps[i].Temperature),
		})
	}

	buildsTotal.WithLabelValues(statusSuccess).Inc()
	camerasGauge.Set(float64(len(snaps)))
	slog.Debug("dashboard built",
		"instruments", len(instruments),
		"cameras", len(snaps),
		"duration", time.Since(start).String(),
	)

	return snaps, nil
}
