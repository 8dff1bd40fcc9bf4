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

package camera

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/NVIDIA/sitrad-dashboard/pkg/sitrad"
)

// Unit is one camera: a main probe and an optional evaporator probe
// sharing a key. At least one of Main or Evaporator is set and Key is never empty.
type Unit struct {
	Key        string
	Main       *sitrad.Instrument
	Evaporator *sitrad.Instrument
}

// Name returns the display name of the camera: the main probe's name, else the
// evaporator's, else the key.
func (g *Unit) Name() string {
	switch {
	case g.Main != nil:
		return g.Main.Name
	case g.Evaporator != nil:
		return g.Evaporator.Name
	default:
		return g.Key
	}
}

// Groups is an ordered set of camera units. Iteration order is the order in
// which each key was first seen.
type Groups struct {
	order []*Unit
	index map[string]*Unit
}

// Len returns the number of groups.
func (gs *Groups) Len() int {
	if gs == nil {
		return 0
	}
	return len(gs.order)
}

// All returns the groups in first-seen key order. The slice is shared; callers
// must not modify it.
func (gs *Groups) All() []*Unit {
	if gs == nil {
		return nil
	}
	return gs.order
}

// Get returns the group for key.
func (gs *Groups) Get(key string) (*Unit, bool) {
	if gs == nil {
		return nil, false
	}
	g, ok := gs.index[key]
	return g, ok
}

// Sorted returns a copy of the groups ordered by key: integer keys first in
// numeric order, then the rest lexically.
func (gs *Groups) Sorted() []*Unit {
	out := make([]*Unit, gs.Len())
	copy(out, gs.All())
	sort.SliceStable(out, func(i, j int) bool {
		a, errA := strconv.Atoi(out[i].Key)
		b, errB := strconv.Atoi(out[j].Key)
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return out[i].Key < out[j].Key
		}
	})
	return out
}

// GroupInstruments partitions instruments into camera groups using Classify.
func GroupInstruments(instruments []sitrad.Instrument) *Groups {
	return Group(instruments, nil)
}

// Group partitions instruments into camera groups using match, or Classify
// when match is nil. Instruments the matcher rejects are dropped. When two
// instruments claim the same role for the same key the later one wins and a
// warning is logged.
func Group(instruments []sitrad.Instrument, match Matcher) *Groups {
	if match == nil {
		match = Classify
	}

	gs := &Groups{index: make(map[string]*Unit)}
	for i := range instruments {
		inst := instruments[i]
		role, key, ok := match(inst.Name)
		if !ok || key == "" {
			continue
		}
		if role != RoleMain && role != RoleEvaporator {
			slog.Warn("matcher returned unknown role, instrument ignored",
				"instrumentId", inst.ID, "name", inst.Name, "role", role)
			continue
		}

		g, exists := gs.index[key]
		if !exists {
			g = &Unit{Key: key}
			gs.index[key] = g
			gs.order = append(gs.order, g)
		}

		slot := &g.Main
		if role == RoleEvaporator {
			slot = &g.Evaporator
		}

		if prev := *slot; prev != nil {
			slog.Warn("duplicate instrument for camera role, keeping the later one",
				"key", key,
				"role", role.String(),
				"droppedId", prev.ID,
				"droppedName", prev.Name,
				"keptId", inst.ID,
				"keptName", inst.Name,
			)
		}
		*slot = &inst
	}

	return gs
}
