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
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Role is the part an instrument plays inside a camera unit.
type Role string

const (
	// RoleMain is the chamber probe reporting temperature and humidity.
	RoleMain Role = "main"
	// RoleEvaporator is the companion evaporator probe.
	RoleEvaporator Role = "evaporator"
)

// String implements fmt.Stringer.
func (r Role) String() string {
	return string(r)
}

// Name prefixes, compared after case folding.
const (
	EvaporatorPrefix = "CAM S/EV"
	MainPrefix       = "Cámara"
	// MainPrefixUnaccented is the spelling of MainPrefix without the accent.
	MainPrefixUnaccented = "Camara"
)

// Matcher classifies an instrument name. It returns the role, the group key
// and whether the instrument takes part in a camera at all.
type Matcher func(name string) (role Role, key string, ok bool)

var (
	evaporatorFolded = fold(EvaporatorPrefix)
	mainFolded       = []string{fold(MainPrefix), fold(MainPrefixUnaccented)}
)

// Classify is the default Matcher. Names starting with "CAM S/EV" are
// evaporators, names starting with "Camara" or "Cámara" are main probes, both
// compared case-insensitively. No other accent variants match. The key is the
// last whitespace-delimited token of the name.
func Classify(name string) (Role, string, bool) {
	key := Key(name)
	if key == "" {
		return "", "", false
	}

	folded := fold(name)
	switch {
	case strings.HasPrefix(folded, evaporatorFolded):
		return RoleEvaporator, key, true
	case hasAnyPrefix(folded, mainFolded):
		return RoleMain, key, true
	default:
		return "", "", false
	}
}

// Key returns the last whitespace-delimited token of name, or "" when name is blank.
func Key(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSpace(fields[len(fields)-1])
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// fold composes s to NFC and applies Unicode case folding, so "CÁMARA" and a
// decomposed "Cámara" both become "cámara". Accents are kept.
func fold(s string) string {
	t := transform.Chain(norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(norm.NFC.String(s))
	}
	return out
}
