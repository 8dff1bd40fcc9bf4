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

package sitrad

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Instrument is a single upstream sensor record, e.g. a chamber probe or an
// evaporator probe. Identity is ID.
type Instrument struct {
	ID                        int    `json:"id" yaml:"id"`
	Name                      string `json:"name" yaml:"name"`
	ConverterID               int    `json:"converterId" yaml:"converterId"`
	Address                   int    `json:"address" yaml:"address"`
	StatusID                  int    `json:"statusId" yaml:"statusId"`
	Status                    string `json:"status" yaml:"status"`
	ModelID                   int    `json:"modelId" yaml:"modelId"`
	ModelVersion              int    `json:"modelVersion" yaml:"modelVersion"`
	IsAlarmsManuallyInhibited bool   `json:"isAlarmsManuallyInhibited" yaml:"isAlarmsManuallyInhibited"`
}

// ValueGroup is a named bundle of measurements for one instrument,
// e.g. "Temperature" or "Humidity".
type ValueGroup struct {
	Code   string        `json:"code" yaml:"code"`
	Name   string        `json:"name" yaml:"name"`
	Values []Measurement `json:"values" yaml:"values"`
}

// Latest returns the first measurement of the group, which the upstream
// reports as the most recent one.
func (g ValueGroup) Latest() (Measurement, bool) {
	if len(g.Values) == 0 {
		return Measurement{}, false
	}
	return g.Values[0], true
}

// Measurement is one reading inside a ValueGroup. Value is kept raw because the
// upstream sends numbers, numeric strings or null depending on the firmware.
type Measurement struct {
	Date               string          `json:"date" yaml:"date"`
	Value              json.RawMessage `json:"value" yaml:"-"`
	DecimalPlaces      int             `json:"decimalPlaces" yaml:"decimalPlaces"`
	IsInError          bool            `json:"isInError" yaml:"isInError"`
	IsEnabled          bool            `json:"isEnabled" yaml:"isEnabled"`
	IsFailPayload      bool            `json:"isFailPayload" yaml:"isFailPayload"`
	MeasurementUnityID *int            `json:"measurementUnityId,omitempty" yaml:"measurementUnityId,omitempty"`
	MeasurementUnity   string          `json:"measurementUnity,omitempty" yaml:"measurementUnity,omitempty"`
}

var jsonNull = []byte("null")

// Float parses Value as a decimal number using '.' as the separator regardless
// of locale. It reports false for null, missing, non-numeric or non-finite values.
func (m Measurement) Float() (float64, bool) {
	raw := bytes.TrimSpace(m.Value)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return 0, false
	}

	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
	}

	s = strings.TrimSpace(s)
	if isHexFloat(s) {
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isHexFloat reports a 0x/0X prefix after an optional sign.
func isHexFloat(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}

// wire types: required fields are pointers so their absence can be detected.

type envelope[T any] struct {
	ResultsQty int  `json:"resultsQty"`
	Status     int  `json:"status"`
	Results    *[]T `json:"results"`
}

type instrumentPayload struct {
	ID                        *int    `json:"id"`
	Name                      *string `json:"name"`
	ConverterID               int     `json:"converterId"`
	Address                   int     `json:"address"`
	StatusID                  int     `json:"statusId"`
	Status                    string  `json:"status"`
	ModelID                   int     `json:"modelId"`
	ModelVersion              int     `json:"modelVersion"`
	IsAlarmsManuallyInhibited bool    `json:"isAlarmsManuallyInhibited"`
}

type valueGroupPayload struct {
	Code   *string       `json:"code"`
	Name   string        `json:"name"`
	Values []Measurement `json:"values"`
}
