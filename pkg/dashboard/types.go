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
	"strconv"
)

// NotAvailable is rendered in place of a missing reading.
const NotAvailable = "N/A"

// Unit suffixes appended to formatted readings.
const (
	UnitCelsius = "°C"
	UnitPercent = "%"
)

// Snapshot is the display-ready summary of one camera produced by one
// aggregation pass.
type Snapshot struct {
	CameraName            string `json:"cameraName" yaml:"cameraName"`
	Temperature           string `json:"temperature" yaml:"temperature"`
	Humidity              string `json:"humidity" yaml:"humidity"`
	EvaporatorTemperature string `json:"evaporatorTemperature" yaml:"evaporatorTemperature"`
}

// Snapshots renders as a table with one camera per row.
type Snapshots []Snapshot

// TableHeader implements serializer.Tabular.
func (s Snapshots) TableHeader() []string {
	return []string{"CAMERA", "TEMPERATURE", "HUMIDITY", "EVAPORATOR"}
}

// TableRows implements serializer.Tabular.
func (s Snapshots) TableRows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, snap := range s {
		rows = append(rows, []string{snap.CameraName, snap.Temperature, snap.Humidity, snap.EvaporatorTemperature})
	}
	return rows
}

// FormatTemperature renders v with one decimal and "°C", or NotAvailable.
func FormatTemperature(v *float64) string {
	return formatReading(v, UnitCelsius)
}

// FormatHumidity renders v with one decimal and "%", or NotAvailable.
func FormatHumidity(v *float64) string {
	return formatReading(v, UnitPercent)
}

// formatReading uses '.' as the decimal separator regardless of locale.
func formatReading(v *float64, unit string) string {
	if v == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*v, 'f', 1, 64) + unit
}
