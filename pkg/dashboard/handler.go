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
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
	"github.com/NVIDIA/sitrad-dashboard/pkg/errors"
	"github.com/NVIDIA/sitrad-dashboard/pkg/server"
	"github.com/NVIDIA/sitrad-dashboard/pkg/serializer"
)

// Route paths served by the dashboard handlers.
const (
	DataPath        = "/v1/dashboard"
	LegacyDataPath  = "/Sitrad/GetDashboardData"
	IndexPath       = "/dashboard"
	LegacyIndexPath = "/Sitrad/Index"
	LegacyRootPath  = "/Sitrad"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="{{.RefreshSeconds}}">
<title>Cámaras</title>
<style>
body { font-family: sans-serif; margin: 2rem; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: .4rem .8rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
.na { color: #999; }
</style>
</head>
<body>
<h1>Cámaras</h1>
{{if .Snapshots}}
<table>
<thead><tr><th>Cámara</th><th>Temperatura</th><th>Humedad</th><th>Evaporador</th></tr></thead>
<tbody>
{{range .Snapshots}}<tr>
<td>{{.CameraName}}</td>
<td{{if eq .Temperature "N/A"}} class="na"{{end}}>{{.Temperature}}</td>
<td{{if eq .Humidity "N/A"}} class="na"{{end}}>{{.Humidity}}</td>
<td{{if eq .EvaporatorTemperature "N/A"}} class="na"{{end}}>{{.EvaporatorTemperature}}</td>
</tr>
{{end}}</tbody>
</table>
{{else}}
<p>No hay datos disponibles.</p>
{{end}}
<p><small>Actualizado {{.GeneratedAt}}</small></p>
</body>
</html>
`))

type pageData struct {
	Snapshots      []Snapshot
	RefreshSeconds int
	GeneratedAt    string
}

// HandleData serves the snapshots of one aggregation pass as a JSON array.
func (b *Builder) HandleData(w http.ResponseWriter, r *http.Request) {
	snaps, ok := b.buildForRequest(w, r)
	if !ok {
		return
	}
	serializer.RespondJSON(w, http.StatusOK, snaps)
}

// HandleIndex serves the snapshots as an HTML table that reloads itself.
func (b *Builder) HandleIndex(w http.ResponseWriter, r *http.Request) {
	snaps, ok := b.buildForRequest(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := pageTemplate.Execute(&buf, pageData{
		Snapshots:      snaps,
		RefreshSeconds: int(defaults.DashboardRefreshInterval / time.Second),
		GeneratedAt:    time.Now().Format("2006-01-02 15:04:05"),
	})
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to render dashboard", nil)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Warn("response write failed", "error", err)
	}
}

// buildForRequest enforces GET, bounds the build by the handler timeout and
// writes the error response itself when it reports false.
func (b *Builder) buildForRequest(w http.ResponseWriter, r *http.Request) ([]Snapshot, bool) {
	w.Header().Set("Cache-Control", "no-store")

	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		server.WriteError(w, r, http.StatusMethodNotAllowed, errors.ErrCodeMethodNotAllowed,
			"Method not allowed", false, map[string]any{
				"method": r.Method,
			})
		return nil, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), defaults.DashboardHandlerTimeout)
	defer cancel()

	snaps, err := b.Build(ctx)
	if err != nil {
		server.WriteErrorFromErr(w, r, err, "Failed to build dashboard", nil)
		return nil, false
	}
	return snaps, true
}
