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
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/sitrad-dashboard/pkg/errors"
)

const instrumentsJSON = `{
  "resultsQty": 3,
  "status": 200,
  "results": [
    {"id": 1, "converterId": 1, "name": "Cámara 4", "address": 4, "statusId": 1, "status": "Online",
     "modelId": 72, "modelVersion": 3, "isAlarmsManuallyInhibited": false, "firmware": "ignored"},
    {"id": 2, "converterId": 1, "name": "CAM S/EV 4", "address": 5},
    {"id": 3, "name": "Compresor 1"}
  ]
}`

const valuesJSON = `{
  "resultsQty": 2,
  "status": 200,
  "results": [
    {"code": "Temperature", "name": "Temperatura", "values": [
      {"date": "2025-01-15T10:30:00", "value": 5.04, "decimalPlaces": 1, "isInError": false, "isEnabled": true,
       "measurementUnityId": 1, "measurementUnity": "°C"},
      {"date": "2025-01-15T10:29:00", "value": 5.3, "decimalPlaces": 1}
    ]},
    {"code": "Humidity", "name": "Humedad", "values": [{"date": "2025-01-15T10:30:00", "value": "61.2"}]}
  ]
}`

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(t *testing.T, srv *httptest.Server) *Client {
	t.Helper()
	cfg := NewConfig()
	cfg.BaseURL = srv.URL
	cfg.Username = "operator"
	cfg.Password = "secret"
	cfg.InsecureSkipVerify = true
	c, err := NewClient(cfg)
	require.NoError(t, err)
	return c
}

func TestClient_Instruments(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/v1/instruments", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok, "expected basic auth")
		assert.Equal(t, "operator", user)
		assert.Equal(t, "secret", pass)
		assert.Equal(t, DefaultUserAgent, r.UserAgent())

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(instrumentsJSON))
	})

	c := newTestClient(t, srv)
	got, err := c.Instruments(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, Instrument{
		ID:           1,
		Name:         "Cámara 4",
		ConverterID:  1,
		Address:      4,
		StatusID:     1,
		Status:       "Online",
		ModelID:      72,
		ModelVersion: 3,
	}, got[0])
	assert.Equal(t, "CAM S/EV 4", got[1].Name)
	assert.Equal(t, 3, got[2].ID)
}

func TestClient_InstrumentValues(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/instruments/17/values", r.URL.Path)
		_, _ = w.Write([]byte(valuesJSON))
	})

	c := newTestClient(t, srv)
	groups, err := c.InstrumentValues(context.Background(), 17)
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, "Temperature", groups[0].Code)
	require.Len(t, groups[0].Values, 2)
	latest, ok := groups[0].Latest()
	require.True(t, ok)
	v, ok := latest.Float()
	require.True(t, ok)
	assert.InDelta(t, 5.04, v, 1e-9)
	require.NotNil(t, latest.MeasurementUnityID)
	assert.Equal(t, 1, *latest.MeasurementUnityID)

	hum, ok := groups[1].Values[0].Float()
	require.True(t, ok)
	assert.InDelta(t, 61.2, hum, 1e-9)
}

func TestClient_NonSuccessStatusIsUnavailable(t *testing.T) {
	for _, status := range []int{http.StatusServiceUnavailable, http.StatusUnauthorized, http.StatusNotFound} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})

			c := newTestClient(t, srv)
			got, err := c.Instruments(context.Background())
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, IsUnavailable(err), "unexpected error: %v", err)
			assert.False(t, IsMalformed(err))

			var se *errors.StructuredError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, status, se.Context["status"])
		})
	}
}

func TestClient_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		body string
		call func(*Client) error
	}{
		{
			name: "invalid json",
			body: `{"results": [`,
			call: func(c *Client) error { _, err := c.Instruments(context.Background()); return err },
		},
		{
			name: "missing results",
			body: `{"resultsQty": 0, "status": 200}`,
			call: func(c *Client) error { _, err := c.Instruments(context.Background()); return err },
		},
		{
			name: "null results",
			body: `{"results": null}`,
			call: func(c *Client) error { _, err := c.InstrumentValues(context.Background(), 1); return err },
		},
		{
			name: "instrument without id",
			body: `{"results": [{"name": "Cámara 1"}]}`,
			call: func(c *Client) error { _, err := c.Instruments(context.Background()); return err },
		},
		{
			name: "instrument without name",
			body: `{"results": [{"id": 3}]}`,
			call: func(c *Client) error { _, err := c.Instruments(context.Background()); return err },
		},
		{
			name: "value group without code",
			body: `{"results": [{"name": "Temperatura", "values": []}]}`,
			call: func(c *Client) error { _, err := c.InstrumentValues(context.Background(), 1); return err },
		},
		{
			name: "wrong type",
			body: `{"results": [{"id": "one", "name": "Cámara 1"}]}`,
			call: func(c *Client) error { _, err := c.Instruments(context.Background()); return err },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			err := tt.call(newTestClient(t, srv))
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "unexpected error: %v", err)
			assert.False(t, IsUnavailable(err))
		})
	}
}

func TestClient_CertificateValidatedByDefault(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(instrumentsJSON))
	})

	cfg := NewConfig()
	cfg.BaseURL = srv.URL
	c, err := NewClient(cfg)
	require.NoError(t, err)

	_, err = c.Instruments(context.Background())
	require.Error(t, err)
	assert.True(t, IsUnavailable(err), "self-signed certificate must be rejected: %v", err)
}

func TestClient_WithTransport(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "custom-agent", r.UserAgent())
		_, _, ok := r.BasicAuth()
		assert.False(t, ok, "no credentials configured")
		_, _ = w.Write([]byte(`{"results": []}`))
	})

	cfg := NewConfig()
	cfg.BaseURL = srv.URL
	c, err := NewClient(cfg, WithTransport(srv.Client().Transport), WithUserAgent("custom-agent"))
	require.NoError(t, err)

	got, err := c.Instruments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestClient_CancelledContext(t *testing.T) {
	var calls atomic.Int32
	release := make(chan struct{})
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	c := newTestClient(t, srv)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.InstrumentValues(ctx, 1)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeTimeout), "unexpected error: %v", err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, int32(1), calls.Load(), "requests must not be retried")
}

func TestNewClient_InvalidConfig(t *testing.T) {
	cfg := NewConfig()
	cfg.BaseURL = "ftp://sitrad"
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}

func TestNewClient_BadCAFile(t *testing.T) {
	cfg := NewConfig()
	cfg.CAFile = t.TempDir() + "/missing.pem"
	_, err := NewClient(cfg)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidRequest))
}
