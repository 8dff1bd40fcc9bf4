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
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/NVIDIA/sitrad-dashboard/pkg/defaults"
	"github.com/NVIDIA/sitrad-dashboard/pkg/errors"
)

const (
	// DefaultUserAgent is sent with every upstream request.
	DefaultUserAgent = "Sitrad-Dashboard/1.0"

	instrumentsPath      = "/api/v1/instruments"
	instrumentValuesPath = "/api/v1/instruments/{id}/values"

	endpointInstruments = "instruments"
	endpointValues      = "values"

	defaultMaxIdleConns        = 100
	defaultMaxIdleConnsPerHost = 16
)

// Client talks to the instrument API. It is safe for concurrent use; the
// underlying connection pool is shared by all calls.
type Client struct {
	rc      *resty.Client
	baseURL string
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	userAgent string
	transport http.RoundTripper
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		o.userAgent = userAgent
	}
}

// WithTransport replaces the pooled transport built from Config. TLS settings
// in Config are ignored when a transport is supplied.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// NewClient builds a Client from cfg.
func NewClient(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRequest, "invalid upstream configuration", err)
	}

	o := &clientOptions{userAgent: DefaultUserAgent}
	for _, opt := range opts {
		opt(o)
	}

	rt := o.transport
	if rt == nil {
		t, err := newTransport(cfg)
		if err != nil {
			return nil, err
		}
		rt = t
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaults.UpstreamTimeout
	}

	rc := resty.NewWithClient(&http.Client{
		Transport: rt,
		Timeout:   timeout,
	}).
		SetBaseURL(cfg.BaseURL).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json").
		SetLogger(slogLogger{})

	if cfg.Username != "" {
		rc.SetBasicAuth(cfg.Username, cfg.Password)
	}

	if cfg.InsecureSkipVerify {
		slog.Warn("upstream certificate validation disabled, use only on trusted private networks",
			"url", cfg.BaseURL)
	}

	return &Client{rc: rc, baseURL: cfg.BaseURL}, nil
}

func newTransport(cfg Config) (*http.Transport, error) {
	tlsCfg := &tls.Config{
		MinVersion: tls.VersionTLS12,
		//nolint:gosec // explicit opt-in, see Config.InsecureSkipVerify
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CAFile != "" {
		pem, err := os.ReadFile(cfg.CAFile)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"failed to read upstream CA bundle", err, map[string]any{"file": cfg.CAFile})
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"upstream CA bundle contains no certificates", map[string]any{"file": cfg.CAFile})
		}
		tlsCfg.RootCAs = pool
	}

	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		DialContext: (&net.Dialer{
			Timeout:   defaults.HTTPConnectTimeout,
			KeepAlive: defaults.HTTPKeepAlive,
		}).DialContext,
		TLSHandshakeTimeout:   defaults.HTTPTLSHandshakeTimeout,
		ResponseHeaderTimeout: defaults.HTTPResponseHeaderTimeout,
		ExpectContinueTimeout: defaults.HTTPExpectContinueTimeout,
		IdleConnTimeout:       defaults.HTTPIdleConnTimeout,
		ForceAttemptHTTP2:     true,
		TLSClientConfig:       tlsCfg,
	}, nil
}

// Instruments fetches the full instrument catalog.
func (c *Client) Instruments(ctx context.Context) ([]Instrument, error) {
	var env envelope[instrumentPayload]
	if err := c.get(ctx, endpointInstruments, instrumentsPath, nil, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return nil, malformed(endpointInstruments, "response has no results", nil)
	}

	out := make([]Instrument, 0, len(*env.Results))
	for i, p := range *env.Results {
		if p.ID == nil || p.Name == nil {
			return nil, malformed(endpointInstruments,
				fmt.Sprintf("instrument at index %d is missing id or name", i), nil)
		}
		out = append(out, Instrument{
			ID:                        *p.ID,
			Name:                      *p.Name,
			ConverterID:               p.ConverterID,
			Address:                   p.Address,
			StatusID:                  p.StatusID,
			Status:                    p.Status,
			ModelID:                   p.ModelID,
			ModelVersion:              p.ModelVersion,
			IsAlarmsManuallyInhibited: p.IsAlarmsManuallyInhibited,
		})
	}

	slog.Debug("fetched instruments", "count", len(out), "resultsQty", env.ResultsQty)
	return out, nil
}

// InstrumentValues fetches the current value groups of one instrument.
func (c *Client) InstrumentValues(ctx context.Context, id int) ([]ValueGroup, error) {
	var env envelope[valueGroupPayload]
	params := map[string]string{"id": strconv.Itoa(id)}
	if err := c.get(ctx, endpointValues, instrumentValuesPath, params, &env); err != nil {
		return nil, err
	}
	if env.Results == nil {
		return nil, malformed(endpointValues, "response has no results", nil)
	}

	out := make([]ValueGroup, 0, len(*env.Results))
	for i, p := range *env.Results {
		if p.Code == nil {
			return nil, malformed(endpointValues,
				fmt.Sprintf("value group at index %d of instrument %d is missing code", i, id), nil)
		}
		out = append(out, ValueGroup{
			Code:   *p.Code,
			Name:   p.Name,
			Values: p.Values,
		})
	}
	return out, nil
}

// get issues a GET and decodes the body into out. It never retries.
func (c *Client) get(ctx context.Context, endpoint, path string, pathParams map[string]string, out any) error {
	start := time.Now()
	defer func() {
		upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req := c.rc.R().SetContext(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Get(path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			upstreamRequestsTotal.WithLabelValues(endpoint, outcomeCancelled).Inc()
			return errors.WrapWithContext(errors.ErrCodeTimeout, "upstream request cancelled", ctxErr,
				map[string]any{"endpoint": endpoint})
		}
		upstreamRequestsTotal.WithLabelValues(endpoint, outcomeUnavailable).Inc()
		return errors.WrapWithContext(errors.ErrCodeUnavailable, "upstream request failed", err,
			map[string]any{"endpoint": endpoint, "url": c.baseURL + path})
	}

	if !resp.IsSuccess() {
		upstreamRequestsTotal.WithLabelValues(endpoint, outcomeUnavailable).Inc()
		return errors.NewWithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("upstream returned %s", resp.Status()),
			map[string]any{"endpoint": endpoint, "url": resp.Request.URL, "status": resp.StatusCode()})
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		upstreamRequestsTotal.WithLabelValues(endpoint, outcomeMalformed).Inc()
		return malformed(endpoint, "failed to decode response", err)
	}

	upstreamRequestsTotal.WithLabelValues(endpoint, outcomeSuccess).Inc()
	return nil
}

func malformed(endpoint, message string, cause error) error {
	return errors.WrapWithContext(errors.ErrCodeMalformedResponse, message, cause,
		map[string]any{"endpoint": endpoint})
}

// IsUnavailable reports whether err means the upstream could not be reached
// or answered with a non-2xx status.
func IsUnavailable(err error) bool {
	return errors.HasCode(err, errors.ErrCodeUnavailable)
}

// IsMalformed reports whether err means the upstream answered with a payload
// that could not be decoded.
func IsMalformed(err error) bool {
	return errors.HasCode(err, errors.ErrCodeMalformedResponse)
}

// slogLogger routes resty's internal messages to slog.
type slogLogger struct{}

func (slogLogger) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (slogLogger) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (slogLogger) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
