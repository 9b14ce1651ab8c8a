// Copyright 2025 The Rivaas Authors
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

package apiversioning

import (
	"context"
	"fmt"
	"net/http"
	"time"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"rivaas.dev/apiversioning/reader"
)

// Resolution outcome attribute values.
const (
	outcomeResolved    = "resolved"
	outcomeUnspecified = "unspecified"
	outcomeAmbiguous   = "ambiguous"
	outcomeMalformed   = "malformed"
)

// Recorder records version resolution and controller selection outcomes
// through the OpenTelemetry metric API. All methods are safe for concurrent
// use; a nil Recorder records nothing.
//
// By default the recorder does not set the global meter provider; pass
// [WithMeterProvider] to use an existing one or [WithPrometheus] to create
// a self-contained Prometheus-exported provider.
type Recorder struct {
	meterProvider      metric.MeterProvider
	prometheusRegistry *promclient.Registry
	ownsProvider       bool

	resolutions metric.Int64Counter
	selections  metric.Int64Counter
	duration    metric.Float64Histogram
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder) error

// WithMeterProvider uses an existing OpenTelemetry meter provider.
// The provider's lifecycle remains the caller's responsibility.
func WithMeterProvider(mp metric.MeterProvider) RecorderOption {
	return func(r *Recorder) error {
		if mp == nil {
			return fmt.Errorf("meter provider cannot be nil")
		}
		r.meterProvider = mp

		return nil
	}
}

// WithPrometheus creates a dedicated Prometheus registry and an OTel meter
// provider exporting into it. Serve [Recorder.Handler] to expose it.
func WithPrometheus() RecorderOption {
	return func(r *Recorder) error {
		registry := promclient.NewRegistry()
		exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
		if err != nil {
			return fmt.Errorf("prometheus exporter: %w", err)
		}
		r.prometheusRegistry = registry
		r.meterProvider = sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
		r.ownsProvider = true

		return nil
	}
}

// NewRecorder creates a metrics recorder. Without provider options it
// records against a self-contained Prometheus-exported provider.
func NewRecorder(opts ...RecorderOption) (*Recorder, error) {
	r := &Recorder{}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, fmt.Errorf("invalid recorder option: %w", err)
		}
	}

	if r.meterProvider == nil {
		if err := WithPrometheus()(r); err != nil {
			return nil, err
		}
	}

	meter := r.meterProvider.Meter("rivaas.dev/apiversioning")

	var err error
	r.resolutions, err = meter.Int64Counter("apiversioning.resolutions",
		metric.WithDescription("API version resolution outcomes"),
		metric.WithUnit("{resolution}"),
	)
	if err != nil {
		return nil, fmt.Errorf("resolutions counter: %w", err)
	}

	r.selections, err = meter.Int64Counter("apiversioning.selections",
		metric.WithDescription("Versioned controller selection outcomes"),
		metric.WithUnit("{selection}"),
	)
	if err != nil {
		return nil, fmt.Errorf("selections counter: %w", err)
	}

	r.duration, err = meter.Float64Histogram("apiversioning.selection.duration",
		metric.WithDescription("Versioned controller selection duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("selection duration histogram: %w", err)
	}

	return r, nil
}

// Handler returns the Prometheus scrape handler, or an error when the
// recorder was built on an external meter provider.
func (r *Recorder) Handler() (http.Handler, error) {
	if r.prometheusRegistry == nil {
		return nil, fmt.Errorf("handler only available with the Prometheus provider")
	}

	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{}), nil
}

// Shutdown flushes and shuts down the recorder's meter provider when the
// recorder owns it. External providers are left to their owner.
func (r *Recorder) Shutdown(ctx context.Context) error {
	if r == nil || !r.ownsProvider {
		return nil
	}
	mp, ok := r.meterProvider.(*sdkmetric.MeterProvider)
	if !ok {
		return nil
	}
	if err := mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("meter provider shutdown: %w", err)
	}

	return nil
}

// recordResolution records one resolution outcome.
func (r *Recorder) recordResolution(ctx context.Context, outcome string, source reader.Source) {
	if r == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if source != "" {
		attrs = append(attrs, attribute.String("source", string(source)))
	}
	r.resolutions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// recordSelection records one selection outcome and its duration.
func (r *Recorder) recordSelection(ctx context.Context, result SelectionResult, elapsed time.Duration) {
	if r == nil {
		return
	}

	attrs := []attribute.KeyValue{attribute.String("status", result.Status().String())}
	if result.Succeeded() {
		attrs = append(attrs, attribute.String("route", result.Descriptor().RouteKey()))
	}
	opts := metric.WithAttributes(attrs...)
	r.selections.Add(ctx, 1, opts)
	r.duration.Record(ctx, elapsed.Seconds(), opts)
}
