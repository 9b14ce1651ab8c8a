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
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/apiversioning/apiversion"
)

// Response headers advertising a route family's version surface.
const (
	// SupportedVersionsHeader lists the versions the matched route family
	// supports, comma-separated ascending.
	SupportedVersionsHeader = "api-supported-versions"
	// DeprecatedVersionsHeader lists the versions the matched route family
	// has deprecated.
	DeprecatedVersionsHeader = "api-deprecated-versions"
)

// Guard is the ambiguity guard middleware: it resolves the request's
// version eagerly and aborts with a shaped client error when the version is
// ambiguous or malformed, so selection never runs against a conflicted
// version. On success the resolution is stored in the request context and
// the request continues to next.
//
// Mount it in front of any handler chain that later calls
// [Engine.Select]; the selection re-resolves from the same pure inputs and
// reaches the same result.
func (e *Engine) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		res, err := e.Resolve(req)
		if err != nil {
			e.WriteError(w, req, err)
			return
		}

		ctx := WithResolution(req.Context(), res)
		if res.Specified() {
			annotateSpan(req, res.Version())
		}

		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// Handler runs the full pipeline behind a host router adapter: resolve
// (with the ambiguity guard), select, advertise version headers, and invoke
// the selected descriptor's handler. Failures are shaped by the engine's
// error formatter.
//
// Example with the net/http adapter:
//
//	mux.Handle("GET /api/users", engine.Handler(stdrouter.New()))
func (e *Engine) Handler(provider RouteDataProvider) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		var rd RouteData
		if provider != nil {
			rd = provider.RouteData(req)
		}
		e.ServeSelection(w, req, rd)
	})
}

// ServeSelection runs selection for a request whose route data is already
// known and writes either the selected controller's response or a shaped
// failure. Host adapters call this from their native handler types.
func (e *Engine) ServeSelection(w http.ResponseWriter, req *http.Request, rd RouteData) {
	result := e.Select(req, rd)
	if !result.Succeeded() {
		e.WriteError(w, req, result.Err())
		return
	}

	d := result.Descriptor()
	e.advertiseVersions(w, d.Reported())

	res := result.Resolution()
	if res.Specified() {
		annotateSpan(req, res.Version())
	}

	req = req.WithContext(WithResolution(req.Context(), res))
	d.Handler().ServeHTTP(w, req)
}

// advertiseVersions sets the supported/deprecated version headers from the
// selected descriptor's advertising model. No-op unless version reporting
// was enabled, which is the only time the model carries aggregated sets.
func (e *Engine) advertiseVersions(w http.ResponseWriter, reported apiversion.Model) {
	if !e.reportEnabled {
		return
	}

	if supported := joinVersions(reported.Supported()); supported != "" {
		w.Header().Set(SupportedVersionsHeader, supported)
	}
	if deprecated := joinVersions(reported.Deprecated()); deprecated != "" {
		w.Header().Set(DeprecatedVersionsHeader, deprecated)
	}
}

// joinVersions renders a version set comma-separated, ascending.
func joinVersions(versions []apiversion.Version) string {
	parts := make([]string, len(versions))
	for i, v := range versions {
		parts[i] = v.String()
	}

	return strings.Join(parts, ", ")
}

// annotateSpan records the resolved version on the active trace span, when
// the host has one on the request context.
func annotateSpan(req *http.Request, v apiversion.Version) {
	span := trace.SpanFromContext(req.Context())
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.String("api.version", v.String()))
}
