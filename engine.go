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
	"errors"
	"fmt"
	"net/http"
	"time"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/registry"
)

// Engine resolves API versions from requests and selects the versioned
// controller implementation that should handle them. Create one per process
// with [New], register controllers, and hand requests to [Engine.Select] or
// mount [Engine.Handler] behind a host router adapter.
//
// The engine is safe for concurrent use. Its controller registry builds
// exactly once, on the first selection, and is immutable afterwards.
type Engine struct {
	chain          *reader.Chain
	registry       *registry.Registry
	selector       VersionSelector
	defaultVersion apiversion.Version
	assumeDefault  bool
	reportEnabled  bool
	formatter      Formatter
	observer       *Observer
	metrics        *Recorder
	events         registry.EventHandler

	readers []reader.Reader
}

// New creates a versioning engine with the given options.
//
// Example:
//
//	engine, err := apiversioning.New(
//	    apiversioning.WithQueryReader("api-version"),
//	    apiversioning.WithHeaderReader("X-API-Version"),
//	    apiversioning.WithDefaultVersion(apiversion.MustNew(1, 0)),
//	    apiversioning.WithAssumeDefaultWhenUnspecified(),
//	)
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		defaultVersion: apiversion.MustNew(1, 0),
		events:         func(registry.Event) {},
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}

	// The query reader is the baseline strategy when nothing is configured.
	if len(e.readers) == 0 {
		e.readers = append(e.readers, reader.Query("api-version"))
	}
	e.chain = reader.NewChain(e.readers...)

	if e.selector == nil {
		e.selector = NewConstantSelector(e.defaultVersion)
	}
	if e.formatter == nil {
		e.formatter = NewRFC9457("")
	}

	regOpts := []registry.Option{
		registry.WithDefaultVersion(e.defaultVersion),
		registry.WithEventHandler(e.events),
	}
	if e.reportEnabled {
		regOpts = append(regOpts, registry.WithVersionReporting())
	}
	e.registry = registry.New(regOpts...)

	return e, nil
}

// MustNew creates a versioning engine, panicking on invalid options.
func MustNew(opts ...Option) *Engine {
	e, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("apiversioning: %v", err))
	}

	return e
}

// Register adds a controller registration to the engine's registry.
// Registration closes once the first selection builds the snapshot.
func (e *Engine) Register(c *registry.Controller) error {
	return e.registry.Register(c)
}

// MustRegister registers a controller, panicking on error.
func (e *Engine) MustRegister(c *registry.Controller) {
	e.registry.MustRegister(c)
}

// Registry returns the engine's controller registry.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// DefaultVersion returns the configured default version.
func (e *Engine) DefaultVersion() apiversion.Version {
	return e.defaultVersion
}

// Resolve runs the reader chain against the request and reconciles the
// result into a single version. It fails with [*AmbiguousVersionError] or
// [*MalformedVersionError]; both map to client errors, never 5xx.
//
// Resolve is pure per request and never touches the registry.
func (e *Engine) Resolve(req *http.Request) (Resolution, error) {
	res, err := resolveVersion(e.chain, req)
	switch {
	case err == nil && res.Specified():
		e.observer.notifyResolved(res.Version(), res.Source())
		e.metrics.recordResolution(req.Context(), outcomeResolved, res.Source())
	case err == nil:
		e.observer.notifyUnspecified()
		e.metrics.recordResolution(req.Context(), outcomeUnspecified, "")
	default:
		var ambiguous *AmbiguousVersionError
		if errors.As(err, &ambiguous) {
			e.observer.notifyAmbiguous(ambiguous.Tokens)
			e.metrics.recordResolution(req.Context(), outcomeAmbiguous, "")
		} else {
			e.observer.notifyMalformed(err)
			e.metrics.recordResolution(req.Context(), outcomeMalformed, "")
		}
	}

	return res, err
}

// Select resolves the request's version and runs two-tier controller
// selection against the given route data. The ambiguity guard is built in:
// an ambiguous or malformed version fails immediately and selection never
// consults the registry.
//
// When [Engine.Guard] already resolved the request, Select reuses the
// resolution from the request context instead of resolving (and notifying)
// again.
//
// The returned result is final; nothing is retried internally.
func (e *Engine) Select(req *http.Request, rd RouteData) SelectionResult {
	start := time.Now()

	res, ok := ResolutionFromContext(req.Context())
	var err error
	if !ok {
		res, err = e.Resolve(req)
	}
	if err != nil {
		// Guard: conflicting tokens abort before any registry access.
		var ambiguous *AmbiguousVersionError
		if errors.As(err, &ambiguous) {
			result := failed(SelectionAmbiguousVersion, res, err)
			e.notifySelection(req, result, time.Since(start))

			return result
		}

		result := failed(SelectionVersionNotFound, res, err)
		e.notifySelection(req, result, time.Since(start))

		return result
	}

	sc := &SelectionContext{req: req, routeData: rd, registry: e.registry}
	result := e.selectController(sc, res)
	e.notifySelection(req, result, time.Since(start))

	return result
}

// notifySelection forwards the selection outcome to observer and metrics.
func (e *Engine) notifySelection(req *http.Request, result SelectionResult, elapsed time.Duration) {
	if result.Succeeded() {
		e.observer.notifySelected(result.Descriptor(), result.Resolution())
	} else {
		e.observer.notifySelectionFailed(result)
	}
	e.metrics.recordSelection(req.Context(), result, elapsed)
}
