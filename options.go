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
	"log/slog"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/registry"
)

// Option configures the versioning engine.
type Option func(*Engine) error

// ═══════════════════════════════════════════════════════════════════════════════
// Reader Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithPathReader reads the version from a URL path segment.
// The pattern must contain the {version} placeholder.
//
// Example:
//
//	apiversioning.WithPathReader("/api/v{version}")
//	// Matches: /api/v1/users, /api/v2/users
func WithPathReader(pattern string) Option {
	return func(e *Engine) error {
		if err := reader.ValidatePathPattern(pattern); err != nil {
			return err
		}
		e.readers = append(e.readers, reader.Path(pattern))

		return nil
	}
}

// WithQueryReader reads the version from a query parameter.
//
// Example:
//
//	apiversioning.WithQueryReader("api-version")
//	// Client sends: GET /users?api-version=2.0
func WithQueryReader(param string) Option {
	return func(e *Engine) error {
		if param == "" {
			return reader.ErrEmptyQueryParam
		}
		e.readers = append(e.readers, reader.Query(param))

		return nil
	}
}

// WithHeaderReader reads the version from a request header.
//
// Example:
//
//	apiversioning.WithHeaderReader("X-API-Version")
//	// Client sends: X-API-Version: 2.0
func WithHeaderReader(name string) Option {
	return func(e *Engine) error {
		if name == "" {
			return reader.ErrEmptyHeaderName
		}
		e.readers = append(e.readers, reader.Header(name))

		return nil
	}
}

// WithMediaTypeReader reads the version from a media-type parameter on the
// Accept (or Content-Type) header.
//
// Example:
//
//	apiversioning.WithMediaTypeReader("v")
//	// Client sends: Accept: application/json;v=2.0
func WithMediaTypeReader(param string) Option {
	return func(e *Engine) error {
		if param == "" {
			return reader.ErrEmptyMediaParam
		}
		e.readers = append(e.readers, reader.MediaType(param))

		return nil
	}
}

// WithReader adds a custom version reader to the chain.
func WithReader(r reader.Reader) Option {
	return func(e *Engine) error {
		if r == nil {
			return ErrNilReader
		}
		e.readers = append(e.readers, r)

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Policy Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithDefaultVersion sets the default API version. It is stamped onto
// controllers that declare nothing and, under
// [WithAssumeDefaultWhenUnspecified], serves requests that carry no version.
func WithDefaultVersion(v apiversion.Version) Option {
	return func(e *Engine) error {
		e.defaultVersion = v
		return nil
	}
}

// WithAssumeDefaultWhenUnspecified lets requests without a version token be
// served as the version the configured selector picks (by default, the
// default version). Without this option such requests fail with
// ApiVersionUnspecified unless a version-neutral controller matches.
func WithAssumeDefaultWhenUnspecified() Option {
	return func(e *Engine) error {
		e.assumeDefault = true
		return nil
	}
}

// WithVersionSelector sets the policy that picks the effective version for
// unversioned requests. See [ConstantSelector], [HighestSupportedSelector],
// and [LowestSupportedSelector].
func WithVersionSelector(s VersionSelector) Option {
	return func(e *Engine) error {
		if s == nil {
			return ErrNilSelector
		}
		e.selector = s

		return nil
	}
}

// WithVersionReporting aggregates every route family's version surface and
// advertises it on responses through the api-supported-versions and
// api-deprecated-versions headers.
func WithVersionReporting() Option {
	return func(e *Engine) error {
		e.reportEnabled = true
		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Error Shaping Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithErrorFormatter sets the formatter that shapes resolution and
// selection failures into wire responses. Defaults to RFC 9457 problem
// details.
func WithErrorFormatter(f Formatter) Option {
	return func(e *Engine) error {
		if f == nil {
			return ErrNilFormatter
		}
		e.formatter = f

		return nil
	}
}

// ═══════════════════════════════════════════════════════════════════════════════
// Observability Options
// ═══════════════════════════════════════════════════════════════════════════════

// WithObserver configures callbacks for resolution and selection events.
//
// Example:
//
//	apiversioning.WithObserver(
//	    apiversioning.OnResolved(func(v apiversion.Version, src reader.Source) {
//	        slog.Debug("api version resolved", "version", v, "source", src)
//	    }),
//	)
func WithObserver(opts ...ObserverOption) Option {
	return func(e *Engine) error {
		obs := &Observer{}
		for _, opt := range opts {
			opt(obs)
		}
		e.observer = obs

		return nil
	}
}

// WithLogger routes registry build events to the given slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		e.events = registry.DefaultEventHandler(logger)
		return nil
	}
}

// WithEventHandler sets a custom handler for registry build events.
func WithEventHandler(h registry.EventHandler) Option {
	return func(e *Engine) error {
		if h == nil {
			return ErrNilEventHandler
		}
		e.events = h

		return nil
	}
}

// WithMetrics attaches an OpenTelemetry metrics recorder.
//
// Example:
//
//	recorder, err := apiversioning.NewRecorder(apiversioning.WithPrometheus())
//	engine, err := apiversioning.New(apiversioning.WithMetrics(recorder))
func WithMetrics(r *Recorder) Option {
	return func(e *Engine) error {
		if r == nil {
			return ErrNilRecorder
		}
		e.metrics = r

		return nil
	}
}
