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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/registry"
)

func TestGuard(t *testing.T) {
	t.Parallel()

	t.Run("clean request passes with resolution in context", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))

		var got apiversion.Version
		next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			version, ok := VersionFromContext(req.Context())
			require.True(t, ok)
			got = version
		})

		rec := httptest.NewRecorder()
		e.Guard(next).ServeHTTP(rec, httptest.NewRequest("GET", "/users?api-version=2.0", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, v("2.0"), got)
	})

	t.Run("ambiguous request is rejected before the handler", func(t *testing.T) {
		t.Parallel()
		e := MustNew(
			WithQueryReader("api-version"),
			WithHeaderReader("X-API-Version"),
		)

		var handlerRan bool
		next := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { handlerRan = true })

		req := httptest.NewRequest("GET", "/users?api-version=1.0", nil)
		req.Header.Set("X-API-Version", "2.0")
		rec := httptest.NewRecorder()
		e.Guard(next).ServeHTTP(rec, req)

		assert.False(t, handlerRan)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, CodeAmbiguousVersion, body["code"])
	})

	t.Run("selection behind the guard resolves once", func(t *testing.T) {
		t.Parallel()
		var resolved int
		e := MustNew(
			WithQueryReader("api-version"),
			WithObserver(
				OnResolved(func(apiversion.Version, reader.Source) { resolved++ }),
			),
		)
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"))))

		next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
			assert.True(t, result.Succeeded())
		})

		rec := httptest.NewRecorder()
		e.Guard(next).ServeHTTP(rec, httptest.NewRequest("GET", "/api/users?api-version=1.0", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 1, resolved)
	})

	t.Run("unversioned request passes through", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))

		next := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			_, ok := VersionFromContext(req.Context())
			assert.False(t, ok)
		})

		rec := httptest.NewRecorder()
		e.Guard(next).ServeHTTP(rec, httptest.NewRequest("GET", "/users", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestServeSelection(t *testing.T) {
	t.Parallel()

	t.Run("dispatches to the selected controller", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))

		var served string
		v1 := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { served = "v1" })
		v2 := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { served = "v2" })
		e.MustRegister(registry.NewController("users", "/api/users", v1, registry.Supported(v("1.0"))))
		e.MustRegister(registry.NewController("users", "/api/users", v2, registry.Supported(v("2.0"))))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=2.0", nil)
		e.ServeSelection(rec, req, StaticRouteData{Direct: true, Key: "/api/users"})

		assert.Equal(t, "v2", served)
	})

	t.Run("advertises the family version surface", func(t *testing.T) {
		t.Parallel()
		e := MustNew(
			WithQueryReader("api-version"),
			WithVersionReporting(),
		)
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0")), registry.Deprecated(v("0.9"))))
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("2.0"))))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=2.0", nil)
		e.ServeSelection(rec, req, StaticRouteData{Direct: true, Key: "/api/users"})

		assert.Equal(t, "1.0, 2.0", rec.Header().Get(SupportedVersionsHeader))
		assert.Equal(t, "0.9", rec.Header().Get(DeprecatedVersionsHeader))
	})

	t.Run("no headers without reporting", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"))))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)
		e.ServeSelection(rec, req, StaticRouteData{Direct: true, Key: "/api/users"})

		assert.Empty(t, rec.Header().Get(SupportedVersionsHeader))
	})

	t.Run("selection failure is shaped", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"))))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=9.0", nil)
		e.ServeSelection(rec, req, StaticRouteData{Direct: true, Key: "/api/users"})

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, CodeUnsupportedVersion, body["code"])
		assert.Equal(t, []any{"1.0"}, body["supportedVersions"])
	})

	t.Run("handler mounts behind a provider", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))

		var served bool
		handler := http.HandlerFunc(func(http.ResponseWriter, *http.Request) { served = true })
		e.MustRegister(registry.NewController("users", "/api/users", handler,
			registry.Supported(v("1.0"))))

		provider := RouteDataProviderFunc(func(*http.Request) RouteData {
			return StaticRouteData{Direct: true, Key: "/api/users"}
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)
		e.Handler(provider).ServeHTTP(rec, req)

		assert.True(t, served)
	})

	t.Run("selected handler sees the resolution", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))

		var got apiversion.Version
		handler := http.HandlerFunc(func(_ http.ResponseWriter, req *http.Request) {
			got, _ = VersionFromContext(req.Context())
		})
		e.MustRegister(registry.NewController("users", "/api/users", handler,
			registry.Supported(v("1.0"))))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)
		e.ServeSelection(rec, req, StaticRouteData{Direct: true, Key: "/api/users"})

		assert.Equal(t, v("1.0"), got)
	})
}
