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
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/registry"
)

func newUsersEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e := MustNew(append([]Option{WithQueryReader("api-version")}, opts...)...)
	e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
		registry.Supported(v("1.0"))))
	e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
		registry.Supported(v("2.0"))))

	return e
}

func TestSelectDirectTier(t *testing.T) {
	t.Parallel()

	t.Run("specified version selects the declaring member", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users?api-version=2.0", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		require.True(t, result.Succeeded())
		assert.Equal(t, SelectionSucceeded, result.Status())
		assert.Equal(t, []apiversion.Version{v("2.0")}, result.Descriptor().Model().Supported())
	})

	t.Run("route key lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/API/USERS"})
		assert.True(t, result.Succeeded())
	})

	t.Run("failure cites no route key when the direct key had no candidates", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		// Only the convention tier contributes candidates; the error must not
		// name the unrelated direct key.
		req := httptest.NewRequest("GET", "/api/users?api-version=9.0", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/other", Controller: "users"})
		assert.Equal(t, SelectionVersionNotFound, result.Status())

		var unsupported *UnsupportedVersionError
		require.ErrorAs(t, result.Err(), &unsupported)
		assert.Empty(t, unsupported.RouteKey)
	})

	t.Run("unsupported version fails with the family surface", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users?api-version=3.0", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, SelectionVersionNotFound, result.Status())

		var unsupported *UnsupportedVersionError
		require.ErrorAs(t, result.Err(), &unsupported)
		assert.Equal(t, v("3.0"), unsupported.Version)
		assert.Equal(t, "/api/users", unsupported.RouteKey)
		assert.Equal(t, []apiversion.Version{v("1.0"), v("2.0")}, unsupported.Supported)
		assert.Equal(t, http.StatusBadRequest, unsupported.HTTPStatus())
	})
}

func TestSelectConventionTier(t *testing.T) {
	t.Parallel()

	t.Run("no direct route falls back to controller name", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/anything?api-version=1.0", nil)

		result := e.Select(req, StaticRouteData{Controller: "users"})
		require.True(t, result.Succeeded())
		assert.Equal(t, "users", result.Descriptor().Name())
	})

	t.Run("direct miss falls through to convention match", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		// The direct route key has no candidates, but the controller token does.
		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/other", Controller: "users"})
		require.True(t, result.Succeeded())
		assert.Equal(t, "users", result.Descriptor().Name())
	})

	t.Run("direct candidates missing the version fall through to convention", func(t *testing.T) {
		t.Parallel()
		// The same controller name lives under two route keys; the direct
		// group serves only 1.0, the other family member serves 2.0.
		e := MustNew(WithQueryReader("api-version"))
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"))))
		e.MustRegister(registry.NewController("users", "/v2/users", noopHandler,
			registry.Supported(v("2.0"))))

		req := httptest.NewRequest("GET", "/api/users?api-version=2.0", nil)
		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users", Controller: "users"})

		require.True(t, result.Succeeded())
		assert.Equal(t, "/v2/users", result.Descriptor().RouteKey())
		assert.Equal(t, []apiversion.Version{v("2.0")}, result.Descriptor().Model().Supported())
	})

	t.Run("name derived from the request path", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users?api-version=2.0", nil)

		result := e.Select(req, nil)
		require.True(t, result.Succeeded())
		assert.Equal(t, "users", result.Descriptor().Name())
	})

	t.Run("unknown name with no direct route is a 404", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/orders?api-version=1.0", nil)

		result := e.Select(req, StaticRouteData{Controller: "orders"})
		assert.Equal(t, SelectionControllerNotFound, result.Status())

		var notFound *NotFoundError
		require.ErrorAs(t, result.Err(), &notFound)
		assert.Equal(t, http.StatusNotFound, notFound.HTTPStatus())
		assert.Equal(t, CodeResourceNotFound, notFound.Code())
	})
}

func TestSelectUnspecified(t *testing.T) {
	t.Parallel()

	t.Run("required version missing fails", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, SelectionVersionNotFound, result.Status())

		var unspecified *UnspecifiedVersionError
		require.ErrorAs(t, result.Err(), &unspecified)
		assert.Equal(t, CodeVersionUnspecified, unspecified.Code())
	})

	t.Run("assume default serves the default version", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t,
			WithDefaultVersion(v("1.0")),
			WithAssumeDefaultWhenUnspecified(),
		)
		req := httptest.NewRequest("GET", "/api/users", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		require.True(t, result.Succeeded())
		assert.Equal(t, []apiversion.Version{v("1.0")}, result.Descriptor().Model().Supported())
	})

	t.Run("highest supported selector picks the newest", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t,
			WithAssumeDefaultWhenUnspecified(),
			WithVersionSelector(NewHighestSupportedSelector()),
		)
		req := httptest.NewRequest("GET", "/api/users", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		require.True(t, result.Succeeded())
		assert.Equal(t, []apiversion.Version{v("2.0")}, result.Descriptor().Model().Supported())
	})

	t.Run("neutral controller needs no version", func(t *testing.T) {
		t.Parallel()
		e := MustNew(WithQueryReader("api-version"))
		e.MustRegister(registry.NewController("health", "/health", noopHandler,
			registry.Neutral()))
		req := httptest.NewRequest("GET", "/health", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/health"})
		require.True(t, result.Succeeded())
		assert.True(t, result.Descriptor().Model().IsNeutral())
	})
}

func TestSelectGuard(t *testing.T) {
	t.Parallel()

	t.Run("ambiguous version never reaches the registry", func(t *testing.T) {
		t.Parallel()
		e := MustNew(
			WithQueryReader("api-version"),
			WithHeaderReader("X-API-Version"),
		)
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"), v("2.0"))))

		req := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)
		req.Header.Set("X-API-Version", "2.0")

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, SelectionAmbiguousVersion, result.Status())
		assert.Nil(t, result.Descriptor())

		var ambiguous *AmbiguousVersionError
		assert.ErrorAs(t, result.Err(), &ambiguous)

		// The registry snapshot was not built: registration still works.
		assert.NoError(t, e.Register(registry.NewController("late", "/late", noopHandler)))
	})

	t.Run("malformed version is a version failure", func(t *testing.T) {
		t.Parallel()
		e := newUsersEngine(t)
		req := httptest.NewRequest("GET", "/api/users?api-version=banana", nil)

		result := e.Select(req, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, SelectionVersionNotFound, result.Status())

		var malformed *MalformedVersionError
		assert.ErrorAs(t, result.Err(), &malformed)
	})

	t.Run("selection observer sees the outcome", func(t *testing.T) {
		t.Parallel()
		var (
			selectedName string
			failedStatus SelectionStatus
		)
		e := MustNew(
			WithQueryReader("api-version"),
			WithObserver(
				OnSelected(func(d *registry.Descriptor, _ Resolution) {
					selectedName = d.Name()
				}),
				OnSelectionFailed(func(r SelectionResult) {
					failedStatus = r.Status()
				}),
			),
		)
		e.MustRegister(registry.NewController("users", "/api/users", noopHandler,
			registry.Supported(v("1.0"))))

		ok := httptest.NewRequest("GET", "/api/users?api-version=1.0", nil)
		e.Select(ok, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, "users", selectedName)

		miss := httptest.NewRequest("GET", "/api/users?api-version=9.0", nil)
		e.Select(miss, StaticRouteData{Direct: true, Key: "/api/users"})
		assert.Equal(t, SelectionVersionNotFound, failedStatus)
	})
}

func TestSelectionStatusString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "succeeded", SelectionSucceeded.String())
	assert.Equal(t, "ambiguous-version", SelectionAmbiguousVersion.String())
	assert.Equal(t, "version-not-found", SelectionVersionNotFound.String())
	assert.Equal(t, "controller-not-found", SelectionControllerNotFound.String())
	assert.Equal(t, "unknown", SelectionStatus(99).String())
}
