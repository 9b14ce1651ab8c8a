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

package ginrouter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/apiversioning"
	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/registry"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDispatch(t *testing.T) {
	t.Parallel()

	t.Run("dispatches the selected version", func(t *testing.T) {
		t.Parallel()
		e := apiversioning.MustNew(apiversioning.WithQueryReader("api-version"))

		var served string
		e.MustRegister(registry.NewController("users", "/api/users", http.HandlerFunc(
			func(http.ResponseWriter, *http.Request) { served = "v1" }),
			registry.Supported(apiversion.MustParse("1.0"))))
		e.MustRegister(registry.NewController("users", "/api/users", http.HandlerFunc(
			func(http.ResponseWriter, *http.Request) { served = "v2" }),
			registry.Supported(apiversion.MustParse("2.0"))))

		r := gin.New()
		r.GET("/api/users", Dispatch(e))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users?api-version=2.0", nil))

		assert.Equal(t, "v2", served)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("route template and controller parameter", func(t *testing.T) {
		t.Parallel()
		r := gin.New()
		var got apiversioning.RouteData
		r.GET("/api/:controller", func(c *gin.Context) {
			got = RouteData(c)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/users", nil))

		require.NotNil(t, got)
		assert.True(t, got.HasDirectRoute())

		key, ok := got.RouteKey()
		require.True(t, ok)
		assert.Equal(t, "/api/:controller", key)

		name, ok := got.ControllerName()
		require.True(t, ok)
		assert.Equal(t, "users", name)
	})

	t.Run("no route fallback has no direct route", func(t *testing.T) {
		t.Parallel()
		r := gin.New()
		var got apiversioning.RouteData
		r.NoRoute(func(c *gin.Context) {
			got = RouteData(c)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/nowhere", nil))

		require.NotNil(t, got)
		assert.False(t, got.HasDirectRoute())
	})

	t.Run("failures are shaped as problem details", func(t *testing.T) {
		t.Parallel()
		e := apiversioning.MustNew(apiversioning.WithQueryReader("api-version"))
		e.MustRegister(registry.NewController("users", "/api/users", http.HandlerFunc(
			func(http.ResponseWriter, *http.Request) {}),
			registry.Supported(apiversion.MustParse("1.0"))))

		r := gin.New()
		r.GET("/api/users", Dispatch(e))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest("GET", "/api/users?api-version=9.0", nil))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
	})
}
