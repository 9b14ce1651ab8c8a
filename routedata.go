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

import "net/http"

// RouteData is the narrow facade over a host router's match result.
// Adapters under adapter/ implement it for net/http, chi, gin, and echo;
// the selector consumes nothing about a host router beyond this interface.
type RouteData interface {
	// HasDirectRoute reports whether the host matched a route template for
	// this request. When false, selection skips the direct tier entirely
	// and a selection miss is a 404, never a version problem.
	HasDirectRoute() bool

	// RouteKey returns the matched route template or named route, used to
	// look up the direct-route candidate group.
	RouteKey() (string, bool)

	// ControllerName derives a controller-name token from the route data,
	// e.g. a "controller" path parameter. Used by the convention tier.
	ControllerName() (string, bool)
}

// RouteDataProvider derives RouteData from a request. Implemented by the
// host router adapters.
type RouteDataProvider interface {
	RouteData(req *http.Request) RouteData
}

// RouteDataProviderFunc adapts a function to the RouteDataProvider
// interface.
type RouteDataProviderFunc func(req *http.Request) RouteData

// RouteData calls f.
func (f RouteDataProviderFunc) RouteData(req *http.Request) RouteData {
	return f(req)
}

// StaticRouteData is a ready-made RouteData value for hosts whose match
// result is already known, and for tests.
type StaticRouteData struct {
	// Direct reports whether a route template matched.
	Direct bool
	// Key is the matched route template or name, when Direct.
	Key string
	// Controller is the controller-name token, when the route carries one.
	Controller string
}

// HasDirectRoute implements RouteData.
func (s StaticRouteData) HasDirectRoute() bool { return s.Direct }

// RouteKey implements RouteData.
func (s StaticRouteData) RouteKey() (string, bool) { return s.Key, s.Key != "" }

// ControllerName implements RouteData.
func (s StaticRouteData) ControllerName() (string, bool) {
	return s.Controller, s.Controller != ""
}
