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

// Package stdrouter adapts net/http's ServeMux (Go 1.22 pattern routing)
// to the apiversioning RouteData facade.
//
//	mux := http.NewServeMux()
//	mux.Handle("/api/users", engine.Handler(stdrouter.New()))
//	mux.Handle("/api/{controller}", engine.Handler(stdrouter.New()))
package stdrouter

import (
	"net/http"
	"strings"

	"rivaas.dev/apiversioning"
)

// Provider derives RouteData from a ServeMux-matched request.
type Provider struct{}

// New creates a net/http route data provider.
func New() *Provider {
	return &Provider{}
}

// RouteData implements apiversioning.RouteDataProvider.
func (p *Provider) RouteData(req *http.Request) apiversioning.RouteData {
	return routeData{req: req}
}

type routeData struct {
	req *http.Request
}

// HasDirectRoute reports whether the mux matched a pattern. ServeMux sets
// Request.Pattern only after a successful match.
func (r routeData) HasDirectRoute() bool {
	return r.req.Pattern != ""
}

// RouteKey returns the matched pattern with any method prefix removed,
// so "GET /api/users" and "POST /api/users" share one candidate group.
func (r routeData) RouteKey() (string, bool) {
	pattern := r.req.Pattern
	if pattern == "" {
		return "", false
	}
	if _, path, found := strings.Cut(pattern, " "); found {
		pattern = path
	}

	return pattern, true
}

// ControllerName returns the "controller" path value, when the pattern
// declares one.
func (r routeData) ControllerName() (string, bool) {
	name := r.req.PathValue("controller")
	return name, name != ""
}
