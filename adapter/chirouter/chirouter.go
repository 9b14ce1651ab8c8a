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

// Package chirouter adapts go-chi/chi to the apiversioning RouteData
// facade.
//
//	r := chi.NewRouter()
//	r.Handle("/api/users", engine.Handler(chirouter.New()))
//	r.Handle("/api/{controller}", engine.Handler(chirouter.New()))
package chirouter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"rivaas.dev/apiversioning"
)

// Provider derives RouteData from a chi-matched request.
type Provider struct{}

// New creates a chi route data provider.
func New() *Provider {
	return &Provider{}
}

// RouteData implements apiversioning.RouteDataProvider.
func (p *Provider) RouteData(req *http.Request) apiversioning.RouteData {
	return routeData{rctx: chi.RouteContext(req.Context())}
}

type routeData struct {
	rctx *chi.Context
}

// HasDirectRoute reports whether chi matched a route pattern.
func (r routeData) HasDirectRoute() bool {
	return r.rctx != nil && r.rctx.RoutePattern() != ""
}

// RouteKey returns chi's matched route pattern, e.g. "/api/{controller}".
func (r routeData) RouteKey() (string, bool) {
	if r.rctx == nil {
		return "", false
	}
	pattern := r.rctx.RoutePattern()

	return pattern, pattern != ""
}

// ControllerName returns the "controller" URL parameter, when the route
// declares one.
func (r routeData) ControllerName() (string, bool) {
	if r.rctx == nil {
		return "", false
	}
	name := r.rctx.URLParam("controller")

	return name, name != ""
}
