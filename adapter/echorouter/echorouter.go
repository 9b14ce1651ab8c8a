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

// Package echorouter adapts labstack/echo to the apiversioning RouteData
// facade.
//
//	e := echo.New()
//	e.GET("/api/users", echorouter.Dispatch(engine))
//	e.GET("/api/:controller", echorouter.Dispatch(engine))
package echorouter

import (
	"github.com/labstack/echo/v4"

	"rivaas.dev/apiversioning"
)

// RouteData derives route data from an echo request context.
func RouteData(c echo.Context) apiversioning.RouteData {
	return routeData{c: c}
}

// Dispatch returns an echo handler that runs version resolution and
// controller selection, then serves the selected descriptor's handler.
// Failures are written through the engine's error formatter.
func Dispatch(engine *apiversioning.Engine) echo.HandlerFunc {
	return func(c echo.Context) error {
		engine.ServeSelection(c.Response(), c.Request(), RouteData(c))
		return nil
	}
}

type routeData struct {
	c echo.Context
}

// HasDirectRoute reports whether echo matched a registered route.
// Echo routes unmatched paths to a not-found handler with an empty path
// template.
func (r routeData) HasDirectRoute() bool {
	path := r.c.Path()
	return path != "" && path != "/*"
}

// RouteKey returns echo's matched route template, e.g. "/api/:controller".
func (r routeData) RouteKey() (string, bool) {
	path := r.c.Path()
	if path == "" || path == "/*" {
		return "", false
	}

	return path, true
}

// ControllerName returns the "controller" route parameter, when declared.
func (r routeData) ControllerName() (string, bool) {
	name := r.c.Param("controller")
	return name, name != ""
}
