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

// Package ginrouter adapts gin-gonic/gin to the apiversioning RouteData
// facade.
//
//	r := gin.New()
//	r.GET("/api/users", ginrouter.Dispatch(engine))
//	r.GET("/api/:controller", ginrouter.Dispatch(engine))
package ginrouter

import (
	"github.com/gin-gonic/gin"

	"rivaas.dev/apiversioning"
)

// RouteData derives route data from a gin request context.
func RouteData(c *gin.Context) apiversioning.RouteData {
	return routeData{c: c}
}

// Dispatch returns a gin handler that runs version resolution and
// controller selection, then serves the selected descriptor's handler.
// Failures are written through the engine's error formatter.
func Dispatch(engine *apiversioning.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		engine.ServeSelection(c.Writer, c.Request, RouteData(c))
	}
}

type routeData struct {
	c *gin.Context
}

// HasDirectRoute reports whether gin matched a registered route.
// FullPath is empty for gin's NoRoute fallback handlers.
func (r routeData) HasDirectRoute() bool {
	return r.c.FullPath() != ""
}

// RouteKey returns gin's matched route template, e.g. "/api/:controller".
func (r routeData) RouteKey() (string, bool) {
	path := r.c.FullPath()
	return path, path != ""
}

// ControllerName returns the "controller" route parameter, when declared.
func (r routeData) ControllerName() (string, bool) {
	name := r.c.Param("controller")
	return name, name != ""
}
