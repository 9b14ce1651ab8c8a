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

package registry

import (
	"net/http"

	"rivaas.dev/apiversioning/apiversion"
)

// Controller is a registration: one controller implementation, the route key
// it serves, and the versions it declares. Registrations are inputs to the
// registry build; the build turns each into an immutable [Descriptor].
type Controller struct {
	name     string
	routeKey string
	handler  http.Handler
	model    apiversion.Model
	actions  []ActionSpec

	modelOpts []apiversion.ModelOption
}

// ActionSpec declares one action on a controller with its own version set.
// Actions without declarations inherit the controller's model.
type ActionSpec struct {
	Name    string
	Handler http.Handler
	Options []apiversion.ModelOption
}

// ControllerOption configures a controller registration.
type ControllerOption func(*Controller)

// Supported declares versions the controller serves.
func Supported(versions ...apiversion.Version) ControllerOption {
	return func(c *Controller) {
		c.modelOpts = append(c.modelOpts, apiversion.WithSupported(versions...))
	}
}

// Deprecated declares versions the controller serves but has deprecated.
func Deprecated(versions ...apiversion.Version) ControllerOption {
	return func(c *Controller) {
		c.modelOpts = append(c.modelOpts, apiversion.WithDeprecated(versions...))
	}
}

// Advertised declares versions served elsewhere in the route family.
func Advertised(versions ...apiversion.Version) ControllerOption {
	return func(c *Controller) {
		c.modelOpts = append(c.modelOpts, apiversion.WithAdvertised(versions...))
	}
}

// Neutral marks the controller version-neutral: it accepts any version.
func Neutral() ControllerOption {
	return func(c *Controller) {
		c.modelOpts = append(c.modelOpts, apiversion.Neutral())
	}
}

// Action declares a named action with its own version model options.
func Action(name string, handler http.Handler, opts ...apiversion.ModelOption) ControllerOption {
	return func(c *Controller) {
		c.actions = append(c.actions, ActionSpec{Name: name, Handler: handler, Options: opts})
	}
}

// NewController creates a controller registration. The name identifies the
// controller for convention-based selection ("users"); the route key is the
// host route template or named route the controller serves ("/api/users").
func NewController(name, routeKey string, handler http.Handler, opts ...ControllerOption) *Controller {
	c := &Controller{
		name:     name,
		routeKey: routeKey,
		handler:  handler,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.model = apiversion.NewModel(c.modelOpts...)

	return c
}

// Name returns the controller name.
func (c *Controller) Name() string { return c.name }

// RouteKey returns the route key the controller serves.
func (c *Controller) RouteKey() string { return c.routeKey }

// Model returns the declared version model. An empty model means the
// controller made no declaration and the implicit convention applies.
func (c *Controller) Model() apiversion.Model { return c.model }

// Descriptor is one controller implementation inside a built group.
// Immutable once the registry snapshot is materialized.
type Descriptor struct {
	name     string
	routeKey string
	handler  http.Handler
	model    apiversion.Model // matching model: the versions this member serves
	reported apiversion.Model // advertising model: aggregated with the group, see Reported
	actions  []ActionDescriptor
	order    int // discovery order, tie-break for equal versions
}

// ActionDescriptor is one action inside a built descriptor.
type ActionDescriptor struct {
	name     string
	handler  http.Handler
	model    apiversion.Model
	reported apiversion.Model
}

// Name returns the controller name.
func (d *Descriptor) Name() string { return d.name }

// RouteKey returns the route key the descriptor serves.
func (d *Descriptor) RouteKey() string { return d.routeKey }

// Handler returns the opaque implementation the host invokes.
func (d *Descriptor) Handler() http.Handler { return d.handler }

// Model returns the versions this member itself serves.
// Selection matches resolved versions against this model.
func (d *Descriptor) Model() apiversion.Model { return d.model }

// Reported returns the advertising model: the member's own model aggregated
// with the whole group's collated model, with the rest of the family's
// versions carried as advertised. Populated only when version reporting is
// enabled on the registry; otherwise equal to Model.
func (d *Descriptor) Reported() apiversion.Model { return d.reported }

// Actions returns the descriptor's actions, if any were declared.
func (d *Descriptor) Actions() []ActionDescriptor { return d.actions }

// Name returns the action name.
func (a ActionDescriptor) Name() string { return a.name }

// Handler returns the action implementation.
func (a ActionDescriptor) Handler() http.Handler { return a.handler }

// Model returns the action's matching model.
func (a ActionDescriptor) Model() apiversion.Model { return a.model }

// Reported returns the action's advertising model.
func (a ActionDescriptor) Reported() apiversion.Model { return a.reported }

// sortVersion is the ascending sort key for descriptors inside a group: the
// lowest declared version. Neutral or undeclared descriptors sort first.
func (d *Descriptor) sortVersion() apiversion.Version {
	declared := d.model.Declared()
	if len(declared) == 0 {
		return apiversion.Version{}
	}

	return declared[0]
}
