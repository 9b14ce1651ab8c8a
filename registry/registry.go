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
	"log/slog"
	"slices"
	"strings"
	"sync"

	"rivaas.dev/apiversioning/apiversion"
)

// EventType represents the severity of an internal operational event.
type EventType int

const (
	// EventWarning indicates a warning event (e.g., a dropped duplicate key).
	EventWarning EventType = iota
	// EventInfo indicates an informational event (e.g., snapshot built).
	EventInfo
	// EventDebug indicates a debug event.
	EventDebug
)

// Event represents an internal operational event from the registry build.
type Event struct {
	Type    EventType
	Message string
	Args    []any // slog-style key-value pairs
}

// EventHandler processes internal operational events from the registry.
type EventHandler func(Event)

// DefaultEventHandler returns an EventHandler that logs events to the
// provided slog.Logger. If logger is nil, returns a no-op handler.
func DefaultEventHandler(logger *slog.Logger) EventHandler {
	if logger == nil {
		return func(Event) {}
	}

	return func(e Event) {
		switch e.Type {
		case EventWarning:
			logger.Warn(e.Message, e.Args...)
		case EventInfo:
			logger.Info(e.Message, e.Args...)
		case EventDebug:
			logger.Debug(e.Message, e.Args...)
		}
	}
}

// Registry maps route keys to controller descriptor groups.
//
// Registrations are collected first; the snapshot materializes exactly once
// on first lookup. The first caller performs the build while concurrent
// callers block on the same sync.Once; afterwards every read goes against
// the immutable snapshot without locking.
type Registry struct {
	mu          sync.Mutex // guards controllers and frozen before the build
	controllers []*Controller
	frozen      bool

	defaultVersion apiversion.Version
	reportEnabled  bool
	events         EventHandler

	once     sync.Once
	snapshot *snapshot
}

// snapshot is the immutable build output.
type snapshot struct {
	byKey  map[string]*Group        // lower-cased route key
	byName map[string][]*Descriptor // lower-cased controller name, sorted
	groups []*Group                 // insertion order
}

// Option configures a Registry.
type Option func(*Registry)

// WithDefaultVersion sets the version the implicit convention stamps onto
// controllers that declare nothing.
func WithDefaultVersion(v apiversion.Version) Option {
	return func(r *Registry) {
		r.defaultVersion = v
	}
}

// WithVersionReporting enables group aggregation: every member of a route
// family is re-stamped with the family's collated model so responses can
// advertise the full supported/deprecated version surface.
func WithVersionReporting() Option {
	return func(r *Registry) {
		r.reportEnabled = true
	}
}

// WithEventHandler sets the handler for build-time operational events.
func WithEventHandler(h EventHandler) Option {
	return func(r *Registry) {
		r.events = h
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		defaultVersion: apiversion.MustNew(1, 0),
		events:         func(Event) {},
	}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a controller registration. Registering after the snapshot
// has been built returns ErrFrozen; the snapshot is never rebuilt.
func (r *Registry) Register(c *Controller) error {
	if c == nil {
		return ErrNilController
	}
	if c.routeKey == "" {
		return ErrEmptyRouteKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	r.controllers = append(r.controllers, c)

	return nil
}

// MustRegister registers a controller, panicking on error.
// Use during startup wiring where a failure is a programming error.
func (r *Registry) MustRegister(c *Controller) {
	if err := r.Register(c); err != nil {
		panic("registry: " + err.Error())
	}
}

// Lookup returns the descriptor group for a route key, case-insensitively.
// The first call materializes the snapshot.
func (r *Registry) Lookup(routeKey string) (*Group, bool) {
	g, ok := r.load().byKey[strings.ToLower(routeKey)]
	return g, ok
}

// LookupName returns the descriptors registered under a controller name,
// case-insensitively, in ascending version order.
func (r *Registry) LookupName(name string) ([]*Descriptor, bool) {
	ds, ok := r.load().byName[strings.ToLower(name)]
	return ds, ok
}

// Groups returns every group in registration order.
func (r *Registry) Groups() []*Group {
	return r.load().groups
}

// DefaultVersion returns the version the implicit convention stamps.
func (r *Registry) DefaultVersion() apiversion.Version {
	return r.defaultVersion
}

// ReportingEnabled reports whether group aggregation is enabled.
func (r *Registry) ReportingEnabled() bool {
	return r.reportEnabled
}

// load returns the snapshot, building it exactly once.
func (r *Registry) load() *snapshot {
	r.once.Do(r.build)
	return r.snapshot
}

// build materializes the immutable snapshot. Runs exactly once.
func (r *Registry) build() {
	r.mu.Lock()
	r.frozen = true
	controllers := slices.Clone(r.controllers)
	r.mu.Unlock()

	snap := &snapshot{
		byKey:  make(map[string]*Group),
		byName: make(map[string][]*Descriptor),
	}

	// Group registrations by exact route key, preserving discovery order.
	keyOrder := make([]string, 0, len(controllers))
	byExactKey := make(map[string][]*Controller)
	for _, c := range controllers {
		if _, seen := byExactKey[c.routeKey]; !seen {
			keyOrder = append(keyOrder, c.routeKey)
		}
		byExactKey[c.routeKey] = append(byExactKey[c.routeKey], c)
	}

	for _, key := range keyOrder {
		group := r.buildGroup(key, byExactKey[key])

		// Keys are case-insensitive; a collision keeps the first group and
		// drops the later one. Reported, not fatal.
		folded := strings.ToLower(key)
		if kept, exists := snap.byKey[folded]; exists {
			r.events(Event{
				Type:    EventWarning,
				Message: "duplicate route key dropped",
				Args:    []any{"kept", kept.routeKey, "dropped", key},
			})
			continue
		}
		snap.byKey[folded] = group
		snap.groups = append(snap.groups, group)

		for _, d := range group.descriptors {
			if d.name == "" {
				continue
			}
			lower := strings.ToLower(d.name)
			snap.byName[lower] = append(snap.byName[lower], d)
		}
	}

	r.events(Event{
		Type:    EventInfo,
		Message: "controller registry built",
		Args:    []any{"groups", len(snap.groups), "controllers", len(controllers)},
	})

	r.snapshot = snap
}

// buildGroup turns the registrations sharing one route key into a sorted,
// aggregated descriptor group.
func (r *Registry) buildGroup(routeKey string, members []*Controller) *Group {
	descriptors := make([]*Descriptor, 0, len(members))
	for i, c := range members {
		descriptors = append(descriptors, &Descriptor{
			name:     c.name,
			routeKey: routeKey,
			handler:  c.handler,
			model:    r.applyConventions(c.model),
			actions:  r.buildActions(c),
			order:    i,
		})
	}

	// Ascending by version; stable, so equal versions keep discovery order.
	slices.SortStableFunc(descriptors, func(a, b *Descriptor) int {
		return a.sortVersion().Compare(b.sortVersion())
	})

	collated := apiversion.EmptyModel()
	for _, d := range descriptors {
		collated = collated.Aggregate(d.model)
	}

	for _, d := range descriptors {
		d.reported = r.stamp(d.model, collated)
		for i := range d.actions {
			d.actions[i].reported = r.stamp(d.actions[i].model, collated)
		}
	}

	return &Group{routeKey: routeKey, descriptors: descriptors, collated: collated}
}

// applyConventions resolves a registration's model: an explicit declaration
// (attribute convention) is kept as-is, an empty one falls back to the
// implicit convention stamping the configured default version.
func (r *Registry) applyConventions(declared apiversion.Model) apiversion.Model {
	if !declared.IsEmpty() {
		return declared
	}

	return apiversion.NewModel(apiversion.WithSupported(r.defaultVersion))
}

// buildActions resolves per-action models; actions without declarations
// inherit the controller's model.
func (r *Registry) buildActions(c *Controller) []ActionDescriptor {
	if len(c.actions) == 0 {
		return nil
	}

	controllerModel := r.applyConventions(c.model)
	actions := make([]ActionDescriptor, 0, len(c.actions))
	for _, spec := range c.actions {
		model := apiversion.NewModel(spec.Options...)
		if model.IsEmpty() {
			model = controllerModel
		}
		actions = append(actions, ActionDescriptor{
			name:    spec.Name,
			handler: spec.Handler,
			model:   model,
		})
	}

	return actions
}

// stamp computes a member's advertising model from its own model and the
// group's collated model: supported and deprecated become the family union
// while the family versions the member does not itself declare are carried
// as advertised, keeping advertised disjoint from the member's declared set.
func (r *Registry) stamp(own, collated apiversion.Model) apiversion.Model {
	if !r.reportEnabled {
		return own
	}

	aggregated := own.Aggregate(collated)

	ownDeclared := own.Declared()
	var advertised []apiversion.Version
	for _, v := range collated.Declared() {
		if !slices.ContainsFunc(ownDeclared, v.Equal) {
			advertised = append(advertised, v)
		}
	}

	opts := []apiversion.ModelOption{
		apiversion.WithSupported(aggregated.Supported()...),
		apiversion.WithDeprecated(aggregated.Deprecated()...),
		apiversion.WithAdvertised(advertised...),
	}
	if own.IsNeutral() {
		opts = append(opts, apiversion.Neutral())
	}

	return apiversion.NewModel(opts...)
}
