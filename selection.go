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
	"strings"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/registry"
)

// SelectionStatus tags the outcome of controller selection.
type SelectionStatus int

const (
	// SelectionSucceeded means a controller descriptor was selected.
	SelectionSucceeded SelectionStatus = iota
	// SelectionAmbiguousVersion means the request supplied conflicting
	// version tokens; selection never ran.
	SelectionAmbiguousVersion
	// SelectionVersionNotFound means a route exists but no candidate
	// serves the resolved version (or the version was malformed or
	// required but unspecified).
	SelectionVersionNotFound
	// SelectionControllerNotFound means no route matched at all.
	SelectionControllerNotFound
)

// String returns the status name for diagnostics.
func (s SelectionStatus) String() string {
	switch s {
	case SelectionSucceeded:
		return "succeeded"
	case SelectionAmbiguousVersion:
		return "ambiguous-version"
	case SelectionVersionNotFound:
		return "version-not-found"
	case SelectionControllerNotFound:
		return "controller-not-found"
	default:
		return "unknown"
	}
}

// SelectionResult is the immutable, tagged outcome of one selection.
// It is returned up the call chain exactly once and never retried.
type SelectionResult struct {
	status     SelectionStatus
	descriptor *registry.Descriptor
	resolution Resolution
	err        error
}

// Succeeded reports whether a descriptor was selected.
func (r SelectionResult) Succeeded() bool { return r.status == SelectionSucceeded }

// Status returns the tagged outcome.
func (r SelectionResult) Status() SelectionStatus { return r.status }

// Descriptor returns the selected controller descriptor, or nil on failure.
func (r SelectionResult) Descriptor() *registry.Descriptor { return r.descriptor }

// Resolution returns the version resolution the selection ran against.
func (r SelectionResult) Resolution() Resolution { return r.resolution }

// Err returns the structured failure, or nil on success. The error always
// implements [ErrorCode] and [ErrorType].
func (r SelectionResult) Err() error { return r.err }

func succeeded(d *registry.Descriptor, res Resolution) SelectionResult {
	return SelectionResult{status: SelectionSucceeded, descriptor: d, resolution: res}
}

func failed(status SelectionStatus, res Resolution, err error) SelectionResult {
	return SelectionResult{status: status, resolution: res, err: err}
}

// SelectionContext is the short-lived, per-request state of one selection:
// the request, its route data, and the shared registry. The derived
// controller name is computed at most once.
type SelectionContext struct {
	req       *http.Request
	routeData RouteData
	registry  *registry.Registry

	nameComputed bool
	name         string
	nameOK       bool
}

// controllerName derives the controller name from route data, computing it
// lazily. When the route data carries no controller token it falls back to
// scanning the request path segments, last to first, for a name the
// registry knows.
func (sc *SelectionContext) controllerName() (string, bool) {
	if sc.nameComputed {
		return sc.name, sc.nameOK
	}
	sc.nameComputed = true

	if sc.routeData != nil {
		if name, ok := sc.routeData.ControllerName(); ok {
			sc.name, sc.nameOK = name, true
			return sc.name, sc.nameOK
		}
	}

	if sc.req != nil && sc.req.URL != nil {
		segments := strings.Split(strings.Trim(sc.req.URL.Path, "/"), "/")
		for i := len(segments) - 1; i >= 0; i-- {
			if segments[i] == "" {
				continue
			}
			if _, ok := sc.registry.LookupName(segments[i]); ok {
				sc.name, sc.nameOK = segments[i], true
				return sc.name, sc.nameOK
			}
		}
	}

	return "", false
}

// selectController runs the two-tier selection state machine against an
// already-reconciled resolution. The caller (the ambiguity guard) has
// handled ambiguous and malformed versions before this point.
//
// Direct tier: when the host matched a route, the candidates attached to
// that route key are tried first; a miss falls through rather than failing.
// Convention tier: candidates are looked up by derived controller name.
// Final failure distinguishes "no such route" from "route exists but not
// for this version".
func (e *Engine) selectController(sc *SelectionContext, res Resolution) SelectionResult {
	var (
		sawCandidates bool
		surface       apiversion.Model
		routeKey      string
	)

	// Direct (attribute) route tier.
	if sc.routeData != nil && sc.routeData.HasDirectRoute() {
		if key, ok := sc.routeData.RouteKey(); ok {
			if group, found := sc.registry.Lookup(key); found {
				if d, ok := e.matchGroup(group.Descriptors(), group.Collated(), res); ok {
					return succeeded(d, res)
				}
				// The key names candidates, so failures may cite it.
				routeKey = key
				sawCandidates = true
				surface = surface.Aggregate(group.Collated())
			}
		}
	}

	// Convention route tier.
	if name, ok := sc.controllerName(); ok {
		if candidates, found := sc.registry.LookupName(name); found {
			collated := apiversion.EmptyModel()
			for _, d := range candidates {
				collated = collated.Aggregate(d.Model())
			}
			if d, ok := e.matchGroup(candidates, collated, res); ok {
				return succeeded(d, res)
			}
			sawCandidates = true
			surface = surface.Aggregate(collated)
		}
	}

	// Neither tier produced a match; classify the failure.
	if !sawCandidates {
		path := ""
		if sc.req != nil && sc.req.URL != nil {
			path = sc.req.URL.Path
		}
		name, _ := sc.controllerName()

		return failed(SelectionControllerNotFound, res, &NotFoundError{
			Path:           path,
			ControllerName: name,
		})
	}

	if !res.Specified() && !e.assumeDefault {
		return failed(SelectionVersionNotFound, res, &UnspecifiedVersionError{RouteKey: routeKey})
	}

	version := res.Version()
	if !res.Specified() {
		if v, ok := e.selector.Select(surface); ok {
			version = v
		} else {
			version = e.defaultVersion
		}
	}

	return failed(SelectionVersionNotFound, res, &UnsupportedVersionError{
		Version:   version,
		RouteKey:  routeKey,
		Supported: surface.Supported(),
	})
}

// matchGroup applies version-containment matching over sorted candidates.
// For a specified version the first candidate declaring it wins; several
// candidates declaring the same version is tolerated and resolved by sorted
// order. For an unspecified version a neutral candidate wins outright;
// otherwise, when the assume-default policy is on, the configured selector
// picks the effective version from the candidates' collated surface.
func (e *Engine) matchGroup(candidates []*registry.Descriptor, collated apiversion.Model, res Resolution) (*registry.Descriptor, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	if res.Specified() {
		for _, d := range candidates {
			if d.Model().Matches(res.Version()) {
				return d, true
			}
		}

		return nil, false
	}

	// Unspecified: neutral candidates need no policy at all.
	for _, d := range candidates {
		if d.Model().IsNeutral() {
			return d, true
		}
	}

	if !e.assumeDefault {
		return nil, false
	}

	effective, ok := e.selector.Select(collated)
	if !ok {
		effective = e.defaultVersion
	}
	for _, d := range candidates {
		if d.Model().Matches(effective) {
			return d, true
		}
	}

	return nil, false
}
