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
	"rivaas.dev/apiversioning/apiversion"
)

// Group is the ordered set of descriptors sharing one route key, sorted
// ascending by version with stable discovery order for ties. Groups are
// immutable once the registry snapshot is built.
type Group struct {
	routeKey    string
	descriptors []*Descriptor
	collated    apiversion.Model // union of every member's model
}

// RouteKey returns the group's route key as first registered.
func (g *Group) RouteKey() string { return g.routeKey }

// Descriptors returns the members in ascending version order.
// The slice is shared; callers must not modify it.
func (g *Group) Descriptors() []*Descriptor { return g.descriptors }

// Collated returns the union of every member's version model: the full
// version surface of this route family.
func (g *Group) Collated() apiversion.Model { return g.collated }

// Match returns the first descriptor, in sorted order, whose model serves
// the given version. When several members declare the same version the
// first in sorted order wins deterministically.
func (g *Group) Match(v apiversion.Version) (*Descriptor, bool) {
	for _, d := range g.descriptors {
		if d.model.Matches(v) {
			return d, true
		}
	}

	return nil, false
}

// MatchNeutral returns the first version-neutral descriptor, if any.
// Neutral members satisfy requests that carry no version.
func (g *Group) MatchNeutral() (*Descriptor, bool) {
	for _, d := range g.descriptors {
		if d.model.IsNeutral() {
			return d, true
		}
	}

	return nil, false
}
