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

package apiversion

import (
	"slices"
	"strings"
)

// Model is the immutable version capability surface of one controller or
// action: the versions it supports, the versions it has deprecated, and the
// versions advertised on its behalf by the rest of its route family.
//
// Supported and deprecated may overlap; deprecated is informational and does
// not remove a version from service. A neutral model matches every version.
type Model struct {
	supported  []Version
	deprecated []Version
	advertised []Version
	neutral    bool
}

// ModelOption configures a Model under construction.
type ModelOption func(*Model)

// WithSupported declares versions the controller serves.
func WithSupported(versions ...Version) ModelOption {
	return func(m *Model) {
		m.supported = append(m.supported, versions...)
	}
}

// WithDeprecated declares versions the controller serves but has deprecated.
func WithDeprecated(versions ...Version) ModelOption {
	return func(m *Model) {
		m.deprecated = append(m.deprecated, versions...)
	}
}

// WithAdvertised declares versions served elsewhere in the route family.
func WithAdvertised(versions ...Version) ModelOption {
	return func(m *Model) {
		m.advertised = append(m.advertised, versions...)
	}
}

// Neutral marks the model version-neutral: it matches any resolved version
// and satisfies requests that carry no version at all.
func Neutral() ModelOption {
	return func(m *Model) {
		m.neutral = true
	}
}

// NewModel builds a model from the given options. Each version set is
// sorted ascending and deduplicated; the result is immutable.
func NewModel(opts ...ModelOption) Model {
	var m Model
	for _, opt := range opts {
		opt(&m)
	}
	m.supported = normalize(m.supported)
	m.deprecated = normalize(m.deprecated)
	m.advertised = normalize(m.advertised)

	return m
}

// EmptyModel returns a model with no declared versions.
func EmptyModel() Model {
	return Model{}
}

// normalize sorts ascending and removes duplicates, returning a fresh slice.
func normalize(versions []Version) []Version {
	if len(versions) == 0 {
		return nil
	}
	out := slices.Clone(versions)
	slices.SortFunc(out, Version.Compare)
	out = slices.CompactFunc(out, Version.Equal)

	return out
}

// Supported returns the supported versions, ascending. The slice is shared;
// callers must not modify it.
func (m Model) Supported() []Version { return m.supported }

// Deprecated returns the deprecated versions, ascending.
func (m Model) Deprecated() []Version { return m.deprecated }

// Advertised returns the advertised versions, ascending.
func (m Model) Advertised() []Version { return m.advertised }

// IsNeutral reports whether the model matches any version.
func (m Model) IsNeutral() bool { return m.neutral }

// IsEmpty reports whether the model declares no versions and is not neutral.
func (m Model) IsEmpty() bool {
	return !m.neutral && len(m.supported) == 0 && len(m.deprecated) == 0
}

// Declared returns the union of supported and deprecated versions, ascending.
// This is the set a resolved version is matched against.
func (m Model) Declared() []Version {
	return normalize(append(slices.Clone(m.supported), m.deprecated...))
}

// Matches reports whether the model can serve the given version:
// the model is neutral, or the version appears in its declared set.
func (m Model) Matches(v Version) bool {
	if m.neutral {
		return true
	}

	return contains(m.supported, v) || contains(m.deprecated, v)
}

func contains(sorted []Version, v Version) bool {
	_, ok := slices.BinarySearchFunc(sorted, v, Version.Compare)
	return ok
}

// Aggregate returns a new model holding the union of both models' sets.
// Neutrality is sticky: the union of a neutral model with anything is
// neutral. Aggregation is idempotent and commutative.
func (m Model) Aggregate(other Model) Model {
	return Model{
		supported:  normalize(append(slices.Clone(m.supported), other.supported...)),
		deprecated: normalize(append(slices.Clone(m.deprecated), other.deprecated...)),
		advertised: normalize(append(slices.Clone(m.advertised), other.advertised...)),
		neutral:    m.neutral || other.neutral,
	}
}

// Equal reports whether both models declare identical sets.
func (m Model) Equal(other Model) bool {
	return m.neutral == other.neutral &&
		slices.EqualFunc(m.supported, other.supported, Version.Equal) &&
		slices.EqualFunc(m.deprecated, other.deprecated, Version.Equal) &&
		slices.EqualFunc(m.advertised, other.advertised, Version.Equal)
}

// String renders the model for diagnostics, e.g.
// "supported=[1.0 2.0] deprecated=[0.9]".
func (m Model) String() string {
	if m.neutral {
		return "neutral"
	}

	var b strings.Builder
	b.WriteString("supported=")
	writeVersions(&b, m.supported)
	if len(m.deprecated) > 0 {
		b.WriteString(" deprecated=")
		writeVersions(&b, m.deprecated)
	}
	if len(m.advertised) > 0 {
		b.WriteString(" advertised=")
		writeVersions(&b, m.advertised)
	}

	return b.String()
}

func writeVersions(b *strings.Builder, versions []Version) {
	b.WriteByte('[')
	for i, v := range versions {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
}
