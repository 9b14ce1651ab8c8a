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

import "rivaas.dev/apiversioning/apiversion"

// VersionSelector chooses the effective API version for a request that did
// not specify one. The candidate model is the collated version surface of
// the controllers under consideration; selectors must be pure and safe for
// concurrent use.
type VersionSelector interface {
	// Select returns the effective version, or false when the policy cannot
	// produce one from the candidate model.
	Select(candidates apiversion.Model) (apiversion.Version, bool)
}

// ConstantSelector always selects a fixed version, regardless of what the
// candidates support. This is the default policy, pinned to the engine's
// configured default version.
type ConstantSelector struct {
	version apiversion.Version
}

// NewConstantSelector creates a selector pinned to the given version.
func NewConstantSelector(v apiversion.Version) *ConstantSelector {
	return &ConstantSelector{version: v}
}

// Select returns the pinned version.
func (s *ConstantSelector) Select(apiversion.Model) (apiversion.Version, bool) {
	return s.version, true
}

// HighestSupportedSelector selects the highest version the candidates
// support, directing unversioned requests to the current implementation.
type HighestSupportedSelector struct{}

// NewHighestSupportedSelector creates the highest-supported policy.
func NewHighestSupportedSelector() *HighestSupportedSelector {
	return &HighestSupportedSelector{}
}

// Select returns the highest supported candidate version, or false when the
// candidates support nothing.
func (s *HighestSupportedSelector) Select(candidates apiversion.Model) (apiversion.Version, bool) {
	supported := candidates.Supported()
	if len(supported) == 0 {
		return apiversion.Version{}, false
	}

	return supported[len(supported)-1], true
}

// LowestSupportedSelector selects the lowest version the candidates
// support, the most conservative policy for unversioned requests.
type LowestSupportedSelector struct{}

// NewLowestSupportedSelector creates the lowest-supported policy.
func NewLowestSupportedSelector() *LowestSupportedSelector {
	return &LowestSupportedSelector{}
}

// Select returns the lowest supported candidate version, or false when the
// candidates support nothing.
func (s *LowestSupportedSelector) Select(candidates apiversion.Model) (apiversion.Version, bool) {
	supported := candidates.Supported()
	if len(supported) == 0 {
		return apiversion.Version{}, false
	}

	return supported[0], true
}
