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

// Package apiversion provides the API version value type and the version
// capability model used throughout rivaas.dev/apiversioning.
//
// # Version Values
//
// A [Version] is an immutable major.minor pair with an optional pre-release
// status label and an optional group (date) stamp:
//
//	v, err := apiversion.New(2, 0)
//	v, err := apiversion.Parse("2.0-beta")
//	v, err := apiversion.Parse("2025-08-01.2.0")
//
// Versions form a strict total order over (major, minor, status, group), so
// they can be sorted, deduplicated, and compared deterministically:
//
//	if a.Compare(b) < 0 { ... }
//
// # Capability Models
//
// A [Model] describes the version surface of one controller or action: which
// versions it supports, which it has deprecated, and which other versions are
// advertised on its behalf by the rest of its route family:
//
//	m := apiversion.NewModel(
//	    apiversion.WithSupported(v1, v2),
//	    apiversion.WithDeprecated(v0),
//	)
//
// Models are immutable. [Model.Aggregate] produces a new model holding the
// union of two models' sets; aggregation is idempotent and commutative, which
// is what allows a route family's collated model to be folded over its
// members in any order.
package apiversion
