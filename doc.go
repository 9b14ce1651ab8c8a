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

// Package apiversioning resolves, for an incoming HTTP request, which
// version of a multi-version API should handle it, and selects the concrete
// versioned controller implementing that version.
//
// The pipeline is: reader chain (path, query, header, media-type) → version
// resolution (conflict detection, default policy) → registry lookup by
// route key → two-tier controller selection (direct routes first,
// convention routes as fallback) → controller descriptor, or a structured,
// machine-distinguishable failure.
//
// # Quick Start
//
//	engine := apiversioning.MustNew(
//	    apiversioning.WithHeaderReader("X-API-Version"),
//	    apiversioning.WithQueryReader("api-version"),
//	    apiversioning.WithDefaultVersion(apiversion.MustNew(1, 0)),
//	    apiversioning.WithAssumeDefaultWhenUnspecified(),
//	    apiversioning.WithVersionReporting(),
//	)
//
//	v1 := apiversion.MustNew(1, 0)
//	v2 := apiversion.MustNew(2, 0)
//	engine.MustRegister(registry.NewController("users", "/api/users", usersV1,
//	    registry.Supported(v1),
//	))
//	engine.MustRegister(registry.NewController("users", "/api/users", usersV2,
//	    registry.Supported(v2),
//	))
//
//	mux := http.NewServeMux()
//	mux.Handle("/api/users", engine.Handler(stdrouter.New()))
//
// # Ambiguity Guard
//
// A request that sends conflicting versions through different surfaces
// (say, path "v1" and header "2.0") fails with a shaped 400 before any
// controller lookup runs. A request whose token does not parse fails the
// same way. Both carry symbolic codes ([CodeAmbiguousVersion],
// [CodeMalformedVersion]) that clients can branch on.
//
// # Failure Taxonomy
//
// Selection failures are distinguishable by construction: a path that
// matches no route at all is [CodeResourceNotFound] (404); a route that
// exists but does not serve the resolved version is
// [CodeUnsupportedVersion] (400); a request that names no version when one
// is required is [CodeVersionUnspecified] (400). Nothing in the pipeline
// is ever retried internally.
//
// # Host Routers
//
// The engine consumes a host router's match result through the narrow
// [RouteData] facade. Adapters for net/http, chi, gin, and echo live under
// adapter/.
package apiversioning
