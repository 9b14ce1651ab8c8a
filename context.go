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
	"context"

	"rivaas.dev/apiversioning/apiversion"
)

type contextKey int

const resolutionKey contextKey = iota

// WithResolution returns a context carrying the request's version
// resolution. The middleware stores it so handlers can read the version
// the request was dispatched under.
func WithResolution(ctx context.Context, res Resolution) context.Context {
	return context.WithValue(ctx, resolutionKey, res)
}

// ResolutionFromContext returns the resolution stored by the middleware.
func ResolutionFromContext(ctx context.Context) (Resolution, bool) {
	res, ok := ctx.Value(resolutionKey).(Resolution)
	return res, ok
}

// VersionFromContext returns the resolved API version for the request.
// The second return is false when no version was resolved (either the
// middleware did not run or the request carried no version).
func VersionFromContext(ctx context.Context) (apiversion.Version, bool) {
	res, ok := ResolutionFromContext(ctx)
	if !ok || !res.Specified() {
		return apiversion.Version{}, false
	}

	return res.Version(), true
}
