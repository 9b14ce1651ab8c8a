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

// Package registry maintains the process-lifetime mapping from route keys to
// groups of versioned controller descriptors.
//
// Controllers are registered up front, each declaring the API versions it
// implements (or nothing, in which case the implicit convention stamps the
// configured default version onto it):
//
//	reg := registry.New(registry.WithDefaultVersion(v1))
//	reg.Register(registry.NewController("users", "/api/users", usersV1,
//	    registry.Supported(v1),
//	))
//	reg.Register(registry.NewController("users", "/api/users", usersV2,
//	    registry.Supported(v2),
//	))
//
// The registry materializes lazily on first lookup: the first caller builds
// the snapshot while concurrent callers block, and every later lookup reads
// the same immutable snapshot without locking. Rebuilding is not supported;
// registering after the build returns [ErrFrozen].
//
// Route keys are case-insensitive. Two distinct keys that collide under
// case folding keep the first registration and drop the later one; drops are
// reported through the configured [EventHandler] rather than failing the
// build.
package registry
