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

// Package reader extracts raw API version tokens from HTTP requests.
//
// A [Reader] inspects one request surface (URL path segment, query
// parameter, request header, or Accept media-type parameter) and yields at
// most one [Token] tagged with its [Source]. A [Chain] runs every configured
// reader on every request; readers are never short-circuited, because
// conflict detection downstream needs to see every candidate a client sent:
//
//	chain := reader.NewChain(
//	    reader.Path("/api/v{version}"),
//	    reader.Header("X-API-Version"),
//	    reader.Query("api-version"),
//	    reader.MediaType("v"),
//	)
//	tokens := chain.Read(req)
//
// Readers only read request data; they never parse tokens into versions and
// never mutate the request. Order in the chain affects reporting order only,
// not precedence.
package reader
