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

package reader

import "net/http"

// Source identifies the request surface a token was read from.
type Source string

const (
	// SourcePath is a URL path segment, e.g. "/api/v2/users".
	SourcePath Source = "path"
	// SourceQuery is a query parameter, e.g. "?api-version=2.0".
	SourceQuery Source = "query"
	// SourceHeader is a request header, e.g. "X-API-Version: 2.0".
	SourceHeader Source = "header"
	// SourceMediaType is an Accept media-type parameter,
	// e.g. "Accept: application/json;v=2.0".
	SourceMediaType Source = "media-type"
)

// Token is one raw version token extracted from a request, tagged with
// where it came from. The value is unparsed; parsing and conflict handling
// belong to version resolution, not to readers.
type Token struct {
	// Value is the raw token text as the client sent it.
	Value string
	// Source is the request surface the token was read from.
	Source Source
}

// Reader extracts at most one raw version token from a request.
// Implementations must not mutate the request and must be safe for
// concurrent use.
type Reader interface {
	// Read returns the extracted token and true, or a zero Token and false
	// when this reader's surface carries no version.
	Read(req *http.Request) (Token, bool)

	// Source identifies the surface this reader inspects.
	Source() Source
}

// Chain is an ordered set of readers consulted together.
// Every reader runs on every request so that conflicting tokens across
// surfaces are all observed; order is significant only for reporting.
type Chain struct {
	readers []Reader
}

// NewChain builds a chain from the given readers. A nil or empty chain is
// valid and yields no tokens.
func NewChain(readers ...Reader) *Chain {
	return &Chain{readers: readers}
}

// Read runs every reader against the request and collects the non-empty
// tokens in reader order. Pure: same request, same tokens.
func (c *Chain) Read(req *http.Request) []Token {
	if c == nil || req == nil {
		return nil
	}

	var tokens []Token
	for _, r := range c.readers {
		if tok, ok := r.Read(req); ok && tok.Value != "" {
			tokens = append(tokens, tok)
		}
	}

	return tokens
}

// Readers returns the configured readers in chain order.
func (c *Chain) Readers() []Reader {
	if c == nil {
		return nil
	}

	return c.readers
}
