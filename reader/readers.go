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

import (
	"mime"
	"net/http"
	"strings"
)

// Placeholder marks the version position in a path pattern.
const Placeholder = "{version}"

// ═══════════════════════════════════════════════════════════════════════════════
// Path Reader
// ═══════════════════════════════════════════════════════════════════════════════

// PathReader extracts a version token from a URL path segment.
// The pattern must contain the {version} placeholder:
//
//	reader.Path("/api/v{version}")  // matches /api/v2/users, token "v2"
//	reader.Path("/{version}/")      // matches /2.0/users, token "2.0"
type PathReader struct {
	pattern string
	prefix  string // text before {version}
}

// Path creates a path segment reader for the given pattern.
// Use [ValidatePathPattern] to check the pattern at configuration time;
// a pattern without the placeholder never matches.
func Path(pattern string) *PathReader {
	prefix := pattern
	if idx := strings.Index(pattern, Placeholder); idx >= 0 {
		prefix = pattern[:idx]
	}

	return &PathReader{pattern: pattern, prefix: prefix}
}

// ValidatePathPattern reports whether pattern is usable by a PathReader.
func ValidatePathPattern(pattern string) error {
	if pattern == "" {
		return ErrEmptyPathPattern
	}
	if !strings.Contains(pattern, Placeholder) {
		return ErrMissingPlaceholder
	}

	return nil
}

// Pattern returns the configured pattern.
func (r *PathReader) Pattern() string { return r.pattern }

func (r *PathReader) Read(req *http.Request) (Token, bool) {
	if req == nil || req.URL == nil {
		return Token{}, false
	}
	segment, ok := r.Segment(req.URL.Path)
	if !ok {
		return Token{}, false
	}

	return Token{Value: segment, Source: SourcePath}, true
}

func (r *PathReader) Source() Source { return SourcePath }

// Segment extracts the raw version segment from a path, including any
// literal prefix characters the pattern embeds in the segment (a pattern
// ending in "v" yields "v2" for "/api/v2/users").
func (r *PathReader) Segment(path string) (string, bool) {
	if r.prefix == "" || r.prefix == r.pattern || !strings.HasPrefix(path, r.prefix) {
		return "", false
	}

	remaining := path[len(r.prefix):]
	if remaining == "" {
		return "", false
	}

	segment := remaining
	if end := strings.IndexByte(remaining, '/'); end >= 0 {
		segment = remaining[:end]
	}
	if segment == "" {
		return "", false
	}

	// Keep the literal "v" prefix with the token so "/api/v{version}"
	// yields "v2" rather than a bare "2".
	if i := strings.LastIndexByte(r.prefix, '/'); i >= 0 && i+1 < len(r.prefix) {
		segment = r.prefix[i+1:] + segment
	}

	return segment, true
}

// Strip removes the matched version segment from a path, returning the
// remainder suitable for route matching ("/api/v2/users" -> "/api/users").
func (r *PathReader) Strip(path string) string {
	if r.prefix == "" || r.prefix == r.pattern || !strings.HasPrefix(path, r.prefix) {
		return path
	}

	remaining := path[len(r.prefix):]
	end := strings.IndexByte(remaining, '/')

	base := r.prefix
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[:i]
	}
	if end == -1 {
		if base == "" {
			return "/"
		}
		return base
	}

	return base + remaining[end:]
}

// ═══════════════════════════════════════════════════════════════════════════════
// Query Reader
// ═══════════════════════════════════════════════════════════════════════════════

// QueryReader extracts a version token from a query parameter:
//
//	reader.Query("api-version")  // matches ?api-version=2.0
type QueryReader struct {
	param string
}

// Query creates a query parameter reader.
func Query(param string) *QueryReader {
	return &QueryReader{param: param}
}

// Param returns the configured parameter name.
func (r *QueryReader) Param() string { return r.param }

func (r *QueryReader) Read(req *http.Request) (Token, bool) {
	if req == nil || req.URL == nil || r.param == "" {
		return Token{}, false
	}
	v := req.URL.Query().Get(r.param)
	if v == "" {
		return Token{}, false
	}

	return Token{Value: v, Source: SourceQuery}, true
}

func (r *QueryReader) Source() Source { return SourceQuery }

// ═══════════════════════════════════════════════════════════════════════════════
// Header Reader
// ═══════════════════════════════════════════════════════════════════════════════

// HeaderReader extracts a version token from a request header:
//
//	reader.Header("X-API-Version")  // matches X-API-Version: 2.0
type HeaderReader struct {
	name string
}

// Header creates a request header reader.
func Header(name string) *HeaderReader {
	return &HeaderReader{name: name}
}

// Name returns the configured header name.
func (r *HeaderReader) Name() string { return r.name }

func (r *HeaderReader) Read(req *http.Request) (Token, bool) {
	if req == nil || r.name == "" {
		return Token{}, false
	}
	v := req.Header.Get(r.name)
	if v == "" {
		return Token{}, false
	}

	return Token{Value: v, Source: SourceHeader}, true
}

func (r *HeaderReader) Source() Source { return SourceHeader }

// ═══════════════════════════════════════════════════════════════════════════════
// Media-Type Reader
// ═══════════════════════════════════════════════════════════════════════════════

// MediaTypeReader extracts a version token from a media-type parameter on
// the Accept header (falling back to Content-Type when Accept is absent):
//
//	reader.MediaType("v")  // matches Accept: application/json;v=2.0
type MediaTypeReader struct {
	param string
}

// MediaType creates a media-type parameter reader.
func MediaType(param string) *MediaTypeReader {
	return &MediaTypeReader{param: param}
}

// Param returns the configured parameter name.
func (r *MediaTypeReader) Param() string { return r.param }

func (r *MediaTypeReader) Read(req *http.Request) (Token, bool) {
	if req == nil || r.param == "" {
		return Token{}, false
	}

	header := req.Header.Get("Accept")
	if header == "" {
		header = req.Header.Get("Content-Type")
	}
	if header == "" {
		return Token{}, false
	}

	// Accept may list several media types; the first one carrying the
	// parameter wins.
	for mediaType := range strings.SplitSeq(header, ",") {
		_, params, err := mime.ParseMediaType(strings.TrimSpace(mediaType))
		if err != nil {
			continue
		}
		if v, ok := params[r.param]; ok && v != "" {
			return Token{Value: v, Source: SourceMediaType}, true
		}
	}

	return Token{}, false
}

func (r *MediaTypeReader) Source() Source { return SourceMediaType }
