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
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"rivaas.dev/apiversioning/apiversion"
)

// Formatter shapes resolution and selection failures into HTTP response
// components. Implementations are host-router agnostic.
type Formatter interface {
	// Format converts an error into status code, content type, and body.
	Format(req *http.Request, err error) Response
}

// Response represents a formatted error response.
type Response struct {
	// Status is the HTTP status code.
	Status int

	// ContentType is the Content-Type header value.
	ContentType string

	// Body is the response body, marshaled to JSON when written.
	Body any
}

// RFC9457 formats failures as RFC 9457 Problem Details with content type
// "application/problem+json". The symbolic error code travels in the "code"
// extension; when the error is an [*UnsupportedVersionError], the supported
// versions travel in the "supportedVersions" extension.
type RFC9457 struct {
	// BaseURL is prepended to problem type slugs to create full URIs.
	BaseURL string

	// DisableErrorID disables error correlation IDs.
	DisableErrorID bool
}

// NewRFC9457 creates an RFC 9457 problem-details formatter. The baseURL is
// prepended to error codes to form problem type URIs; empty is allowed and
// yields bare codes.
func NewRFC9457(baseURL string) *RFC9457 {
	return &RFC9457{BaseURL: baseURL}
}

// ProblemDetail represents an RFC 9457 problem detail body.
type ProblemDetail struct {
	Type       string         `json:"type"`
	Title      string         `json:"title"`
	Status     int            `json:"status"`
	Detail     string         `json:"detail,omitempty"`
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"-"` // Marshaled inline
}

// MarshalJSON merges extension fields into the main JSON object while
// protecting reserved field names.
func (p ProblemDetail) MarshalJSON() ([]byte, error) {
	m := map[string]any{
		"type":   p.Type,
		"title":  p.Title,
		"status": p.Status,
	}
	if p.Detail != "" {
		m["detail"] = p.Detail
	}
	if p.Instance != "" {
		m["instance"] = p.Instance
	}
	for k, v := range p.Extensions {
		if k != "type" && k != "title" && k != "status" && k != "detail" && k != "instance" {
			m[k] = v
		}
	}

	return json.Marshal(m)
}

// Format converts a resolution or selection failure into a problem-details
// response. Errors implementing [ErrorType] control the status code;
// anything else maps to 500, which on this pipeline indicates a bug in the
// caller rather than a client mistake.
func (f *RFC9457) Format(req *http.Request, err error) Response {
	status := http.StatusInternalServerError
	var typed ErrorType
	if errors.As(err, &typed) {
		status = typed.HTTPStatus()
	}

	p := ProblemDetail{
		Type:       "about:blank",
		Title:      http.StatusText(status),
		Status:     status,
		Detail:     err.Error(),
		Extensions: make(map[string]any),
	}
	if req != nil && req.URL != nil {
		p.Instance = req.URL.Path
	}

	var coded ErrorCode
	if errors.As(err, &coded) {
		code := coded.Code()
		p.Extensions["code"] = code
		if f.BaseURL != "" {
			p.Type = f.BaseURL + "/" + code
		} else {
			p.Type = code
		}
	}

	var unsupported *UnsupportedVersionError
	if errors.As(err, &unsupported) && len(unsupported.Supported) > 0 {
		p.Extensions["supportedVersions"] = versionStrings(unsupported.Supported)
	}

	if !f.DisableErrorID {
		p.Extensions["error_id"] = "err-" + uuid.NewString()
	}

	return Response{
		Status:      status,
		ContentType: "application/problem+json; charset=utf-8",
		Body:        p,
	}
}

func versionStrings(versions []apiversion.Version) []string {
	out := make([]string, len(versions))
	for i, v := range versions {
		out[i] = v.String()
	}

	return out
}

// WriteError shapes err with the engine's formatter and writes it to w.
// Used by the middleware and the host adapters; hosts with their own error
// rendering can call [Engine.FormatError] instead.
func (e *Engine) WriteError(w http.ResponseWriter, req *http.Request, err error) {
	resp := e.formatter.Format(req, err)
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)
	// Encoding a ProblemDetail cannot fail; ignore the write error the same
	// way the host's response writer does.
	_ = json.NewEncoder(w).Encode(resp.Body)
}

// FormatError shapes err with the engine's formatter without writing it.
func (e *Engine) FormatError(req *http.Request, err error) Response {
	return e.formatter.Format(req, err)
}
