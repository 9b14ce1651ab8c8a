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
	"errors"
	"fmt"
	"net/http"
	"strings"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
)

// Static errors for engine configuration validation.
var (
	ErrNilReader       = errors.New("reader cannot be nil")
	ErrNilSelector     = errors.New("version selector cannot be nil")
	ErrNilFormatter    = errors.New("error formatter cannot be nil")
	ErrNilEventHandler = errors.New("event handler cannot be nil")
	ErrNilRecorder     = errors.New("metrics recorder cannot be nil")
)

// Symbolic error codes surfaced to clients. These are wire-stable: error
// bodies carry them verbatim so clients can branch on them without parsing
// messages.
const (
	CodeAmbiguousVersion   = "AmbiguousApiVersion"
	CodeMalformedVersion   = "MalformedApiVersion"
	CodeVersionUnspecified = "ApiVersionUnspecified"
	CodeUnsupportedVersion = "UnsupportedApiVersion"
	CodeResourceNotFound   = "VersionedResourceNotFound"
)

// ErrorCode allows errors to expose a machine-readable code.
type ErrorCode interface {
	error
	// Code returns a machine-readable error code.
	Code() string
}

// ErrorType allows errors to declare their own HTTP status code.
type ErrorType interface {
	error
	// HTTPStatus returns the HTTP status code for this error.
	HTTPStatus() int
}

// AmbiguousVersionError is returned when a request supplies two or more
// distinct version values through different readers. It is raised before
// any controller selection runs and must surface as a client error, never
// a 5xx.
type AmbiguousVersionError struct {
	// Tokens are the conflicting raw tokens in reader order.
	Tokens []reader.Token
}

func (e *AmbiguousVersionError) Error() string {
	var b strings.Builder
	b.WriteString("ambiguous API version: request supplies conflicting versions ")
	for i, tok := range e.Tokens {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q (%s)", tok.Value, tok.Source)
	}

	return b.String()
}

// Code returns CodeAmbiguousVersion.
func (e *AmbiguousVersionError) Code() string { return CodeAmbiguousVersion }

// HTTPStatus returns 400.
func (e *AmbiguousVersionError) HTTPStatus() int { return http.StatusBadRequest }

// MalformedVersionError is returned when a version token is present but does
// not parse as an API version.
type MalformedVersionError struct {
	// Token is the offending raw token.
	Token reader.Token
	// Err is the underlying parse error.
	Err error
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("malformed API version %q from %s: %v", e.Token.Value, e.Token.Source, e.Err)
}

func (e *MalformedVersionError) Unwrap() error { return e.Err }

// Code returns CodeMalformedVersion.
func (e *MalformedVersionError) Code() string { return CodeMalformedVersion }

// HTTPStatus returns 400.
func (e *MalformedVersionError) HTTPStatus() int { return http.StatusBadRequest }

// UnspecifiedVersionError is returned when a request carries no version,
// no assume-default policy is configured, and no version-neutral candidate
// can serve it.
type UnspecifiedVersionError struct {
	// RouteKey is the route the request matched, when known.
	RouteKey string
}

func (e *UnspecifiedVersionError) Error() string {
	if e.RouteKey == "" {
		return "an API version is required but was not specified"
	}

	return fmt.Sprintf("an API version is required by route %q but was not specified", e.RouteKey)
}

// Code returns CodeVersionUnspecified.
func (e *UnspecifiedVersionError) Code() string { return CodeVersionUnspecified }

// HTTPStatus returns 400.
func (e *UnspecifiedVersionError) HTTPStatus() int { return http.StatusBadRequest }

// UnsupportedVersionError is returned when a route exists but no candidate
// controller declares the resolved version. Distinct from a routing 404:
// the resource is there, the requested version of it is not.
type UnsupportedVersionError struct {
	// Version is the resolved version no candidate serves.
	Version apiversion.Version
	// RouteKey is the route whose candidates were consulted.
	RouteKey string
	// Supported is the route family's declared surface, for the error body.
	Supported []apiversion.Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("API version %s is not supported by route %q", e.Version, e.RouteKey)
}

// Code returns CodeUnsupportedVersion.
func (e *UnsupportedVersionError) Code() string { return CodeUnsupportedVersion }

// HTTPStatus returns 400.
func (e *UnsupportedVersionError) HTTPStatus() int { return http.StatusBadRequest }

// NotFoundError is returned when no route template matched the request at
// all: a plain 404, never conflated with a version problem.
type NotFoundError struct {
	// Path is the request path that matched nothing.
	Path string
	// ControllerName is the name derived from route data, when any.
	ControllerName string
}

func (e *NotFoundError) Error() string {
	if e.ControllerName != "" {
		return fmt.Sprintf("no versioned controller %q matches %s", e.ControllerName, e.Path)
	}

	return fmt.Sprintf("no route matches %s", e.Path)
}

// Code returns CodeResourceNotFound.
func (e *NotFoundError) Code() string { return CodeResourceNotFound }

// HTTPStatus returns 404.
func (e *NotFoundError) HTTPStatus() int { return http.StatusNotFound }
