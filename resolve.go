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
	"net/http"

	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
)

// Resolution is the reconciled outcome of the reader chain for one request.
//
// Resolution is pure: the same request always yields the same resolution,
// and resolving never consults the controller registry.
type Resolution struct {
	version   apiversion.Version
	specified bool
	tokens    []reader.Token
}

// Version returns the resolved version. Meaningful only when Specified
// reports true.
func (r Resolution) Version() apiversion.Version { return r.version }

// Specified reports whether the request carried any version at all.
// When false, downstream policy (the version selector) decides the
// effective version.
func (r Resolution) Specified() bool { return r.specified }

// Tokens returns every raw token the reader chain observed, in chain order.
func (r Resolution) Tokens() []reader.Token { return r.tokens }

// Source returns the source of the first token that produced the resolved
// version, or "" when the request carried no version.
func (r Resolution) Source() reader.Source {
	if len(r.tokens) == 0 {
		return ""
	}

	return r.tokens[0].Source
}

// resolveVersion runs the full reader chain and reconciles its tokens into
// a single version.
//
// Zero tokens resolve to an unspecified version. One distinct parsed value
// resolves to that version, even when several readers supplied it (a client
// sending "v2" in the path and "2.0" in a header is consistent, not
// ambiguous). Two or more distinct values fail with
// [*AmbiguousVersionError]; an unparseable token fails with
// [*MalformedVersionError].
func resolveVersion(chain *reader.Chain, req *http.Request) (Resolution, error) {
	tokens := chain.Read(req)
	if len(tokens) == 0 {
		return Resolution{}, nil
	}

	var (
		distinct []apiversion.Version
		resolved apiversion.Version
	)
	for _, tok := range tokens {
		v, err := apiversion.Parse(tok.Value)
		if err != nil {
			return Resolution{}, &MalformedVersionError{Token: tok, Err: err}
		}
		if !containsVersion(distinct, v) {
			distinct = append(distinct, v)
			resolved = v
		}
	}

	if len(distinct) > 1 {
		return Resolution{}, &AmbiguousVersionError{Tokens: tokens}
	}

	return Resolution{version: resolved, specified: true, tokens: tokens}, nil
}

func containsVersion(versions []apiversion.Version, v apiversion.Version) bool {
	for _, existing := range versions {
		if existing.Equal(v) {
			return true
		}
	}

	return false
}
