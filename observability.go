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
	"rivaas.dev/apiversioning/apiversion"
	"rivaas.dev/apiversioning/reader"
	"rivaas.dev/apiversioning/registry"
)

// Observer holds callbacks for resolution and selection events. All hooks
// are optional; nil hooks are skipped. Hooks run synchronously on the
// request path and must be fast and concurrency-safe.
type Observer struct {
	// OnResolved is called when a request's version resolves successfully.
	OnResolved func(version apiversion.Version, source reader.Source)

	// OnUnspecified is called when a request carries no version token.
	OnUnspecified func()

	// OnAmbiguous is called when a request supplies conflicting tokens.
	OnAmbiguous func(tokens []reader.Token)

	// OnMalformed is called when a version token fails to parse.
	OnMalformed func(err error)

	// OnSelected is called when selection picks a controller descriptor.
	OnSelected func(descriptor *registry.Descriptor, resolution Resolution)

	// OnSelectionFailed is called when selection ends in a failure result.
	OnSelectionFailed func(result SelectionResult)
}

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// OnResolved sets the callback for successful version resolution.
func OnResolved(fn func(version apiversion.Version, source reader.Source)) ObserverOption {
	return func(o *Observer) { o.OnResolved = fn }
}

// OnUnspecified sets the callback for requests without a version.
func OnUnspecified(fn func()) ObserverOption {
	return func(o *Observer) { o.OnUnspecified = fn }
}

// OnAmbiguous sets the callback for conflicting version tokens.
func OnAmbiguous(fn func(tokens []reader.Token)) ObserverOption {
	return func(o *Observer) { o.OnAmbiguous = fn }
}

// OnMalformed sets the callback for unparseable version tokens.
func OnMalformed(fn func(err error)) ObserverOption {
	return func(o *Observer) { o.OnMalformed = fn }
}

// OnSelected sets the callback for successful controller selection.
func OnSelected(fn func(descriptor *registry.Descriptor, resolution Resolution)) ObserverOption {
	return func(o *Observer) { o.OnSelected = fn }
}

// OnSelectionFailed sets the callback for failed controller selection.
func OnSelectionFailed(fn func(result SelectionResult)) ObserverOption {
	return func(o *Observer) { o.OnSelectionFailed = fn }
}

func (o *Observer) notifyResolved(v apiversion.Version, src reader.Source) {
	if o != nil && o.OnResolved != nil {
		o.OnResolved(v, src)
	}
}

func (o *Observer) notifyUnspecified() {
	if o != nil && o.OnUnspecified != nil {
		o.OnUnspecified()
	}
}

func (o *Observer) notifyAmbiguous(tokens []reader.Token) {
	if o != nil && o.OnAmbiguous != nil {
		o.OnAmbiguous(tokens)
	}
}

func (o *Observer) notifyMalformed(err error) {
	if o != nil && o.OnMalformed != nil {
		o.OnMalformed(err)
	}
}

func (o *Observer) notifySelected(d *registry.Descriptor, res Resolution) {
	if o != nil && o.OnSelected != nil {
		o.OnSelected(d, res)
	}
}

func (o *Observer) notifySelectionFailed(result SelectionResult) {
	if o != nil && o.OnSelectionFailed != nil {
		o.OnSelectionFailed(result)
	}
}
