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

package apiversion

import "errors"

// Static errors for version construction and parsing.
// These errors should be wrapped with fmt.Errorf and %w when context is needed.
var (
	ErrNegativeComponent = errors.New("version component cannot be negative")
	ErrInvalidStatus     = errors.New("status label must start with a letter and contain only letters and digits")
	ErrEmptyToken        = errors.New("version token cannot be empty")
	ErrMalformed         = errors.New("malformed version token")
)
