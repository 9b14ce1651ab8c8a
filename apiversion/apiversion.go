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

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// groupLayout is the wire format for group (date) stamps.
const groupLayout = "2006-01-02"

// Version is an immutable API version value.
//
// A version is ordered by (major, minor, status, group). The zero value is
// version 0.0 with no status and no group; use [Zero] to test for it.
type Version struct {
	major  int
	minor  int
	status string
	group  string // "2006-01-02" date stamp, empty when absent
}

// New creates a version from a major and minor component.
// Both components must be non-negative.
func New(major, minor int) (Version, error) {
	if major < 0 {
		return Version{}, fmt.Errorf("%w: major %d", ErrNegativeComponent, major)
	}
	if minor < 0 {
		return Version{}, fmt.Errorf("%w: minor %d", ErrNegativeComponent, minor)
	}

	return Version{major: major, minor: minor}, nil
}

// MustNew creates a version from a major and minor component,
// panicking on invalid input. Use for package-level declarations.
func MustNew(major, minor int) Version {
	v, err := New(major, minor)
	if err != nil {
		panic(fmt.Sprintf("apiversion: %v", err))
	}

	return v
}

// WithStatus returns a copy of v carrying the given status label.
// The label must start with a letter and contain only letters and digits.
func (v Version) WithStatus(status string) (Version, error) {
	if !validStatus(status) {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	v.status = status

	return v, nil
}

// WithGroup returns a copy of v carrying the given group (date) stamp.
func (v Version) WithGroup(group time.Time) Version {
	v.group = group.Format(groupLayout)
	return v
}

// Parse parses a version token. Accepted forms:
//
//	"1"                  major only
//	"1.2"                major.minor
//	"1.2-beta"           with status label
//	"2025-08-01"         group date only
//	"2025-08-01.1.2"     group date with numeric version
//	"2025-08-01.1.2-rc"  all components
//
// A leading "v" or "V" is tolerated ("v2" parses as 2.0) because path
// segments conventionally carry one.
func Parse(token string) (Version, error) {
	s := strings.TrimSpace(token)
	if s == "" {
		return Version{}, ErrEmptyToken
	}
	if s[0] == 'v' || s[0] == 'V' {
		s = s[1:]
	}

	var out Version

	// Group stamp, when present, is always the leading component.
	if hasGroupStamp(s) {
		stamp := s[:len(groupLayout)]
		if _, err := time.Parse(groupLayout, stamp); err != nil {
			return Version{}, fmt.Errorf("%w: bad group stamp in %q", ErrMalformed, token)
		}
		out.group = stamp
		s = s[len(groupLayout):]
		if s == "" {
			return out, nil
		}
		if s[0] != '.' {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		s = s[1:]
	}

	// Split off the status label.
	if dash := strings.IndexByte(s, '-'); dash >= 0 {
		status := s[dash+1:]
		if !validStatus(status) {
			return Version{}, fmt.Errorf("%w: bad status in %q", ErrMalformed, token)
		}
		out.status = status
		s = s[:dash]
	}

	if s == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformed, token)
	}

	majorStr, minorStr, hasMinor := strings.Cut(s, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return Version{}, fmt.Errorf("%w: %q", ErrMalformed, token)
	}
	out.major = major

	if hasMinor {
		minor, err := strconv.Atoi(minorStr)
		if err != nil || minor < 0 {
			return Version{}, fmt.Errorf("%w: %q", ErrMalformed, token)
		}
		out.minor = minor
	}

	return out, nil
}

// MustParse parses a version token, panicking on malformed input.
// Use for package-level declarations and tests.
func MustParse(token string) Version {
	v, err := Parse(token)
	if err != nil {
		panic(fmt.Sprintf("apiversion: %v", err))
	}

	return v
}

// hasGroupStamp reports whether s begins with a "2006-01-02" shaped stamp.
// Shape only; the stamp is validated by time.Parse afterwards.
func hasGroupStamp(s string) bool {
	if len(s) < len(groupLayout) {
		return false
	}
	for i := 0; i < len(groupLayout); i++ {
		if groupLayout[i] == '-' {
			if s[i] != '-' {
				return false
			}
			continue
		}
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// validStatus reports whether s is a legal status label:
// non-empty, starts with a letter, letters and digits only.
func validStatus(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		isDigit := c >= '0' && c <= '9'
		if i == 0 && !isLetter {
			return false
		}
		if !isLetter && !isDigit {
			return false
		}
	}

	return true
}

// Major returns the major version component.
func (v Version) Major() int { return v.major }

// Minor returns the minor version component.
func (v Version) Minor() int { return v.minor }

// Status returns the status label, or "" when none is set.
func (v Version) Status() string { return v.status }

// Group returns the group (date) stamp as "2006-01-02", or "" when none is set.
func (v Version) Group() string { return v.group }

// Zero reports whether v is the zero version value.
func (v Version) Zero() bool {
	return v.major == 0 && v.minor == 0 && v.status == "" && v.group == ""
}

// Compare returns -1, 0, or +1 ordering v against other by
// (major, minor, status, group). Absent status sorts after any status,
// matching the convention that "1.0" is the release of "1.0-beta".
func (v Version) Compare(other Version) int {
	if v.major != other.major {
		if v.major < other.major {
			return -1
		}
		return 1
	}
	if v.minor != other.minor {
		if v.minor < other.minor {
			return -1
		}
		return 1
	}
	if c := compareStatus(v.status, other.status); c != 0 {
		return c
	}

	return strings.Compare(v.group, other.group)
}

// compareStatus orders status labels lexicographically with the empty label
// (final release) ordered last.
func compareStatus(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	return strings.Compare(a, b)
}

// Equal reports structural equality.
func (v Version) Equal(other Version) bool {
	return v == other
}

// Less reports whether v orders strictly before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// String renders the version in its canonical wire form, e.g. "1.0",
// "2.1-beta", "2025-08-01.1.0".
func (v Version) String() string {
	var b strings.Builder
	if v.group != "" {
		b.WriteString(v.group)
		if v.major == 0 && v.minor == 0 && v.status == "" {
			return b.String()
		}
		b.WriteByte('.')
	}
	b.WriteString(strconv.Itoa(v.major))
	b.WriteByte('.')
	b.WriteString(strconv.Itoa(v.minor))
	if v.status != "" {
		b.WriteByte('-')
		b.WriteString(v.status)
	}

	return b.String()
}
