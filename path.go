// Copyright (C) 2025 Sneller, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package xspec

import (
	"fmt"
	"strconv"
	"strings"
)

// A Path is a document-path operand: dot-separated attribute names,
// each optionally followed by one or more [index] element
// dereferences, e.g. "mapAttr.listAttr[0].color".
//
// When rendered, each attribute name is replaced with a name
// placeholder; index brackets are preserved literally.
type Path struct {
	segments []pathSegment
}

type pathSegment struct {
	name    string
	indexes []int
}

// ParsePath parses a document path. It returns an error for empty
// paths, empty path components, and malformed index brackets.
func ParsePath(s string) (*Path, error) {
	if s == "" {
		return nil, fmt.Errorf("xspec: empty document path")
	}
	parts := strings.Split(s, ".")
	p := &Path{segments: make([]pathSegment, 0, len(parts))}
	for _, part := range parts {
		seg, err := parseSegment(part)
		if err != nil {
			return nil, fmt.Errorf("xspec: document path %q: %w", s, err)
		}
		p.segments = append(p.segments, seg)
	}
	return p, nil
}

func parseSegment(part string) (pathSegment, error) {
	name := part
	var indexes []int
	if i := strings.IndexByte(part, '['); i >= 0 {
		name = part[:i]
		rest := part[i:]
		for rest != "" {
			if rest[0] != '[' {
				return pathSegment{}, fmt.Errorf("unexpected %q after index", rest)
			}
			j := strings.IndexByte(rest, ']')
			if j < 0 {
				return pathSegment{}, fmt.Errorf("unterminated index in %q", part)
			}
			n, err := strconv.Atoi(rest[1:j])
			if err != nil || n < 0 {
				return pathSegment{}, fmt.Errorf("bad array index %q", rest[1:j])
			}
			indexes = append(indexes, n)
			rest = rest[j+1:]
		}
	}
	if name == "" {
		return pathSegment{}, fmt.Errorf("empty path component")
	}
	if strings.IndexByte(name, ']') >= 0 {
		return pathSegment{}, fmt.Errorf("stray ']' in component %q", part)
	}
	return pathSegment{name: name, indexes: indexes}, nil
}

// mustPath is the fluent-constructor entry point: a malformed path is
// a programming error, so it panics rather than returning an error.
func mustPath(s string) *Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original textual form of the path.
func (p *Path) String() string {
	var sb strings.Builder
	for i := range p.segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(p.segments[i].name)
		for _, n := range p.segments[i].indexes {
			sb.WriteByte('[')
			sb.WriteString(strconv.Itoa(n))
			sb.WriteByte(']')
		}
	}
	return sb.String()
}

func (p *Path) text(dst *strings.Builder, sub *Subst) {
	for i := range p.segments {
		if i > 0 {
			dst.WriteByte('.')
		}
		dst.WriteString(sub.NameToken(p.segments[i].name))
		for _, n := range p.segments[i].indexes {
			dst.WriteByte('[')
			dst.WriteString(strconv.Itoa(n))
			dst.WriteByte(']')
		}
	}
}

func (p *Path) walk(v Visitor) {}

func (p *Path) operand() {}

// Equals returns whether n is a Path referring to the same document
// location.
func (p *Path) Equals(n Node) bool {
	o, ok := n.(*Path)
	if !ok || len(o.segments) != len(p.segments) {
		return false
	}
	for i := range p.segments {
		if p.segments[i].name != o.segments[i].name {
			return false
		}
		if len(p.segments[i].indexes) != len(o.segments[i].indexes) {
			return false
		}
		for j := range p.segments[i].indexes {
			if p.segments[i].indexes[j] != o.segments[i].indexes[j] {
				return false
			}
		}
	}
	return true
}
