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
	"reflect"
	"strconv"
)

// Subst is the substitution context for one request: it allocates the
// "#n" attribute-name placeholders and ":n" attribute-value placeholders
// referenced by rendered expression text.
//
// Placeholders are numbered from zero in first-use order and are never
// renumbered. Requesting a token for a name (or a structurally equal
// value) that was already seen returns the existing token, so one
// context deduplicates placeholders across all the sub-expressions of
// a request that share it.
//
// The zero value is ready to use.
type Subst struct {
	names     map[string]int
	nameOrder []string
	values    []interface{}
	scopes    []*accessSet
}

// accessSet records the tokens touched while one tracking scope is open.
type accessSet struct {
	names  map[int]struct{}
	values map[int]struct{}
}

// NameToken returns the placeholder token for the given attribute name,
// allocating a new one if the name has not been seen before.
func (s *Subst) NameToken(name string) string {
	tok, ok := s.names[name]
	if !ok {
		if s.names == nil {
			s.names = make(map[string]int)
		}
		tok = len(s.nameOrder)
		s.names[name] = tok
		s.nameOrder = append(s.nameOrder, name)
	}
	for _, sc := range s.scopes {
		if sc.names == nil {
			sc.names = make(map[int]struct{})
		}
		sc.names[tok] = struct{}{}
	}
	return "#" + strconv.Itoa(tok)
}

// ValueToken returns the placeholder token for the given literal value,
// allocating a new one if no structurally equal value has been seen
// before. Equality is structural, not identity: two equal literals
// collapse to one placeholder.
func (s *Subst) ValueToken(v interface{}) string {
	tok := -1
	for i := range s.values {
		if reflect.DeepEqual(s.values[i], v) {
			tok = i
			break
		}
	}
	if tok < 0 {
		tok = len(s.values)
		s.values = append(s.values, v)
	}
	for _, sc := range s.scopes {
		if sc.values == nil {
			sc.values = make(map[int]struct{})
		}
		sc.values[tok] = struct{}{}
	}
	return ":" + strconv.Itoa(tok)
}

// NameMap returns the token-to-name mapping for every name placeholder
// allocated so far, or nil if none were allocated. Callers rely on the
// nil result to distinguish "no expression attribute names" from an
// empty map.
func (s *Subst) NameMap() map[string]string {
	if len(s.nameOrder) == 0 {
		return nil
	}
	out := make(map[string]string, len(s.nameOrder))
	for i, name := range s.nameOrder {
		out["#"+strconv.Itoa(i)] = name
	}
	return out
}

// ValueMap returns the token-to-value mapping for every value
// placeholder allocated so far, or nil if none were allocated.
func (s *Subst) ValueMap() map[string]interface{} {
	if len(s.values) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(s.values))
	for i, v := range s.values {
		out[":"+strconv.Itoa(i)] = v
	}
	return out
}

// BeginTracking opens a tracking scope: tokens requested between this
// call and the matching EndTracking are recorded so that a caller
// rendering several sub-expressions against one shared context can
// recover the subset of placeholders each sub-expression references.
// Scopes nest; an inner scope's tokens are also visible to the scopes
// enclosing it.
func (s *Subst) BeginTracking() {
	s.scopes = append(s.scopes, &accessSet{})
}

// EndTracking closes the innermost tracking scope and returns the
// name and value mappings for exactly the tokens touched while it was
// open. Either map is nil when no token of that kind was touched.
// EndTracking panics if no scope is open.
func (s *Subst) EndTracking() (names map[string]string, values map[string]interface{}) {
	if len(s.scopes) == 0 {
		panic("xspec: EndTracking without matching BeginTracking")
	}
	sc := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	if len(sc.names) > 0 {
		names = make(map[string]string, len(sc.names))
		for tok := range sc.names {
			names["#"+strconv.Itoa(tok)] = s.nameOrder[tok]
		}
	}
	if len(sc.values) > 0 {
		values = make(map[string]interface{}, len(sc.values))
		for tok := range sc.values {
			values[":"+strconv.Itoa(tok)] = s.values[tok]
		}
	}
	return names, values
}
