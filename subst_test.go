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
	"testing"
)

func TestNameTokens(t *testing.T) {
	var sub Subst
	// first-seen order, zero-based
	if got := sub.NameToken("id"); got != "#0" {
		t.Errorf("first name: got %q, want #0", got)
	}
	if got := sub.NameToken("sort"); got != "#1" {
		t.Errorf("second name: got %q, want #1", got)
	}
	// dedup: equal names reuse the existing token
	if got := sub.NameToken("id"); got != "#0" {
		t.Errorf("repeated name: got %q, want #0", got)
	}
	want := map[string]string{"#0": "id", "#1": "sort"}
	if got := sub.NameMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("name map: got %v, want %v", got, want)
	}
}

func TestValueTokens(t *testing.T) {
	var sub Subst
	if got := sub.ValueToken("match"); got != ":0" {
		t.Errorf("first value: got %q, want :0", got)
	}
	if got := sub.ValueToken(5); got != ":1" {
		t.Errorf("second value: got %q, want :1", got)
	}
	// dedup is structural, not identity
	if got := sub.ValueToken([]interface{}{"a", "b"}); got != ":2" {
		t.Errorf("list value: got %q, want :2", got)
	}
	if got := sub.ValueToken([]interface{}{"a", "b"}); got != ":2" {
		t.Errorf("equal list value: got %q, want :2", got)
	}
	if got := sub.ValueToken("match"); got != ":0" {
		t.Errorf("repeated value: got %q, want :0", got)
	}
	want := map[string]interface{}{
		":0": "match",
		":1": 5,
		":2": []interface{}{"a", "b"},
	}
	if got := sub.ValueMap(); !reflect.DeepEqual(got, want) {
		t.Errorf("value map: got %v, want %v", got, want)
	}
}

func TestEmptyMapsAreNil(t *testing.T) {
	var sub Subst
	if m := sub.NameMap(); m != nil {
		t.Errorf("empty name map should be nil, got %v", m)
	}
	if m := sub.ValueMap(); m != nil {
		t.Errorf("empty value map should be nil, got %v", m)
	}
	// allocating only names must keep the value map nil
	sub.NameToken("id")
	if m := sub.ValueMap(); m != nil {
		t.Errorf("value map should stay nil, got %v", m)
	}
	if m := sub.NameMap(); m == nil {
		t.Error("name map should not be nil after allocation")
	}
}

func TestTracking(t *testing.T) {
	var sub Subst
	sub.NameToken("before") // #0, outside any scope

	sub.BeginTracking()
	sub.NameToken("id")     // #1
	sub.ValueToken("match") // :0
	names, values := sub.EndTracking()

	wantNames := map[string]string{"#1": "id"}
	wantValues := map[string]interface{}{":0": "match"}
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("tracked names: got %v, want %v", names, wantNames)
	}
	if !reflect.DeepEqual(values, wantValues) {
		t.Errorf("tracked values: got %v, want %v", values, wantValues)
	}

	// a scope that touches an already allocated token reports it
	// without re-allocating
	sub.BeginTracking()
	if got := sub.NameToken("id"); got != "#1" {
		t.Errorf("dedup across scopes: got %q, want #1", got)
	}
	names, values = sub.EndTracking()
	if !reflect.DeepEqual(names, wantNames) {
		t.Errorf("second scope names: got %v, want %v", names, wantNames)
	}
	if values != nil {
		t.Errorf("second scope values should be nil, got %v", values)
	}

	// the global table accumulates regardless of scopes
	if n := len(sub.NameMap()); n != 2 {
		t.Errorf("global name map: got %d entries, want 2", n)
	}
}

func TestTrackingNested(t *testing.T) {
	var sub Subst
	sub.BeginTracking()
	sub.NameToken("outer") // #0

	sub.BeginTracking()
	sub.NameToken("inner") // #1
	inner, _ := sub.EndTracking()

	outer, _ := sub.EndTracking()

	if !reflect.DeepEqual(inner, map[string]string{"#1": "inner"}) {
		t.Errorf("inner scope: got %v", inner)
	}
	// the enclosing scope sees the inner scope's tokens too
	wantOuter := map[string]string{"#0": "outer", "#1": "inner"}
	if !reflect.DeepEqual(outer, wantOuter) {
		t.Errorf("outer scope: got %v, want %v", outer, wantOuter)
	}
}

func TestEndTrackingUnbalanced(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("EndTracking without BeginTracking should panic")
		}
	}()
	var sub Subst
	sub.EndTracking()
}
