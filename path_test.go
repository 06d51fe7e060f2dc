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
	"os"
	"testing"

	"gopkg.in/yaml.v3"
)

type pathCase struct {
	Path     string `yaml:"path"`
	OK       bool   `yaml:"ok"`
	Rendered string `yaml:"rendered"`
}

func loadPathCases(t *testing.T) []pathCase {
	t.Helper()
	buf, err := os.ReadFile("testdata/paths.yaml")
	if err != nil {
		t.Fatal(err)
	}
	var cases []pathCase
	if err := yaml.Unmarshal(buf, &cases); err != nil {
		t.Fatal(err)
	}
	return cases
}

func TestParsePath(t *testing.T) {
	for _, tc := range loadPathCases(t) {
		p, err := ParsePath(tc.Path)
		if !tc.OK {
			if err == nil {
				t.Errorf("ParsePath(%q): expected error, got %s", tc.Path, p)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePath(%q): %s", tc.Path, err)
			continue
		}
		if got := p.String(); got != tc.Path {
			t.Errorf("ParsePath(%q).String() = %q", tc.Path, got)
		}
		var sub Subst
		if got := Render(p, &sub); got != tc.Rendered {
			t.Errorf("render %q: got %q, want %q", tc.Path, got, tc.Rendered)
		}
	}
}

func TestPathRenderDedup(t *testing.T) {
	// two segments with the same attribute name share one token
	p := mustPath("a.a")
	var sub Subst
	if got := Render(p, &sub); got != "#0.#0" {
		t.Errorf("got %q, want #0.#0", got)
	}
}

func TestPathEquals(t *testing.T) {
	testcases := []struct {
		a, b string
		want bool
	}{
		{"a", "a", true},
		{"a", "b", false},
		{"a.b", "a.b", true},
		{"a.b", "a", false},
		{"a[0]", "a[0]", true},
		{"a[0]", "a[1]", false},
		{"a[0]", "a", false},
		{"a[0][1]", "a[0][1]", true},
	}
	for _, tc := range testcases {
		if got := mustPath(tc.a).Equals(mustPath(tc.b)); got != tc.want {
			t.Errorf("Equals(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
	// a path never equals a different node kind
	if mustPath("a").Equals(lit("a")) {
		t.Error("path should not equal a literal")
	}
}

func TestMustPathPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("malformed path in a fluent constructor should panic")
		}
	}()
	S("a..b")
}
