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
	"testing"
)

func TestRender(t *testing.T) {
	testcases := []struct {
		in   Node
		want string
	}{
		{
			S("a").Eq("x"),
			"#0 = :0",
		},
		{
			S("a").Ne("x"),
			"#0 <> :0",
		},
		{
			N[int]("n").Lt(3),
			"#0 < :0",
		},
		{
			N[int]("n").Le(3),
			"#0 <= :0",
		},
		{
			N[int]("n").Gt(3),
			"#0 > :0",
		},
		{
			N[int]("n").Ge(3),
			"#0 >= :0",
		},
		{
			S("a").EqAttr(S("b")),
			"#0 = #1",
		},
		{
			N[int]("n").Between(1, 5),
			"#0 BETWEEN :0 AND :1",
		},
		{
			// equal bounds collapse to one placeholder
			N[int]("n").Between(3, 3),
			"#0 BETWEEN :0 AND :0",
		},
		{
			S("a").In("x", "y"),
			"#0 IN (:0, :1)",
		},
		{
			S("a").BeginsWith("pre"),
			"begins_with(#0, :0)",
		},
		{
			S("a").Contains("sub"),
			"contains(#0, :0)",
		},
		{
			AttributeExists("a"),
			"attribute_exists(#0)",
		},
		{
			AttributeNotExists("a.b"),
			"attribute_not_exists(#0.#1)",
		},
		{
			Not(S("a").Eq("x")),
			"NOT #0 = :0",
		},
		{
			// NOT must wrap a looser-binding child
			Not(And(S("a").Eq("x"), S("b").Eq("y"))),
			"NOT (#0 = :0 AND #1 = :1)",
		},
		{
			Not(Not(S("a").Eq("x"))),
			"NOT NOT #0 = :0",
		},
		{
			And(S("a").Eq("x"), S("b").Eq("y")),
			"#0 = :0 AND #1 = :1",
		},
		{
			// AND binds tighter than OR: no parens
			Or(And(S("a").Eq("x"), S("b").Eq("y")), S("c").Eq("z")),
			"#0 = :0 AND #1 = :1 OR #2 = :2",
		},
		{
			// OR under AND must be wrapped
			And(Or(S("a").Eq("x"), S("b").Eq("y")), S("c").Eq("z")),
			"(#0 = :0 OR #1 = :1) AND #2 = :2",
		},
		{
			And(S("a").Eq("x"), Or(S("b").Eq("y"), S("c").Eq("z"))),
			"#0 = :0 AND (#1 = :1 OR #2 = :2)",
		},
		{
			And(S("a").Eq("x"), Not(S("b").Eq("y"))),
			"#0 = :0 AND NOT #1 = :1",
		},
		{
			Parenthesize(S("a").Eq("x")),
			"(#0 = :0)",
		},
		{
			// explicit parens are atomic: no double wrapping
			And(Parenthesize(Or(S("a").Eq("x"), S("b").Eq("y"))), S("c").Eq("z")),
			"(#0 = :0 OR #1 = :1) AND #2 = :2",
		},
		{
			// equal values collapse to one placeholder
			And(S("a").Eq("x"), S("b").Eq("x")),
			"#0 = :0 AND #1 = :0",
		},
		{
			Bool("flag").IsTrue(),
			"#0 = :0",
		},
		{
			SS("tags").Contains("blue"),
			"contains(#0, :0)",
		},
		{
			SS("tags").Eq("a", "b"),
			"#0 = :0",
		},
		{
			Attr("a").In("x", 3),
			"#0 IN (:0, :1)",
		},
		// update actions
		{
			S("s").Set("v"),
			"#0 = :0",
		},
		{
			S("s").SetAttr(S("t")),
			"#0 = #1",
		},
		{
			S("s").SetIfNotExists("d"),
			"#0 = if_not_exists(#0, :0)",
		},
		{
			N[int]("n").SetPlus(1),
			"#0 = #0 + :0",
		},
		{
			N[int]("n").SetMinus(1),
			"#0 = #0 - :0",
		},
		{
			N[int]("n").Add(5),
			"#0 :0",
		},
		{
			SS("tags").Add("a", "b"),
			"#0 :0",
		},
		{
			SS("tags").Delete("a"),
			"#0 :0",
		},
		{
			Remove("a.b"),
			"#0.#1",
		},
		{
			Null("gone").Set(),
			"#0 = :0",
		},
		{
			L("list").SetAppend([]interface{}{1, 2}),
			"#0 = list_append(#0, :0)",
		},
		{
			L("list").SetPrepend([]interface{}{1, 2}),
			"#0 = list_append(:0, #0)",
		},
		{
			M("m").SetIfNotExists(map[string]interface{}{"k": "v"}),
			"#0 = if_not_exists(#0, :0)",
		},
	}
	for i, tc := range testcases {
		if got := ToString(tc.in); got != tc.want {
			t.Errorf("testcase %d: got %q, want %q", i, got, tc.want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	cond := And(
		Or(S("a").Eq("x"), N[int]("n").Between(1, 5)),
		Not(AttributeExists("a.b")),
	)
	first := ToString(cond)
	for i := 0; i < 3; i++ {
		if got := ToString(cond); got != first {
			t.Errorf("render %d: got %q, want %q", i, got, first)
		}
	}
}

func TestInBounds(t *testing.T) {
	expectPanic := func(name string, fn func()) {
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	many := make([]string, 100)
	for i := range many {
		many[i] = fmt.Sprintf("v%d", i)
	}
	// 1 and 100 operands are fine
	if got := len(S("a").In("x").List); got != 1 {
		t.Errorf("singleton IN: got %d operands", got)
	}
	if got := len(S("a").In(many...).List); got != 100 {
		t.Errorf("full IN: got %d operands", got)
	}
	// 0 and 101 are construction-time failures
	expectPanic("empty IN", func() { S("a").In() })
	expectPanic("oversized IN", func() { S("a").In(append(many, "v100")...) })

	if _, err := NewIn(mustPath("a"), nil); err == nil {
		t.Error("NewIn with no operands should fail")
	}
}

func TestConditionEquals(t *testing.T) {
	testcases := []struct {
		a, b Node
		want bool
	}{
		{S("a").Eq("x"), S("a").Eq("x"), true},
		{S("a").Eq("x"), S("a").Eq("y"), false},
		{S("a").Eq("x"), S("a").Ne("x"), false},
		{S("a").Eq("x"), S("b").Eq("x"), false},
		{AttributeExists("a"), AttributeExists("a"), true},
		{AttributeExists("a"), AttributeNotExists("a"), false},
		{S("a").In("x", "y"), S("a").In("x", "y"), true},
		{S("a").In("x", "y"), S("a").In("y", "x"), false},
		{Not(S("a").Eq("x")), Not(S("a").Eq("x")), true},
		{
			And(S("a").Eq("x"), S("b").Eq("y")),
			And(S("a").Eq("x"), S("b").Eq("y")),
			true,
		},
		{
			And(S("a").Eq("x"), S("b").Eq("y")),
			Or(S("a").Eq("x"), S("b").Eq("y")),
			false,
		},
		{N[int]("n").Between(1, 5), N[int]("n").Between(1, 5), true},
		{N[int]("n").SetPlus(1), N[int]("n").SetPlus(1), true},
		{N[int]("n").SetPlus(1), N[int]("n").SetMinus(1), false},
		{Remove("a"), Remove("a"), true},
		{Remove("a"), S("a").Set("x"), false},
	}
	for i, tc := range testcases {
		if got := tc.a.Equals(tc.b); got != tc.want {
			t.Errorf("testcase %d: Equals = %v, want %v", i, got, tc.want)
		}
	}
}

// countVisitor counts visited nodes.
type countVisitor int

func (c *countVisitor) Visit(n Node) Visitor {
	if n != nil {
		*c++
	}
	return c
}

func TestWalk(t *testing.T) {
	// AND(cmp(path, lit), NOT(exists(path))) visits
	// 1 logical + 1 comparison + 1 path + 1 literal +
	// 1 negation + 1 funccond + 1 path = 7 nodes
	cond := And(S("a").Eq("x"), Not(AttributeExists("b")))
	var count countVisitor
	Walk(&count, cond)
	if count != 7 {
		t.Errorf("visited %d nodes, want 7", count)
	}
}
