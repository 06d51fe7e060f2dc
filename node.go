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
	"strings"
)

// Node is an expression AST node.
//
// The set of node types is closed: operands (Path, Literal, Func,
// Arith), conditions (Comparison, FuncCond, Between, In, Negation,
// Logical, Parens), and UpdateAction.
type Node interface {
	// text writes the substituted rendering of this node to dst,
	// allocating placeholders in sub as needed.
	text(dst *strings.Builder, sub *Subst)

	// Equals returns whether this node is syntactically
	// equivalent to another node.
	Equals(Node) bool

	walk(Visitor)
}

// Operand is a Node usable as a value inside conditions and update
// actions: a document path, a literal, a function call, or an
// arithmetic expression.
type Operand interface {
	Node
	operand()
}

// Condition is a Node representing a boolean predicate. Conditions
// carry a rendering precedence and an atomicity flag that together
// decide parenthesization when conditions nest.
type Condition interface {
	Node

	// precedence is the binding priority of this condition;
	// higher binds tighter.
	precedence() int

	// atomic reports whether the rendering of this condition
	// never needs surrounding parentheses, regardless of the
	// precedence of the node it is nested in.
	atomic() bool
}

// Visitor is the interface for the argument to Walk.
//
// A Visitor's Visit method is invoked for each node encountered by
// Walk. If the result visitor w is not nil, Walk visits each of the
// children of node with the visitor w, followed by a call of
// w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor
// w for each of the non-nil children of node, followed by a call of
// w.Visit(nil).
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// Render renders n against the given substitution context and
// returns the substituted expression text. Rendering is purely
// recursive; its only side effect is placeholder allocation in sub.
func Render(n Node, sub *Subst) string {
	var dst strings.Builder
	n.text(&dst, sub)
	return dst.String()
}

// ToString renders n against a throwaway substitution context.
// It is meant for debugging and test output only, since the
// placeholder maps are discarded.
func ToString(n Node) string {
	if n == nil {
		return "<nil>"
	}
	var sub Subst
	return Render(n, &sub)
}

// A Literal is a constant operand: a scalar, set, list, or map value,
// or null (a nil Value). It renders as a single value placeholder;
// conversion to the wire representation happens at build time.
type Literal struct {
	Value interface{}
}

func (l *Literal) text(dst *strings.Builder, sub *Subst) {
	dst.WriteString(sub.ValueToken(l.Value))
}

func (l *Literal) walk(v Visitor) {}

func (l *Literal) operand() {}

func (l *Literal) Equals(n Node) bool {
	o, ok := n.(*Literal)
	return ok && reflect.DeepEqual(l.Value, o.Value)
}

// lit is shorthand used throughout the fluent layer.
func lit(v interface{}) *Literal {
	return &Literal{Value: v}
}

// A Func is a named function-call operand, e.g.
// list_append(a, b) or if_not_exists(path, default).
type Func struct {
	Name string
	Args []Operand
}

func (f *Func) text(dst *strings.Builder, sub *Subst) {
	dst.WriteString(f.Name)
	dst.WriteByte('(')
	for i := range f.Args {
		if i > 0 {
			dst.WriteString(", ")
		}
		f.Args[i].text(dst, sub)
	}
	dst.WriteByte(')')
}

func (f *Func) walk(v Visitor) {
	for i := range f.Args {
		Walk(v, f.Args[i])
	}
}

func (f *Func) operand() {}

func (f *Func) Equals(n Node) bool {
	o, ok := n.(*Func)
	if !ok || f.Name != o.Name || len(f.Args) != len(o.Args) {
		return false
	}
	for i := range f.Args {
		if !f.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}

// ListAppend returns the list_append(first, second) function operand,
// which evaluates to first with the elements of second appended.
func ListAppend(first, second Operand) *Func {
	return &Func{Name: "list_append", Args: []Operand{first, second}}
}

// IfNotExists returns the if_not_exists(path, value) function
// operand, which evaluates to the attribute at path if it exists and
// to value otherwise. IfNotExists panics if path is malformed.
func IfNotExists(path string, value Operand) *Func {
	return &Func{Name: "if_not_exists", Args: []Operand{mustPath(path), value}}
}

// ArithOp is one of the arithmetic operators permitted
// in a SET update action.
type ArithOp int

const (
	OpPlus ArithOp = iota // a + b
	OpMinus
)

func (o ArithOp) String() string {
	switch o {
	case OpPlus:
		return "+"
	case OpMinus:
		return "-"
	}
	return "<unknown arith op>"
}

// An Arith is an arithmetic operand, only meaningful as the value of
// a SET update action: path = operand + operand.
type Arith struct {
	Op          ArithOp
	Left, Right Operand
}

func (a *Arith) text(dst *strings.Builder, sub *Subst) {
	a.Left.text(dst, sub)
	dst.WriteByte(' ')
	dst.WriteString(a.Op.String())
	dst.WriteByte(' ')
	a.Right.text(dst, sub)
}

func (a *Arith) walk(v Visitor) {
	Walk(v, a.Left)
	Walk(v, a.Right)
}

func (a *Arith) operand() {}

func (a *Arith) Equals(n Node) bool {
	o, ok := n.(*Arith)
	return ok && a.Op == o.Op && a.Left.Equals(o.Left) && a.Right.Equals(o.Right)
}
