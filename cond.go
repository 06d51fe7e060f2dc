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
	"strings"
)

// Precedence ranks, loosest to tightest. The exact values are an
// implementation detail; only the strict ordering matters.
const (
	precOr = iota + 1
	precAnd
	precNot
	precBetween
	precIn
	precFunction
	precComparator
	precParens
)

// maxInOperands is the operand-list limit DynamoDB imposes
// on IN conditions.
const maxInOperands = 100

// writeChild renders c into dst, wrapping it in parentheses when its
// binding is strictly looser than the parent operator's. Atomic
// conditions are never wrapped.
func writeChild(dst *strings.Builder, sub *Subst, parent int, c Condition) {
	if !c.atomic() && c.precedence() < parent {
		dst.WriteByte('(')
		c.text(dst, sub)
		dst.WriteByte(')')
		return
	}
	c.text(dst, sub)
}

// CmpOp is one of the comparator symbols permitted in condition and
// key-condition expressions.
type CmpOp int

const (
	OpEq CmpOp = iota // =
	OpNe              // <>
	OpLt              // <
	OpLe              // <=
	OpGt              // >
	OpGe              // >=
)

func (o CmpOp) String() string {
	switch o {
	case OpEq:
		return "="
	case OpNe:
		return "<>"
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	}
	return "<unknown comparator>"
}

// A Comparison is the condition "lhs SYMBOL rhs".
type Comparison struct {
	Op          CmpOp
	Left, Right Operand
}

// Compare constructs a comparison condition.
func Compare(op CmpOp, left, right Operand) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func (c *Comparison) text(dst *strings.Builder, sub *Subst) {
	c.Left.text(dst, sub)
	dst.WriteByte(' ')
	dst.WriteString(c.Op.String())
	dst.WriteByte(' ')
	c.Right.text(dst, sub)
}

func (c *Comparison) walk(v Visitor) {
	Walk(v, c.Left)
	Walk(v, c.Right)
}

func (c *Comparison) precedence() int { return precComparator }
func (c *Comparison) atomic() bool    { return true }

func (c *Comparison) Equals(n Node) bool {
	o, ok := n.(*Comparison)
	return ok && c.Op == o.Op && c.Left.Equals(o.Left) && c.Right.Equals(o.Right)
}

// A FuncCond is a function-call condition over a document path:
// attribute_exists, attribute_not_exists, begins_with, or contains.
// Arg is nil for the single-argument forms.
type FuncCond struct {
	Name string
	Path *Path
	Arg  Operand
}

// AttributeExists returns the attribute_exists(path) condition.
// It panics if path is malformed.
func AttributeExists(path string) *FuncCond {
	return &FuncCond{Name: "attribute_exists", Path: mustPath(path)}
}

// AttributeNotExists returns the attribute_not_exists(path)
// condition. It panics if path is malformed.
func AttributeNotExists(path string) *FuncCond {
	return &FuncCond{Name: "attribute_not_exists", Path: mustPath(path)}
}

func (f *FuncCond) text(dst *strings.Builder, sub *Subst) {
	dst.WriteString(f.Name)
	dst.WriteByte('(')
	f.Path.text(dst, sub)
	if f.Arg != nil {
		dst.WriteString(", ")
		f.Arg.text(dst, sub)
	}
	dst.WriteByte(')')
}

func (f *FuncCond) walk(v Visitor) {
	Walk(v, f.Path)
	if f.Arg != nil {
		Walk(v, f.Arg)
	}
}

func (f *FuncCond) precedence() int { return precFunction }
func (f *FuncCond) atomic() bool    { return true }

func (f *FuncCond) Equals(n Node) bool {
	o, ok := n.(*FuncCond)
	if !ok || f.Name != o.Name || !f.Path.Equals(o.Path) {
		return false
	}
	if f.Arg == nil {
		return o.Arg == nil
	}
	return o.Arg != nil && f.Arg.Equals(o.Arg)
}

// A Between is the condition "val BETWEEN low AND high".
type Between struct {
	Val, Low, High Operand
}

func (b *Between) text(dst *strings.Builder, sub *Subst) {
	b.Val.text(dst, sub)
	dst.WriteString(" BETWEEN ")
	b.Low.text(dst, sub)
	dst.WriteString(" AND ")
	b.High.text(dst, sub)
}

func (b *Between) walk(v Visitor) {
	Walk(v, b.Val)
	Walk(v, b.Low)
	Walk(v, b.High)
}

func (b *Between) precedence() int { return precBetween }
func (b *Between) atomic() bool    { return true }

func (b *Between) Equals(n Node) bool {
	o, ok := n.(*Between)
	return ok && b.Val.Equals(o.Val) && b.Low.Equals(o.Low) && b.High.Equals(o.High)
}

// An In is the condition "val IN (op1, op2, ...)".
// The operand list must have between 1 and 100 entries.
type In struct {
	Val  Operand
	List []Operand
}

// NewIn constructs an IN condition, rejecting an out-of-range
// operand-list length.
func NewIn(val Operand, list []Operand) (*In, error) {
	if len(list) == 0 {
		return nil, fmt.Errorf("xspec: IN condition requires at least one operand")
	}
	if len(list) > maxInOperands {
		return nil, fmt.Errorf("xspec: IN condition limited to %d operands, got %d", maxInOperands, len(list))
	}
	return &In{Val: val, List: list}, nil
}

// mustIn is the fluent-constructor entry point: an out-of-range
// operand list is a programming error, so it panics.
func mustIn(val Operand, list []Operand) *In {
	in, err := NewIn(val, list)
	if err != nil {
		panic(err)
	}
	return in
}

func (i *In) text(dst *strings.Builder, sub *Subst) {
	i.Val.text(dst, sub)
	dst.WriteString(" IN (")
	for j := range i.List {
		if j > 0 {
			dst.WriteString(", ")
		}
		i.List[j].text(dst, sub)
	}
	dst.WriteByte(')')
}

func (i *In) walk(v Visitor) {
	Walk(v, i.Val)
	for j := range i.List {
		Walk(v, i.List[j])
	}
}

func (i *In) precedence() int { return precIn }
func (i *In) atomic() bool    { return true }

func (i *In) Equals(n Node) bool {
	o, ok := n.(*In)
	if !ok || !i.Val.Equals(o.Val) || len(i.List) != len(o.List) {
		return false
	}
	for j := range i.List {
		if !i.List[j].Equals(o.List[j]) {
			return false
		}
	}
	return true
}

// A Negation is the condition "NOT cond".
type Negation struct {
	Cond Condition
}

// Not negates a condition.
func Not(c Condition) *Negation {
	return &Negation{Cond: c}
}

func (n *Negation) text(dst *strings.Builder, sub *Subst) {
	dst.WriteString("NOT ")
	writeChild(dst, sub, precNot, n.Cond)
}

func (n *Negation) walk(v Visitor) { Walk(v, n.Cond) }

func (n *Negation) precedence() int { return precNot }
func (n *Negation) atomic() bool    { return true }

func (n *Negation) Equals(x Node) bool {
	o, ok := x.(*Negation)
	return ok && n.Cond.Equals(o.Cond)
}

// LogicalOp is one of the binary logical operators.
type LogicalOp int

const (
	OpAnd LogicalOp = iota // A AND B
	OpOr                   // A OR B
)

func (o LogicalOp) String() string {
	switch o {
	case OpAnd:
		return "AND"
	case OpOr:
		return "OR"
	}
	return "<unknown logical op>"
}

// A Logical is the condition "lhs AND rhs" or "lhs OR rhs". Each side
// is parenthesized at rendering time exactly when its binding is
// looser than the operator's; AND binds tighter than OR.
type Logical struct {
	Op          LogicalOp
	Left, Right Condition
}

// And conjoins conditions, folding left: And(a, b, c) is (a AND b) AND c.
func And(first Condition, rest ...Condition) Condition {
	cond := first
	for _, c := range rest {
		cond = &Logical{Op: OpAnd, Left: cond, Right: c}
	}
	return cond
}

// Or disjoins conditions, folding left: Or(a, b, c) is (a OR b) OR c.
func Or(first Condition, rest ...Condition) Condition {
	cond := first
	for _, c := range rest {
		cond = &Logical{Op: OpOr, Left: cond, Right: c}
	}
	return cond
}

func (l *Logical) text(dst *strings.Builder, sub *Subst) {
	writeChild(dst, sub, l.precedence(), l.Left)
	dst.WriteByte(' ')
	dst.WriteString(l.Op.String())
	dst.WriteByte(' ')
	writeChild(dst, sub, l.precedence(), l.Right)
}

func (l *Logical) walk(v Visitor) {
	Walk(v, l.Left)
	Walk(v, l.Right)
}

func (l *Logical) precedence() int {
	if l.Op == OpAnd {
		return precAnd
	}
	return precOr
}

func (l *Logical) atomic() bool { return false }

func (l *Logical) Equals(n Node) bool {
	o, ok := n.(*Logical)
	return ok && l.Op == o.Op && l.Left.Equals(o.Left) && l.Right.Equals(o.Right)
}

// A Parens condition always renders as "(cond)", regardless of the
// default precedence rules: an explicit override for callers who want
// deterministic grouping.
type Parens struct {
	Cond Condition
}

// Parenthesize wraps a condition in explicit parentheses.
func Parenthesize(c Condition) *Parens {
	if p, ok := c.(*Parens); ok {
		return p
	}
	return &Parens{Cond: c}
}

func (p *Parens) text(dst *strings.Builder, sub *Subst) {
	dst.WriteByte('(')
	p.Cond.text(dst, sub)
	dst.WriteByte(')')
}

func (p *Parens) walk(v Visitor) { Walk(v, p.Cond) }

func (p *Parens) precedence() int { return precParens }
func (p *Parens) atomic() bool    { return true }

func (p *Parens) Equals(n Node) bool {
	o, ok := n.(*Parens)
	return ok && p.Cond.Equals(o.Cond)
}
