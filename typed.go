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

import "fmt"

// The typed path handles below restrict which fluent operations are
// legal for an attribute's declared type. The restriction is purely a
// compile-time ergonomics layer: every handle wraps the same Path
// operand, and nothing at runtime distinguishes them. The fluent
// constructors panic on a malformed path, since a bad path literal is
// a programming error to fix, not a condition to handle.

// number is the set of Go numeric types accepted for
// number attributes.
type number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// numstr renders a numeric value as a DynamoDB number literal.
func numstr[T number](v T) string {
	return fmt.Sprintf("%v", v)
}

// pathRef is the surface shared by every typed handle.
type pathRef struct {
	p *Path
}

func ref(path string) pathRef {
	return pathRef{p: mustPath(path)}
}

// Path returns the underlying document path operand.
func (r pathRef) Path() *Path { return r.p }

// Exists returns the attribute_exists condition for this path.
func (r pathRef) Exists() *FuncCond {
	return &FuncCond{Name: "attribute_exists", Path: r.p}
}

// NotExists returns the attribute_not_exists condition for this path.
func (r pathRef) NotExists() *FuncCond {
	return &FuncCond{Name: "attribute_not_exists", Path: r.p}
}

// Remove returns a REMOVE update action for this path.
func (r pathRef) Remove() *UpdateAction {
	return &UpdateAction{op: opRemove, path: r.p}
}

func (r pathRef) ifNotExists(def Operand) *Func {
	return &Func{Name: "if_not_exists", Args: []Operand{r.p, def}}
}

// StringPath is the handle for a string (S) attribute.
type StringPath struct{ pathRef }

// S returns the typed handle for a string attribute.
// It panics if path is malformed.
func S(path string) StringPath { return StringPath{ref(path)} }

func (s StringPath) Eq(v string) *Comparison { return Compare(OpEq, s.p, lit(v)) }
func (s StringPath) Ne(v string) *Comparison { return Compare(OpNe, s.p, lit(v)) }
func (s StringPath) Lt(v string) *Comparison { return Compare(OpLt, s.p, lit(v)) }
func (s StringPath) Le(v string) *Comparison { return Compare(OpLe, s.p, lit(v)) }
func (s StringPath) Gt(v string) *Comparison { return Compare(OpGt, s.p, lit(v)) }
func (s StringPath) Ge(v string) *Comparison { return Compare(OpGe, s.p, lit(v)) }

func (s StringPath) EqAttr(that StringPath) *Comparison { return Compare(OpEq, s.p, that.p) }
func (s StringPath) NeAttr(that StringPath) *Comparison { return Compare(OpNe, s.p, that.p) }
func (s StringPath) LtAttr(that StringPath) *Comparison { return Compare(OpLt, s.p, that.p) }
func (s StringPath) LeAttr(that StringPath) *Comparison { return Compare(OpLe, s.p, that.p) }
func (s StringPath) GtAttr(that StringPath) *Comparison { return Compare(OpGt, s.p, that.p) }
func (s StringPath) GeAttr(that StringPath) *Comparison { return Compare(OpGe, s.p, that.p) }

// Between returns the condition "path BETWEEN low AND high".
func (s StringPath) Between(low, high string) *Between {
	return &Between{Val: s.p, Low: lit(low), High: lit(high)}
}

// In returns the condition "path IN (values...)".
// It panics unless 1 <= len(values) <= 100.
func (s StringPath) In(values ...string) *In {
	ops := make([]Operand, len(values))
	for i := range values {
		ops[i] = lit(values[i])
	}
	return mustIn(s.p, ops)
}

// BeginsWith returns the begins_with(path, prefix) condition.
func (s StringPath) BeginsWith(prefix string) *FuncCond {
	return &FuncCond{Name: "begins_with", Path: s.p, Arg: lit(prefix)}
}

// Contains returns the contains(path, substr) condition.
func (s StringPath) Contains(substr string) *FuncCond {
	return &FuncCond{Name: "contains", Path: s.p, Arg: lit(substr)}
}

// Set returns a SET action assigning the attribute to v.
func (s StringPath) Set(v string) *UpdateAction { return newSet(s.p, lit(v)) }

// SetAttr returns a SET action copying another string attribute.
func (s StringPath) SetAttr(that StringPath) *UpdateAction { return newSet(s.p, that.p) }

// IfNotExists returns the if_not_exists(path, def) operand.
func (s StringPath) IfNotExists(def string) *Func { return s.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (s StringPath) SetIfNotExists(def string) *UpdateAction {
	return newSet(s.p, s.IfNotExists(def))
}

// NumberPath is the handle for a number (N) attribute, parameterized
// over the Go numeric type used for its values.
type NumberPath[T number] struct{ pathRef }

// N returns the typed handle for a number attribute.
// It panics if path is malformed.
func N[T number](path string) NumberPath[T] { return NumberPath[T]{ref(path)} }

func (n NumberPath[T]) Eq(v T) *Comparison { return Compare(OpEq, n.p, lit(v)) }
func (n NumberPath[T]) Ne(v T) *Comparison { return Compare(OpNe, n.p, lit(v)) }
func (n NumberPath[T]) Lt(v T) *Comparison { return Compare(OpLt, n.p, lit(v)) }
func (n NumberPath[T]) Le(v T) *Comparison { return Compare(OpLe, n.p, lit(v)) }
func (n NumberPath[T]) Gt(v T) *Comparison { return Compare(OpGt, n.p, lit(v)) }
func (n NumberPath[T]) Ge(v T) *Comparison { return Compare(OpGe, n.p, lit(v)) }

func (n NumberPath[T]) EqAttr(that NumberPath[T]) *Comparison { return Compare(OpEq, n.p, that.p) }
func (n NumberPath[T]) NeAttr(that NumberPath[T]) *Comparison { return Compare(OpNe, n.p, that.p) }
func (n NumberPath[T]) LtAttr(that NumberPath[T]) *Comparison { return Compare(OpLt, n.p, that.p) }
func (n NumberPath[T]) LeAttr(that NumberPath[T]) *Comparison { return Compare(OpLe, n.p, that.p) }
func (n NumberPath[T]) GtAttr(that NumberPath[T]) *Comparison { return Compare(OpGt, n.p, that.p) }
func (n NumberPath[T]) GeAttr(that NumberPath[T]) *Comparison { return Compare(OpGe, n.p, that.p) }

// Between returns the condition "path BETWEEN low AND high".
func (n NumberPath[T]) Between(low, high T) *Between {
	return &Between{Val: n.p, Low: lit(low), High: lit(high)}
}

// In returns the condition "path IN (values...)".
// It panics unless 1 <= len(values) <= 100.
func (n NumberPath[T]) In(values ...T) *In {
	ops := make([]Operand, len(values))
	for i := range values {
		ops[i] = lit(values[i])
	}
	return mustIn(n.p, ops)
}

// Set returns a SET action assigning the attribute to v.
func (n NumberPath[T]) Set(v T) *UpdateAction { return newSet(n.p, lit(v)) }

// SetAttr returns a SET action copying another number attribute.
func (n NumberPath[T]) SetAttr(that NumberPath[T]) *UpdateAction { return newSet(n.p, that.p) }

// Add returns an ADD action that atomically adds v to the attribute,
// creating it when absent.
func (n NumberPath[T]) Add(v T) *UpdateAction { return newAdd(n.p, lit(v)) }

// Plus returns the arithmetic operand "path + v", for use as a SET
// action value.
func (n NumberPath[T]) Plus(v T) *Arith {
	return &Arith{Op: OpPlus, Left: n.p, Right: lit(v)}
}

// Minus returns the arithmetic operand "path - v", for use as a SET
// action value.
func (n NumberPath[T]) Minus(v T) *Arith {
	return &Arith{Op: OpMinus, Left: n.p, Right: lit(v)}
}

// SetPlus returns a SET action assigning "path = path + v".
func (n NumberPath[T]) SetPlus(v T) *UpdateAction { return newSet(n.p, n.Plus(v)) }

// SetMinus returns a SET action assigning "path = path - v".
func (n NumberPath[T]) SetMinus(v T) *UpdateAction { return newSet(n.p, n.Minus(v)) }

// IfNotExists returns the if_not_exists(path, def) operand.
func (n NumberPath[T]) IfNotExists(def T) *Func { return n.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (n NumberPath[T]) SetIfNotExists(def T) *UpdateAction {
	return newSet(n.p, n.IfNotExists(def))
}

// BinaryPath is the handle for a binary (B) attribute.
type BinaryPath struct{ pathRef }

// B returns the typed handle for a binary attribute.
// It panics if path is malformed.
func B(path string) BinaryPath { return BinaryPath{ref(path)} }

func (b BinaryPath) Eq(v []byte) *Comparison { return Compare(OpEq, b.p, lit(v)) }
func (b BinaryPath) Ne(v []byte) *Comparison { return Compare(OpNe, b.p, lit(v)) }

func (b BinaryPath) EqAttr(that BinaryPath) *Comparison { return Compare(OpEq, b.p, that.p) }
func (b BinaryPath) NeAttr(that BinaryPath) *Comparison { return Compare(OpNe, b.p, that.p) }

// In returns the condition "path IN (values...)".
// It panics unless 1 <= len(values) <= 100.
func (b BinaryPath) In(values ...[]byte) *In {
	ops := make([]Operand, len(values))
	for i := range values {
		ops[i] = lit(values[i])
	}
	return mustIn(b.p, ops)
}

// Set returns a SET action assigning the attribute to v.
func (b BinaryPath) Set(v []byte) *UpdateAction { return newSet(b.p, lit(v)) }

// IfNotExists returns the if_not_exists(path, def) operand.
func (b BinaryPath) IfNotExists(def []byte) *Func { return b.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (b BinaryPath) SetIfNotExists(def []byte) *UpdateAction {
	return newSet(b.p, b.IfNotExists(def))
}

// BoolPath is the handle for a boolean (BOOL) attribute.
type BoolPath struct{ pathRef }

// Bool returns the typed handle for a boolean attribute.
// It panics if path is malformed.
func Bool(path string) BoolPath { return BoolPath{ref(path)} }

func (b BoolPath) Eq(v bool) *Comparison { return Compare(OpEq, b.p, lit(v)) }
func (b BoolPath) Ne(v bool) *Comparison { return Compare(OpNe, b.p, lit(v)) }

// IsTrue is shorthand for Eq(true).
func (b BoolPath) IsTrue() *Comparison { return b.Eq(true) }

// IsFalse is shorthand for Eq(false).
func (b BoolPath) IsFalse() *Comparison { return b.Eq(false) }

// Set returns a SET action assigning the attribute to v.
func (b BoolPath) Set(v bool) *UpdateAction { return newSet(b.p, lit(v)) }

// IfNotExists returns the if_not_exists(path, def) operand.
func (b BoolPath) IfNotExists(def bool) *Func { return b.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (b BoolPath) SetIfNotExists(def bool) *UpdateAction {
	return newSet(b.p, b.IfNotExists(def))
}

// NullPath is the handle for a NULL attribute.
type NullPath struct{ pathRef }

// Null returns the typed handle for a NULL attribute.
// It panics if path is malformed.
func Null(path string) NullPath { return NullPath{ref(path)} }

// Set returns a SET action assigning the attribute to null.
func (n NullPath) Set() *UpdateAction { return newSet(n.p, lit(nil)) }

// ListPath is the handle for a list (L) attribute.
type ListPath struct{ pathRef }

// L returns the typed handle for a list attribute.
// It panics if path is malformed.
func L(path string) ListPath { return ListPath{ref(path)} }

// Set returns a SET action assigning the attribute to the given list.
func (l ListPath) Set(values []interface{}) *UpdateAction { return newSet(l.p, lit(values)) }

// SetAppend returns a SET action appending values to the end of the
// list: path = list_append(path, values).
func (l ListPath) SetAppend(values []interface{}) *UpdateAction {
	return newSet(l.p, ListAppend(l.p, lit(values)))
}

// SetPrepend returns a SET action inserting values at the front of
// the list: path = list_append(values, path).
func (l ListPath) SetPrepend(values []interface{}) *UpdateAction {
	return newSet(l.p, ListAppend(lit(values), l.p))
}

// IfNotExists returns the if_not_exists(path, def) operand.
func (l ListPath) IfNotExists(def []interface{}) *Func { return l.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (l ListPath) SetIfNotExists(def []interface{}) *UpdateAction {
	return newSet(l.p, l.IfNotExists(def))
}

// MapPath is the handle for a map (M) attribute.
type MapPath struct{ pathRef }

// M returns the typed handle for a map attribute.
// It panics if path is malformed.
func M(path string) MapPath { return MapPath{ref(path)} }

// Set returns a SET action assigning the attribute to the given map.
func (m MapPath) Set(value map[string]interface{}) *UpdateAction { return newSet(m.p, lit(value)) }

// IfNotExists returns the if_not_exists(path, def) operand.
func (m MapPath) IfNotExists(def map[string]interface{}) *Func { return m.ifNotExists(lit(def)) }

// SetIfNotExists returns a SET action that assigns def only when the
// attribute does not already exist.
func (m MapPath) SetIfNotExists(def map[string]interface{}) *UpdateAction {
	return newSet(m.p, m.IfNotExists(def))
}

// StringSetPath is the handle for a string-set (SS) attribute.
type StringSetPath struct{ pathRef }

// SS returns the typed handle for a string-set attribute.
// It panics if path is malformed.
func SS(path string) StringSetPath { return StringSetPath{ref(path)} }

// Eq returns the condition "path = {values...}".
func (s StringSetPath) Eq(values ...string) *Comparison {
	return Compare(OpEq, s.p, lit(StringSet(values)))
}

// Contains returns the contains(path, v) membership condition.
func (s StringSetPath) Contains(v string) *FuncCond {
	return &FuncCond{Name: "contains", Path: s.p, Arg: lit(v)}
}

// Set returns a SET action replacing the whole set.
func (s StringSetPath) Set(values ...string) *UpdateAction {
	return newSet(s.p, lit(StringSet(values)))
}

// Add returns an ADD action inserting the given elements into the set.
func (s StringSetPath) Add(values ...string) *UpdateAction {
	return newAdd(s.p, lit(StringSet(values)))
}

// Delete returns a DELETE action removing the given elements from
// the set.
func (s StringSetPath) Delete(values ...string) *UpdateAction {
	return newDelete(s.p, lit(StringSet(values)))
}

// IfNotExists returns the if_not_exists(path, def) operand.
func (s StringSetPath) IfNotExists(def ...string) *Func {
	return s.ifNotExists(lit(StringSet(def)))
}

// NumberSetPath is the handle for a number-set (NS) attribute,
// parameterized over the Go numeric type used for its elements.
type NumberSetPath[T number] struct{ pathRef }

// NS returns the typed handle for a number-set attribute.
// It panics if path is malformed.
func NS[T number](path string) NumberSetPath[T] { return NumberSetPath[T]{ref(path)} }

func numset[T number](values []T) NumberSet {
	set := make(NumberSet, len(values))
	for i := range values {
		set[i] = numstr(values[i])
	}
	return set
}

// Eq returns the condition "path = {values...}".
func (n NumberSetPath[T]) Eq(values ...T) *Comparison {
	return Compare(OpEq, n.p, lit(numset(values)))
}

// Contains returns the contains(path, v) membership condition.
func (n NumberSetPath[T]) Contains(v T) *FuncCond {
	return &FuncCond{Name: "contains", Path: n.p, Arg: lit(v)}
}

// Set returns a SET action replacing the whole set.
func (n NumberSetPath[T]) Set(values ...T) *UpdateAction {
	return newSet(n.p, lit(numset(values)))
}

// Add returns an ADD action inserting the given elements into the set.
func (n NumberSetPath[T]) Add(values ...T) *UpdateAction {
	return newAdd(n.p, lit(numset(values)))
}

// Delete returns a DELETE action removing the given elements from
// the set.
func (n NumberSetPath[T]) Delete(values ...T) *UpdateAction {
	return newDelete(n.p, lit(numset(values)))
}

// IfNotExists returns the if_not_exists(path, def) operand.
func (n NumberSetPath[T]) IfNotExists(def ...T) *Func {
	return n.ifNotExists(lit(numset(def)))
}

// BinarySetPath is the handle for a binary-set (BS) attribute.
type BinarySetPath struct{ pathRef }

// BS returns the typed handle for a binary-set attribute.
// It panics if path is malformed.
func BS(path string) BinarySetPath { return BinarySetPath{ref(path)} }

// Eq returns the condition "path = {values...}".
func (b BinarySetPath) Eq(values ...[]byte) *Comparison {
	return Compare(OpEq, b.p, lit(BinarySet(values)))
}

// Set returns a SET action replacing the whole set.
func (b BinarySetPath) Set(values ...[]byte) *UpdateAction {
	return newSet(b.p, lit(BinarySet(values)))
}

// Add returns an ADD action inserting the given elements into the set.
func (b BinarySetPath) Add(values ...[]byte) *UpdateAction {
	return newAdd(b.p, lit(BinarySet(values)))
}

// Delete returns a DELETE action removing the given elements from
// the set.
func (b BinarySetPath) Delete(values ...[]byte) *UpdateAction {
	return newDelete(b.p, lit(BinarySet(values)))
}

// IfNotExists returns the if_not_exists(path, def) operand.
func (b BinarySetPath) IfNotExists(def ...[]byte) *Func {
	return b.ifNotExists(lit(BinarySet(def)))
}

// AnyPath is the untyped escape hatch for attributes whose type is
// not known at compile time.
type AnyPath struct{ pathRef }

// Attr returns an untyped handle for an attribute.
// It panics if path is malformed.
func Attr(path string) AnyPath { return AnyPath{ref(path)} }

func (a AnyPath) Eq(v interface{}) *Comparison { return Compare(OpEq, a.p, lit(v)) }
func (a AnyPath) Ne(v interface{}) *Comparison { return Compare(OpNe, a.p, lit(v)) }

// In returns the condition "path IN (values...)".
// It panics unless 1 <= len(values) <= 100.
func (a AnyPath) In(values ...interface{}) *In {
	ops := make([]Operand, len(values))
	for i := range values {
		ops[i] = lit(values[i])
	}
	return mustIn(a.p, ops)
}

// Set returns a SET action assigning the attribute to v.
func (a AnyPath) Set(v interface{}) *UpdateAction { return newSet(a.p, lit(v)) }
