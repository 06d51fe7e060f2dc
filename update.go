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

import "strings"

// Update-expression operator keywords, used to group actions
// at assembly time.
const (
	opSet    = "SET"
	opAdd    = "ADD"
	opDelete = "DELETE"
	opRemove = "REMOVE"
)

// An UpdateAction is one SET/ADD/DELETE/REMOVE mutation of a single
// attribute path within an update expression. The value operand is
// nil for REMOVE actions.
type UpdateAction struct {
	op    string
	path  *Path
	value Operand
}

// Remove returns a REMOVE action deleting the attribute at path.
// It panics if path is malformed.
func Remove(path string) *UpdateAction {
	return &UpdateAction{op: opRemove, path: mustPath(path)}
}

func newSet(p *Path, value Operand) *UpdateAction {
	return &UpdateAction{op: opSet, path: p, value: value}
}

func newAdd(p *Path, value Operand) *UpdateAction {
	return &UpdateAction{op: opAdd, path: p, value: value}
}

func newDelete(p *Path, value Operand) *UpdateAction {
	return &UpdateAction{op: opDelete, path: p, value: value}
}

// Operator returns the action's operator keyword:
// "SET", "ADD", "DELETE", or "REMOVE".
func (a *UpdateAction) Operator() string { return a.op }

// Path returns the attribute path the action applies to.
func (a *UpdateAction) Path() *Path { return a.path }

func (a *UpdateAction) text(dst *strings.Builder, sub *Subst) {
	a.path.text(dst, sub)
	switch a.op {
	case opSet:
		dst.WriteString(" = ")
		a.value.text(dst, sub)
	case opAdd, opDelete:
		dst.WriteByte(' ')
		a.value.text(dst, sub)
	case opRemove:
		// path only
	}
}

func (a *UpdateAction) walk(v Visitor) {
	Walk(v, a.path)
	if a.value != nil {
		Walk(v, a.value)
	}
}

func (a *UpdateAction) Equals(n Node) bool {
	o, ok := n.(*UpdateAction)
	if !ok || a.op != o.op || !a.path.Equals(o.path) {
		return false
	}
	if a.value == nil {
		return o.value == nil
	}
	return o.value != nil && a.value.Equals(o.value)
}
