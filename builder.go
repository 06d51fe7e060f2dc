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
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// A Builder accumulates condition, key-condition, projection, and
// update-action trees for one request and compiles them into the
// per-request-kind spec objects.
//
// A Builder is not safe for concurrent use; the intended pattern for
// reuse across goroutines is Clone, which produces a fully
// independent copy.
type Builder struct {
	updates     map[string][]*UpdateAction
	updateOrder []string // operator keywords, first-seen order
	condition   Condition
	keyCond     Condition
	projections []*Path
	projected   map[string]struct{}
	conv        ValueConverter
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddUpdate appends an update action to the group for its operator
// keyword; the group is created on first use. At build time, groups
// are emitted in first-seen order and members in insertion order.
func (b *Builder) AddUpdate(action *UpdateAction) *Builder {
	op := action.Operator()
	if b.updates == nil {
		b.updates = make(map[string][]*UpdateAction)
	}
	if _, ok := b.updates[op]; !ok {
		b.updateOrder = append(b.updateOrder, op)
	}
	b.updates[op] = append(b.updates[op], action)
	return b
}

// WithCondition sets the condition (filter) expression tree.
// Calling it again replaces the previous condition.
func (b *Builder) WithCondition(c Condition) *Builder {
	b.condition = c
	return b
}

// WithKeyCondition sets the key-condition expression tree.
// Calling it again replaces the previous key condition.
func (b *Builder) WithKeyCondition(c Condition) *Builder {
	b.keyCond = c
	return b
}

// AddProjection adds a path to the projection set. Paths are kept in
// insertion order; re-adding an already projected path is a no-op.
// AddProjection panics if the path is malformed.
func (b *Builder) AddProjection(path string) *Builder {
	p := mustPath(path)
	key := p.String()
	if _, ok := b.projected[key]; ok {
		return b
	}
	if b.projected == nil {
		b.projected = make(map[string]struct{})
	}
	b.projected[key] = struct{}{}
	b.projections = append(b.projections, p)
	return b
}

// AddProjections adds each of the given paths to the projection set.
func (b *Builder) AddProjections(paths ...string) *Builder {
	for _, path := range paths {
		b.AddProjection(path)
	}
	return b
}

// WithConverter replaces the converter used to materialize the wire
// value map at build time. The default converter handles nil, this
// package's set types, and everything dynamodbattribute can marshal.
func (b *Builder) WithConverter(conv ValueConverter) *Builder {
	b.conv = conv
	return b
}

func (b *Builder) converter() ValueConverter {
	if b.conv != nil {
		return b.conv
	}
	return defaultConverter{}
}

// Clone returns a deep, independent snapshot of the builder: every
// accumulated collection is copied, so the clone and the original can
// diverge freely. The immutable AST nodes themselves are shared.
func (b *Builder) Clone() *Builder {
	dup := &Builder{
		condition: b.condition,
		keyCond:   b.keyCond,
		conv:      b.conv,
	}
	if b.updates != nil {
		dup.updates = make(map[string][]*UpdateAction, len(b.updates))
		for op, list := range b.updates {
			dup.updates[op] = slices.Clone(list)
		}
		dup.updateOrder = slices.Clone(b.updateOrder)
	}
	if b.projections != nil {
		dup.projections = slices.Clone(b.projections)
		dup.projected = maps.Clone(b.projected)
	}
	return dup
}

// rawExpr is one rendered sub-expression with the placeholder subsets
// it references, before value conversion.
type rawExpr struct {
	text   string
	names  map[string]string
	values map[string]interface{}
}

func (b *Builder) renderCondition(sub *Subst) *rawExpr {
	if b.condition == nil {
		return nil
	}
	return track(sub, b.condition)
}

func (b *Builder) renderKeyCondition(sub *Subst) *rawExpr {
	if b.keyCond == nil {
		return nil
	}
	return track(sub, b.keyCond)
}

// track renders one node inside its own tracking scope so the result
// carries exactly the placeholders it references.
func track(sub *Subst, n Node) *rawExpr {
	sub.BeginTracking()
	text := Render(n, sub)
	names, values := sub.EndTracking()
	return &rawExpr{text: text, names: names, values: values}
}

func (b *Builder) renderProjection(sub *Subst) *rawExpr {
	if len(b.projections) == 0 {
		return nil
	}
	sub.BeginTracking()
	var sb strings.Builder
	for i, p := range b.projections {
		if i > 0 {
			sb.WriteString(", ")
		}
		p.text(&sb, sub)
	}
	names, _ := sub.EndTracking()
	return &rawExpr{text: sb.String(), names: names}
}

func (b *Builder) renderUpdate(sub *Subst) *rawExpr {
	if len(b.updateOrder) == 0 {
		return nil
	}
	sub.BeginTracking()
	var sb strings.Builder
	for _, op := range b.updateOrder {
		for i, action := range b.updates[op] {
			if i == 0 {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(op)
				sb.WriteByte(' ')
			} else {
				sb.WriteString(", ")
			}
			action.text(&sb, sub)
		}
	}
	names, values := sub.EndTracking()
	return &rawExpr{text: sb.String(), names: names, values: values}
}

// attributesToProject returns the projected paths that name a
// top-level attribute. Flatness is judged by the absence of a "."
// separator in the path text; a bracket-indexed path with no dot,
// e.g. "list[0]", is therefore classified as flat. Compatibility
// depends on this heuristic, so it is preserved as-is.
func (b *Builder) attributesToProject() []string {
	var out []string
	for _, p := range b.projections {
		if s := p.String(); !strings.Contains(s, ".") {
			out = append(out, s)
		}
	}
	return out
}

// nestedAttributesToProject returns the dotted projected paths, each
// decomposed into its "."-separated segments.
func (b *Builder) nestedAttributesToProject() [][]string {
	var out [][]string
	for _, p := range b.projections {
		if s := p.String(); strings.Contains(s, ".") {
			out = append(out, strings.Split(s, "."))
		}
	}
	return out
}
