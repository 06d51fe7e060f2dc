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

// Package xspec builds DynamoDB condition, key-condition, projection,
// and update expressions.
//
// Expressions are composed as an AST of typed operands, conditions,
// and update actions, usually through the fluent attribute handles
// (S, N, B, Bool, L, M, SS, NS, BS) and combined with And, Or, and Not.
// A Builder accumulates the trees for one request and compiles them
// into the expression text plus the attribute-name and attribute-value
// placeholder maps that the DynamoDB API requires:
//
//	spec, err := xspec.NewBuilder().
//		WithKeyCondition(xspec.S("id").Eq("xspec-id")).
//		WithCondition(xspec.S("state").Eq("match")).
//		AddProjections("id", "sort", "state").
//		BuildForQuery()
//
// Every attribute name in the rendered text is replaced with a "#n"
// placeholder so that reserved words never collide with the grammar,
// and every literal value with a ":n" placeholder; placeholders are
// deduplicated and numbered in first-use order. Literal values are
// converted to wire AttributeValues only when a spec is built, via a
// pluggable ValueConverter.
//
// The critical entry points for this package are the fluent handles,
// Builder, and Walk, which allows a caller to examine a composed tree.
package xspec
