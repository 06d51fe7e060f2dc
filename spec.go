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
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

// An Expression is one rendered sub-expression paired with exactly
// the placeholder mappings its text references. Names or Values is
// nil when the text references no placeholder of that kind.
type Expression struct {
	Text   string
	Names  map[string]string
	Values map[string]*dynamodb.AttributeValue
}

// toExpression converts one rendered sub-expression into its
// wire-facing form. A nil input stays nil: an absent expression part
// is reported as absent, never as an empty Expression.
func (b *Builder) toExpression(r *rawExpr) (*Expression, error) {
	if r == nil {
		return nil, nil
	}
	values, err := convertValues(r.values, b.converter())
	if err != nil {
		return nil, err
	}
	return &Expression{Text: r.text, Names: r.names, Values: values}, nil
}

// A GetSpec is the compiled expression bundle for a GetItem request:
// a projection expression and the attribute-name map it references.
type GetSpec struct {
	Projection *Expression
	Names      map[string]string
}

// BuildForGet compiles the builder's state for a GetItem request.
// Only the projection paths participate; a builder with no
// projections yields a spec with a nil Projection.
func (b *Builder) BuildForGet() *GetSpec {
	var sub Subst
	proj := b.renderProjection(&sub)
	spec := &GetSpec{Names: sub.NameMap()}
	if proj != nil {
		spec.Projection = &Expression{Text: proj.text, Names: proj.names}
	}
	return spec
}

// A PutSpec is the compiled expression bundle for a PutItem request.
type PutSpec struct {
	Condition *Expression
	Names     map[string]string
	Values    map[string]*dynamodb.AttributeValue
}

// BuildForPut compiles the builder's state for a PutItem request.
// Only the condition expression participates.
func (b *Builder) BuildForPut() (*PutSpec, error) {
	var sub Subst
	cond, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	values, err := convertValues(sub.ValueMap(), b.converter())
	if err != nil {
		return nil, err
	}
	return &PutSpec{Condition: cond, Names: sub.NameMap(), Values: values}, nil
}

// A DeleteSpec is the compiled expression bundle for a DeleteItem
// request.
type DeleteSpec struct {
	Condition *Expression
	Names     map[string]string
	Values    map[string]*dynamodb.AttributeValue
}

// BuildForDelete compiles the builder's state for a DeleteItem
// request. Only the condition expression participates.
func (b *Builder) BuildForDelete() (*DeleteSpec, error) {
	var sub Subst
	cond, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	values, err := convertValues(sub.ValueMap(), b.converter())
	if err != nil {
		return nil, err
	}
	return &DeleteSpec{Condition: cond, Names: sub.NameMap(), Values: values}, nil
}

// An UpdateSpec is the compiled expression bundle for an UpdateItem
// request: the update expression, the optional condition expression,
// and the name/value maps shared between them.
type UpdateSpec struct {
	Update    *Expression
	Condition *Expression
	Names     map[string]string
	Values    map[string]*dynamodb.AttributeValue
}

// BuildForUpdate compiles the builder's state for an UpdateItem
// request. The update and condition expressions share one
// substitution context, so placeholders referenced by both are
// allocated once.
func (b *Builder) BuildForUpdate() (*UpdateSpec, error) {
	var sub Subst
	update, err := b.toExpression(b.renderUpdate(&sub))
	if err != nil {
		return nil, err
	}
	cond, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	values, err := convertValues(sub.ValueMap(), b.converter())
	if err != nil {
		return nil, err
	}
	return &UpdateSpec{
		Update:    update,
		Condition: cond,
		Names:     sub.NameMap(),
		Values:    values,
	}, nil
}

// A QuerySpec is the compiled expression bundle for a Query request.
// KeyCondition, Filter, and Projection each carry the placeholder
// subsets their own text references; Names and Values are the global
// maps for the whole request.
type QuerySpec struct {
	KeyCondition *Expression
	Filter       *Expression
	Projection   *Expression

	// AttributesToProject lists the projected paths that name a
	// top-level attribute; NestedAttributesToProject decomposes the
	// dotted paths into their segments.
	AttributesToProject       []string
	NestedAttributesToProject [][]string

	Names  map[string]string
	Values map[string]*dynamodb.AttributeValue
}

// BuildForQuery compiles the builder's state for a Query request.
// The key-condition, filter, and projection expressions are rendered
// in that order against one shared substitution context: placeholders
// are deduplicated across the whole request, while each returned
// Expression still reports exactly the subset it references.
func (b *Builder) BuildForQuery() (*QuerySpec, error) {
	var sub Subst
	key, err := b.toExpression(b.renderKeyCondition(&sub))
	if err != nil {
		return nil, err
	}
	filter, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	proj, err := b.toExpression(b.renderProjection(&sub))
	if err != nil {
		return nil, err
	}
	values, err := convertValues(sub.ValueMap(), b.converter())
	if err != nil {
		return nil, err
	}
	return &QuerySpec{
		KeyCondition:              key,
		Filter:                    filter,
		Projection:                proj,
		AttributesToProject:       b.attributesToProject(),
		NestedAttributesToProject: b.nestedAttributesToProject(),
		Names:                     sub.NameMap(),
		Values:                    values,
	}, nil
}

// A ScanSpec is the compiled expression bundle for a Scan request.
type ScanSpec struct {
	Filter     *Expression
	Projection *Expression
	Names      map[string]string
	Values     map[string]*dynamodb.AttributeValue
}

// BuildForScan compiles the builder's state for a Scan request. The
// filter and projection expressions share one substitution context.
func (b *Builder) BuildForScan() (*ScanSpec, error) {
	var sub Subst
	filter, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	proj, err := b.toExpression(b.renderProjection(&sub))
	if err != nil {
		return nil, err
	}
	values, err := convertValues(sub.ValueMap(), b.converter())
	if err != nil {
		return nil, err
	}
	return &ScanSpec{
		Filter:     filter,
		Projection: proj,
		Names:      sub.NameMap(),
		Values:     values,
	}, nil
}

// An UpdateEnhancedSpec is the conditions-only variant for callers
// whose client assembles the update expression itself: it carries
// only the condition expression with its own placeholder maps.
type UpdateEnhancedSpec struct {
	Condition *Expression
}

// BuildForUpdateEnhanced compiles only the condition expression,
// against a fresh substitution context.
func (b *Builder) BuildForUpdateEnhanced() (*UpdateEnhancedSpec, error) {
	var sub Subst
	cond, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	return &UpdateEnhancedSpec{Condition: cond}, nil
}

// A ScanEnhancedSpec is the variant for callers whose client derives
// the projection expression from attribute lists instead of rendered
// text: the filter expression plus the flat/nested projection split.
type ScanEnhancedSpec struct {
	Filter                    *Expression
	AttributesToProject       []string
	NestedAttributesToProject [][]string
}

// BuildForScanEnhanced compiles the filter expression against a fresh
// substitution context and splits the projection paths into flat and
// nested lists.
func (b *Builder) BuildForScanEnhanced() (*ScanEnhancedSpec, error) {
	var sub Subst
	filter, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	return &ScanEnhancedSpec{
		Filter:                    filter,
		AttributesToProject:       b.attributesToProject(),
		NestedAttributesToProject: b.nestedAttributesToProject(),
	}, nil
}

// A QueryEnhancedSpec is the Query analog of ScanEnhancedSpec.
type QueryEnhancedSpec struct {
	KeyCondition              *Expression
	Filter                    *Expression
	AttributesToProject       []string
	NestedAttributesToProject [][]string
}

// BuildForQueryEnhanced compiles the key-condition and filter
// expressions against one shared substitution context and splits the
// projection paths into flat and nested lists.
func (b *Builder) BuildForQueryEnhanced() (*QueryEnhancedSpec, error) {
	var sub Subst
	key, err := b.toExpression(b.renderKeyCondition(&sub))
	if err != nil {
		return nil, err
	}
	filter, err := b.toExpression(b.renderCondition(&sub))
	if err != nil {
		return nil, err
	}
	return &QueryEnhancedSpec{
		KeyCondition:              key,
		Filter:                    filter,
		AttributesToProject:       b.attributesToProject(),
		NestedAttributesToProject: b.nestedAttributesToProject(),
	}, nil
}
