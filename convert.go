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

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// StringSet marshals as a DynamoDB string set (SS)
// rather than a list.
type StringSet []string

// NumberSet marshals as a DynamoDB number set (NS); each element is a
// number in DynamoDB's textual representation.
type NumberSet []string

// BinarySet marshals as a DynamoDB binary set (BS).
type BinarySet [][]byte

// A ValueConverter converts the raw literal values accumulated during
// rendering into the wire's typed AttributeValue representation. It
// is invoked only when a spec is built, never during tree
// construction or rendering.
type ValueConverter interface {
	Convert(v interface{}) (*dynamodb.AttributeValue, error)
}

// defaultConverter handles nil and this package's set types itself
// and delegates everything else to dynamodbattribute.
type defaultConverter struct{}

func (defaultConverter) Convert(v interface{}) (*dynamodb.AttributeValue, error) {
	switch v := v.(type) {
	case nil:
		return &dynamodb.AttributeValue{NULL: aws.Bool(true)}, nil
	case StringSet:
		return &dynamodb.AttributeValue{SS: aws.StringSlice(v)}, nil
	case NumberSet:
		return &dynamodb.AttributeValue{NS: aws.StringSlice(v)}, nil
	case BinarySet:
		return &dynamodb.AttributeValue{BS: v}, nil
	}
	av, err := dynamodbattribute.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("xspec: cannot convert %T to an attribute value: %w", v, err)
	}
	return av, nil
}

// convertValues maps a raw value map through conv. A nil input stays
// nil so that an absent value map is reported as absent.
func convertValues(raw map[string]interface{}, conv ValueConverter) (map[string]*dynamodb.AttributeValue, error) {
	if raw == nil {
		return nil, nil
	}
	out := make(map[string]*dynamodb.AttributeValue, len(raw))
	for tok, v := range raw {
		av, err := conv.Convert(v)
		if err != nil {
			return nil, err
		}
		out[tok] = av
	}
	return out, nil
}
