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
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
)

func TestDefaultConverter(t *testing.T) {
	conv := defaultConverter{}

	check := func(name string, in interface{}, want func(*dynamodb.AttributeValue) bool) {
		t.Helper()
		av, err := conv.Convert(in)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			return
		}
		if !want(av) {
			t.Errorf("%s: got %v", name, av)
		}
	}

	check("string", "hi", func(av *dynamodb.AttributeValue) bool {
		return aws.StringValue(av.S) == "hi"
	})
	check("int", 42, func(av *dynamodb.AttributeValue) bool {
		return aws.StringValue(av.N) == "42"
	})
	check("float", 1.5, func(av *dynamodb.AttributeValue) bool {
		return aws.StringValue(av.N) == "1.5"
	})
	check("bool", true, func(av *dynamodb.AttributeValue) bool {
		return aws.BoolValue(av.BOOL)
	})
	check("bytes", []byte{1, 2}, func(av *dynamodb.AttributeValue) bool {
		return len(av.B) == 2
	})
	check("nil", nil, func(av *dynamodb.AttributeValue) bool {
		return aws.BoolValue(av.NULL)
	})
	check("list", []interface{}{"a", 1}, func(av *dynamodb.AttributeValue) bool {
		return len(av.L) == 2
	})
	check("map", map[string]interface{}{"k": "v"}, func(av *dynamodb.AttributeValue) bool {
		return len(av.M) == 1
	})

	// the named set types force set encodings, where a plain slice
	// would marshal as a list
	check("string set", StringSet{"a", "b"}, func(av *dynamodb.AttributeValue) bool {
		return len(av.SS) == 2 && aws.StringValue(av.SS[0]) == "a"
	})
	check("number set", NumberSet{"1", "2"}, func(av *dynamodb.AttributeValue) bool {
		return len(av.NS) == 2 && aws.StringValue(av.NS[1]) == "2"
	})
	check("binary set", BinarySet{{1}, {2}}, func(av *dynamodb.AttributeValue) bool {
		return len(av.BS) == 2
	})
}

func TestConverterError(t *testing.T) {
	_, err := defaultConverter{}.Convert(make(chan int))
	if err == nil {
		t.Fatal("expected an error for an unmarshalable value")
	}
	if !strings.Contains(err.Error(), "chan int") {
		t.Errorf("error should name the offending type: %v", err)
	}
}

func TestConvertValuesNil(t *testing.T) {
	out, err := convertValues(nil, defaultConverter{})
	if err != nil {
		t.Fatal(err)
	}
	if out != nil {
		t.Errorf("got %v, want nil", out)
	}
}

// upperConverter uppercases string values, to show the converter
// is pluggable.
type upperConverter struct{}

func (upperConverter) Convert(v interface{}) (*dynamodb.AttributeValue, error) {
	if s, ok := v.(string); ok {
		v = strings.ToUpper(s)
	}
	return defaultConverter{}.Convert(v)
}

func TestWithConverter(t *testing.T) {
	spec, err := NewBuilder().
		WithCondition(S("a").Eq("hi")).
		WithConverter(upperConverter{}).
		BuildForPut()
	if err != nil {
		t.Fatal(err)
	}
	if got := aws.StringValue(spec.Values[":0"].S); got != "HI" {
		t.Errorf("converted value: got %q, want %q", got, "HI")
	}
}
