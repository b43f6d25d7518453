/*
 Licensed under the Apache License, Version 2.0 (the "License");
 you may not use this file except in compliance with the License.
 You may obtain a copy of the License at

     https://www.apache.org/licenses/LICENSE-2.0

 Unless required by applicable law or agreed to in writing, software
 distributed under the License is distributed on an "AS IS" BASIS,
 WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 See the License for the specific language governing permissions and
 limitations under the License.
*/

package rfdc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	pairSep  = " "
	multiSep = ", "
)

// decode turns an inform payload into a Result following the field shape.
// Either a complete result or an error is returned, never a partial map.
func decode(field *Field, request, payload string) (*Result, error) {
	malformed := func(format string, v ...interface{}) error {
		return ErrMalformedResponse{Request: request, Payload: payload, What: fmt.Sprintf(format, v...)}
	}
	if !utf8.ValidString(payload) {
		return nil, malformed("invalid UTF-8")
	}
	text := strings.TrimSpace(payload)
	if text == Disabled {
		return NewDisabledResult(), nil
	}

	result := NewResult()
	switch field.Shape {
	case Scalar:
		if text == "" {
			return nil, malformed("empty payload")
		}
		key := field.scalarKey()
		value, err := coerce(text, field.KindOf(key))
		if err != nil {
			return nil, malformed("%s: %s", key, err)
		}
		result.Values[key] = value
	case Pair:
		key, value, err := splitPair(text)
		if err != nil {
			return nil, malformed("%s", err)
		}
		coerced, err := coerce(value, field.KindOf(key))
		if err != nil {
			return nil, malformed("%s: %s", key, err)
		}
		result.Values[key] = coerced
	case Multi:
		values, err := decodeMulti(text, field.KindOf)
		if err != nil {
			return nil, malformed("%s", err)
		}
		if len(field.Keys) > 0 {
			if err := checkKeys(values, field.Keys); err != nil {
				return nil, malformed("%s", err)
			}
		}
		result.Values = values
	default:
		return nil, malformed("unsupported shape %s", field.Shape)
	}
	return result, nil
}

// decodeMulti decodes "key value, key value"
func decodeMulti(text string, kindOf func(string) ValueKind) (map[string]interface{}, error) {
	values := map[string]interface{}{}
	for _, element := range strings.Split(text, multiSep) {
		key, value, err := splitPair(element)
		if err != nil {
			return nil, err
		}
		if _, ok := values[key]; ok {
			return nil, fmt.Errorf("duplicate key %s", key)
		}
		coerced, err := coerce(value, kindOf(key))
		if err != nil {
			return nil, fmt.Errorf("%s: %s", key, err)
		}
		values[key] = coerced
	}
	return values, nil
}

func splitPair(text string) (string, string, error) {
	tokens := strings.Split(text, pairSep)
	if len(tokens) != 2 {
		return "", "", fmt.Errorf("want 2 tokens in %q, got %d", text, len(tokens))
	}
	if tokens[0] == "" || tokens[1] == "" {
		return "", "", fmt.Errorf("empty token in %q", text)
	}
	if tokens[0] == Disabled {
		return "", "", fmt.Errorf("sentinel %s used as a key", Disabled)
	}
	return tokens[0], tokens[1], nil
}

func checkKeys(values map[string]interface{}, want []Key) error {
	if len(values) != len(want) {
		return fmt.Errorf("want %d keys, got %d", len(want), len(values))
	}
	for _, k := range want {
		if _, ok := values[k.Name]; !ok {
			return fmt.Errorf("missing key %s", k.Name)
		}
	}
	return nil
}

func coerce(value string, kind ValueKind) (interface{}, error) {
	switch kind {
	case Int:
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not an integer", value)
		}
		return v, nil
	case Float:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%q is not a finite float", value)
		}
		return v, nil
	default:
		return value, nil
	}
}

func allInt(string) ValueKind {
	return Int
}
