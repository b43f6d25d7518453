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
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Result is a decoded inform. A disabled result carries no values, a present
// result always has a non nil map even when it is empty.
type Result struct {
	Disabled bool                   `json:"disabled"`
	Values   map[string]interface{} `json:"values"`
}

func NewDisabledResult() *Result {
	return &Result{Disabled: true}
}

func NewResult() *Result {
	return &Result{Values: map[string]interface{}{}}
}

// Int returns the value of an integer key
func (r *Result) Int(key string) (int64, bool) {
	v, ok := r.Values[key].(int64)
	return v, ok
}

// Float returns the value of a float key
func (r *Result) Float(key string) (float64, bool) {
	v, ok := r.Values[key].(float64)
	return v, ok
}

// Str returns the value of a string key
func (r *Result) Str(key string) (string, bool) {
	v, ok := r.Values[key].(string)
	return v, ok
}

// Keys returns sorted keys
func (r *Result) Keys() []string {
	keys := make([]string, 0, len(r.Values))
	for k := range r.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders key=value pairs sorted by key or the disabled sentinel
func (r *Result) String() string {
	if r.Disabled {
		return Disabled
	}
	parts := make([]string, 0, len(r.Values))
	for _, k := range r.Keys() {
		parts = append(parts, fmt.Sprintf("%s=%v", k, r.Values[k]))
	}
	return strings.Join(parts, " ")
}

// Retype restores value kinds lost in a JSON round trip, where every number
// comes back as float64 or json.Number
func (r *Result) Retype(kindOf func(string) ValueKind) error {
	for key, value := range r.Values {
		v, err := retype(value, kindOf(key))
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		r.Values[key] = v
	}
	return nil
}

func retype(value interface{}, kind ValueKind) (interface{}, error) {
	switch v := value.(type) {
	case json.Number:
		if kind == Int {
			return v.Int64()
		}
		if kind == Float {
			return v.Float64()
		}
		return v.String(), nil
	case float64:
		if kind == Int {
			if v != math.Trunc(v) || v >= math.MaxInt64 || v < math.MinInt64 {
				return nil, fmt.Errorf("%v is not an integer", v)
			}
			return int64(v), nil
		}
		return v, nil
	default:
		return value, nil
	}
}
