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

// Package katcp defines the boundary between the RFDC client and whatever
// delivers KATCP requests to the board. Framing, connection handling and
// retries are owned by the Transport implementation.
package katcp

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Reply statuses
const (
	StatusOk      = "ok"
	StatusFail    = "fail"
	StatusInvalid = "invalid"
)

// Reply is the final message of a request
type Reply struct {
	Name      string
	Status    string
	Arguments []string
}

// Ok tells if the request succeeded
func (r *Reply) Ok() bool {
	return r.Status == StatusOk
}

// Inform is a side channel message sent by the peer before the reply
type Inform struct {
	Name      string
	Arguments [][]byte
}

// Text returns the first argument decoded as text, which is where all
// rfdc-* requests put their payload
func (i *Inform) Text() string {
	if len(i.Arguments) == 0 {
		return ""
	}
	return string(i.Arguments[0])
}

// NewInform builds an inform with text arguments
func NewInform(name string, args ...string) *Inform {
	inform := &Inform{Name: name}
	for _, arg := range args {
		inform.Arguments = append(inform.Arguments, []byte(arg))
	}
	return inform
}

// Transport sends one request and blocks until the reply arrives or the
// timeout expires. A reply with a status other than ok must be returned as
// ErrRequestFailed.
type Transport interface {
	Request(name string, timeout time.Duration, args ...interface{}) (*Reply, []*Inform, error)
}

// Filesystem gives access to configuration files stored on the board
type Filesystem interface {
	Upload(path string) error
	List() ([]string, error)
	Delete(name string) error
}

// FormatArg renders a request argument the way it is put on the wire
func FormatArg(arg interface{}) (string, error) {
	switch v := arg.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case bool:
		if v {
			return "1", nil
		}
		return "0", nil
	default:
		return "", ErrUnsupportedArg{Arg: arg}
	}
}

// FormatArgs applies FormatArg to every argument
func FormatArgs(args ...interface{}) ([]string, error) {
	result := make([]string, 0, len(args))
	for _, arg := range args {
		s, err := FormatArg(arg)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// CommandLine returns ?name arg1 arg2, only used for logging
func CommandLine(name string, args ...interface{}) string {
	parts := []string{"?" + name}
	for _, arg := range args {
		s, err := FormatArg(arg)
		if err != nil {
			s = fmt.Sprintf("%v", arg)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}
