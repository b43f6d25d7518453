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

package katcp

import (
	"fmt"
	"strings"
)

// ErrRequestFailed returned by a Transport when the reply status is not ok
type ErrRequestFailed struct {
	Name      string
	Status    string
	Arguments []string
}

func (e ErrRequestFailed) Error() string {
	return fmt.Sprintf("Request %s failed: %s %s", e.Name, e.Status, strings.Join(e.Arguments, " "))
}

// ErrUnsupportedArg returned when a request argument can not be rendered as text
type ErrUnsupportedArg struct {
	Arg interface{}
}

func (e ErrUnsupportedArg) Error() string {
	return fmt.Sprintf("Unsupported request argument type: %T", e.Arg)
}
