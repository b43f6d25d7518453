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

import "fmt"

// ErrTransport wraps any failure of the transport to deliver a request or its reply
type ErrTransport struct {
	Request string
	Err     error
}

func (e ErrTransport) Error() string {
	return fmt.Sprintf("Transport error on request %s: %s", e.Request, e.Err)
}

func (e ErrTransport) Unwrap() error {
	return e.Err
}

// ErrMalformedResponse returned when an inform does not match the payload shape of a field
type ErrMalformedResponse struct {
	Request string
	Payload string
	What    string
}

func (e ErrMalformedResponse) Error() string {
	return fmt.Sprintf("Malformed response to %s: %s, payload: %q", e.Request, e.What, e.Payload)
}

type ErrUnknownField struct {
	Name string
}

func (e ErrUnknownField) Error() string {
	return fmt.Sprintf("Unknown field: %s", e.Name)
}

// ErrArgs returned when the number of extra arguments does not match the catalog
type ErrArgs struct {
	Field string
	Want  int
	Got   int
}

func (e ErrArgs) Error() string {
	return fmt.Sprintf("Wrong number of arguments for %s: want %d, got %d", e.Field, e.Want, e.Got)
}

type ErrReadOnly struct {
	Field string
}

func (e ErrReadOnly) Error() string {
	return fmt.Sprintf("Field is read only: %s", e.Field)
}

// ErrWrongKind returned when a field only exists on the other converter kind
type ErrWrongKind struct {
	Field string
	Kind  ConverterKind
}

func (e ErrWrongKind) Error() string {
	return fmt.Sprintf("Field %s is not available on %s converters", e.Field, e.Kind)
}

type ErrInvalidTarget struct {
	What string
}

func (e ErrInvalidTarget) Error() string {
	return fmt.Sprintf("Invalid target: %s", e.What)
}

type ErrInvalidPLL struct {
	Name string
}

func (e ErrInvalidPLL) Error() string {
	return fmt.Sprintf("Invalid PLL type: %s, must be %s or %s", e.Name, PLLTypeLMK, PLLTypeLMX)
}

type ErrNoFilesystem struct{}

func (e ErrNoFilesystem) Error() string {
	return "Transport does not provide access to the remote filesystem"
}
