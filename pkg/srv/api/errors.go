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

package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

// ErrUnknownOperation returned when a request names an operation the server does not support
type ErrUnknownOperation struct {
	What string
}

func (e ErrUnknownOperation) Error() string {
	return fmt.Sprintf("Unknown operation: %s", e.What)
}

type ErrUnknownTransport struct {
	Board     string
	Transport string
}

func (e ErrUnknownTransport) Error() string {
	return fmt.Sprintf("Unknown transport %q for board %s", e.Transport, e.Board)
}

type ErrBadRequest struct {
	What string
}

func (e ErrBadRequest) Error() string {
	return fmt.Sprintf("Bad request: %s", e.What)
}

// StatusCode maps errors to HTTP status codes
func StatusCode(err error) int {
	var (
		boardNotFound config.ErrBoardNotFound
		unknownField  rfdc.ErrUnknownField
		args          rfdc.ErrArgs
		readOnly      rfdc.ErrReadOnly
		wrongKind     rfdc.ErrWrongKind
		invalidTarget rfdc.ErrInvalidTarget
		invalidPLL    rfdc.ErrInvalidPLL
		noFilesystem  rfdc.ErrNoFilesystem
		unknownOp     ErrUnknownOperation
		badRequest    ErrBadRequest
		malformed     rfdc.ErrMalformedResponse
		transport     rfdc.ErrTransport
	)
	switch {
	case errors.As(err, &boardNotFound), errors.As(err, &unknownField):
		return http.StatusNotFound
	case errors.As(err, &args), errors.As(err, &readOnly), errors.As(err, &wrongKind),
		errors.As(err, &invalidTarget), errors.As(err, &invalidPLL), errors.As(err, &unknownOp),
		errors.As(err, &badRequest), errors.Is(err, os.ErrNotExist):
		return http.StatusBadRequest
	case errors.As(err, &noFilesystem):
		return http.StatusNotImplemented
	case errors.As(err, &malformed):
		return http.StatusBadGateway
	case errors.As(err, &transport):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}
