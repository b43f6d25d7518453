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

// Package rfdc is a typed client for the RF data converter block of a
// CASPER FPGA board. Every accessor is one KATCP round trip: the target
// address and arguments go out, the first inform is decoded into a Result.
package rfdc

import (
	"time"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
)

// Client is not safe for concurrent RunMTS calls, everything else is
// stateless and may be called from many goroutines.
type Client struct {
	transport katcp.Transport
	fs        katcp.Filesystem
	timeout   time.Duration
	mtsReport []string
}

// NewClient creates a client. If the transport also implements
// katcp.Filesystem the clock file helpers use it.
func NewClient(transport katcp.Transport, timeout time.Duration) *Client {
	c := &Client{
		transport: transport,
		timeout:   timeout,
	}
	if fs, ok := transport.(katcp.Filesystem); ok {
		c.fs = fs
	}
	return c
}

// WithFilesystem replaces the remote filesystem collaborator
func (c *Client) WithFilesystem(fs katcp.Filesystem) *Client {
	c.fs = fs
	return c
}

func (c *Client) Timeout() time.Duration {
	return c.timeout
}

func (c *Client) request(name string, args ...interface{}) ([]*katcp.Inform, error) {
	if log.IsDebug() {
		log.Debug("Request %s", katcp.CommandLine(name, args...))
	}
	_, informs, err := c.transport.Request(name, c.timeout, args...)
	if err != nil {
		return nil, ErrTransport{Request: name, Err: err}
	}
	return informs, nil
}

func single(request string, informs []*katcp.Inform) (string, error) {
	if len(informs) != 1 {
		return "", ErrMalformedResponse{Request: request, What: "want exactly one inform"}
	}
	return informs[0].Text(), nil
}

func (c *Client) decodeSingle(field *Field, request string, informs []*katcp.Inform, target Target) (*Result, error) {
	payload, err := single(request, informs)
	if err != nil {
		return nil, err
	}
	result, err := decode(field, request, payload)
	if err != nil {
		return nil, err
	}
	if result.Disabled {
		log.Debug("%s %s is disabled", field.Name, target)
	}
	return result, nil
}

// Get reads a catalog field of a target. Extra arguments follow the address,
// e.g. the calibration block for cal-coeffs.
func (c *Client) Get(target Target, name string, args ...interface{}) (*Result, error) {
	field, err := LookupField(name)
	if err != nil {
		return nil, err
	}
	if len(args) != field.GetArgs {
		return nil, ErrArgs{Field: name, Want: field.GetArgs, Got: len(args)}
	}
	return c.get(field, target, args...)
}

func (c *Client) get(field *Field, target Target, args ...interface{}) (*Result, error) {
	address, err := field.address(target)
	if err != nil {
		return nil, err
	}
	informs, err := c.request(field.GetRequest, append(address, args...)...)
	if err != nil {
		return nil, err
	}
	return c.decodeSingle(field, field.GetRequest, informs, target)
}

// Set writes a catalog field and returns the readback. The readback is
// trusted, nothing checks that the write took effect.
func (c *Client) Set(target Target, name string, args ...interface{}) (*Result, error) {
	field, err := LookupField(name)
	if err != nil {
		return nil, err
	}
	if field.ReadOnly() {
		return nil, ErrReadOnly{Field: name}
	}
	if len(args) != field.SetArgs {
		return nil, ErrArgs{Field: name, Want: field.SetArgs, Got: len(args)}
	}
	address, err := field.address(target)
	if err != nil {
		return nil, err
	}
	informs, err := c.request(field.SetRequest, append(address, args...)...)
	if err != nil {
		return nil, err
	}
	if !field.Readback {
		return c.decodeSingle(field, field.SetRequest, informs, target)
	}

	if len(informs) == 0 {
		return c.get(field, target, args[:field.GetArgs]...)
	}
	// the peer informs on these sets only for disabled targets
	result, err := c.decodeSingle(field, field.SetRequest, informs, target)
	if err != nil {
		return nil, err
	}
	if !result.Disabled {
		return nil, ErrMalformedResponse{
			Request: field.SetRequest,
			Payload: informs[0].Text(),
			What:    "unexpected inform, only the disabled sentinel is allowed",
		}
	}
	return result, nil
}

// Action sends a request without a meaningful payload, nil means success
func (c *Client) Action(name string, args ...interface{}) error {
	_, err := c.request(name, args...)
	return err
}

// ScanEntry is one address of a scan
type ScanEntry struct {
	Target Target  `json:"target"`
	Result *Result `json:"result"`
}

// Scan reads a field on all 16 tile/block addresses of a converter kind in
// row-major order. Disabled addresses get the disabled result, the first
// error aborts the scan.
func (c *Client) Scan(kind ConverterKind, name string, args ...interface{}) ([]ScanEntry, error) {
	field, err := LookupField(name)
	if err != nil {
		return nil, err
	}
	if len(args) != field.GetArgs {
		return nil, ErrArgs{Field: name, Want: field.GetArgs, Got: len(args)}
	}
	targets := AllTargets(kind)
	entries := make([]ScanEntry, 0, len(targets))
	for _, target := range targets {
		result, err := c.get(field, target, args...)
		if err != nil {
			return nil, err
		}
		entries = append(entries, ScanEntry{Target: target, Result: result})
	}
	return entries, nil
}
