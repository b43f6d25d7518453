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
	"strconv"
	"strings"
)

const (
	NumTiles  = 4
	NumBlocks = 4
)

type ConverterKind int

const (
	ADC ConverterKind = iota
	DAC
)

func (k ConverterKind) String() string {
	if k == DAC {
		return "dac"
	}
	return "adc"
}

// Label is the upper case name used in status and report lines
func (k ConverterKind) Label() string {
	return strings.ToUpper(k.String())
}

func (k ConverterKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ConverterKind) UnmarshalText(text []byte) error {
	kind, err := ParseConverterKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

func ParseConverterKind(s string) (ConverterKind, error) {
	switch strings.ToLower(s) {
	case "adc":
		return ADC, nil
	case "dac":
		return DAC, nil
	}
	return ADC, ErrInvalidTarget{What: fmt.Sprintf("unknown converter kind %q", s)}
}

// Target addresses one converter block
type Target struct {
	Tile  int           `json:"tile"`
	Block int           `json:"block"`
	Kind  ConverterKind `json:"kind"`
}

func NewTarget(kind ConverterKind, tile, block int) Target {
	return Target{Tile: tile, Block: block, Kind: kind}
}

// Validate checks tile and block ranges. The client itself never calls it,
// out of range addresses are sent as is and the peer decides.
func (t Target) Validate() error {
	if t.Tile < 0 || t.Tile >= NumTiles {
		return ErrInvalidTarget{What: fmt.Sprintf("tile %d out of range [0,%d]", t.Tile, NumTiles-1)}
	}
	if t.Block < 0 || t.Block >= NumBlocks {
		return ErrInvalidTarget{What: fmt.Sprintf("block %d out of range [0,%d]", t.Block, NumBlocks-1)}
	}
	if t.Kind != ADC && t.Kind != DAC {
		return ErrInvalidTarget{What: fmt.Sprintf("unknown converter kind %d", int(t.Kind))}
	}
	return nil
}

// String returns kind:tile:block
func (t Target) String() string {
	return fmt.Sprintf("%s:%d:%d", t.Kind, t.Tile, t.Block)
}

// ParseTarget parses kind:tile:block and validates the result
func ParseTarget(s string) (Target, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Target{}, ErrInvalidTarget{What: fmt.Sprintf("%q is not kind:tile:block", s)}
	}
	kind, err := ParseConverterKind(parts[0])
	if err != nil {
		return Target{}, err
	}
	tile, err := strconv.Atoi(parts[1])
	if err != nil {
		return Target{}, ErrInvalidTarget{What: fmt.Sprintf("bad tile %q", parts[1])}
	}
	block, err := strconv.Atoi(parts[2])
	if err != nil {
		return Target{}, ErrInvalidTarget{What: fmt.Sprintf("bad block %q", parts[2])}
	}
	t := NewTarget(kind, tile, block)
	return t, t.Validate()
}

// MaskBit returns the bit selecting this target in ADC/DAC masks, LSB is tile 0 block 0
func (t Target) MaskBit() uint {
	return uint(t.Tile*NumBlocks + t.Block)
}

// AllTargets returns the 16 addresses of one converter kind in row-major order
func AllTargets(kind ConverterKind) []Target {
	targets := make([]Target, 0, NumTiles*NumBlocks)
	for tile := 0; tile < NumTiles; tile++ {
		for block := 0; block < NumBlocks; block++ {
			targets = append(targets, NewTarget(kind, tile, block))
		}
	}
	return targets
}
