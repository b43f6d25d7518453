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

// AddressForm tells which parts of a Target are sent with a request
type AddressForm int

const (
	// TileKind sends tile, kind
	TileKind AddressForm = iota
	// TileBlockKind sends tile, block, kind
	TileBlockKind
	// TileBlock sends tile, block. Used by fields existing on one converter kind only.
	TileBlock
)

func (a AddressForm) String() string {
	switch a {
	case TileKind:
		return "tile+kind"
	case TileBlockKind:
		return "tile+block+kind"
	case TileBlock:
		return "tile+block"
	}
	return fmt.Sprintf("AddressForm(%d)", int(a))
}

func (a AddressForm) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AddressForm) UnmarshalText(text []byte) error {
	switch string(text) {
	case TileKind.String():
		*a = TileKind
	case TileBlockKind.String():
		*a = TileBlockKind
	case TileBlock.String():
		*a = TileBlock
	default:
		return fmt.Errorf("unknown address form %q", text)
	}
	return nil
}

// Shape of the inform payload
type Shape int

const (
	// Scalar payload is a bare value
	Scalar Shape = iota
	// Pair payload is "key value"
	Pair
	// Multi payload is "key value, key value, ..."
	Multi
)

func (s Shape) String() string {
	switch s {
	case Scalar:
		return "scalar"
	case Pair:
		return "pair"
	case Multi:
		return "multi"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

func (s Shape) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Shape) UnmarshalText(text []byte) error {
	switch string(text) {
	case Scalar.String():
		*s = Scalar
	case Pair.String():
		*s = Pair
	case Multi.String():
		*s = Multi
	default:
		return fmt.Errorf("unknown shape %q", text)
	}
	return nil
}

type ValueKind int

const (
	Int ValueKind = iota
	Float
	String
)

func (v ValueKind) String() string {
	switch v {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	}
	return fmt.Sprintf("ValueKind(%d)", int(v))
}

func (v ValueKind) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

func (v *ValueKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case Int.String():
		*v = Int
	case Float.String():
		*v = Float
	case String.String():
		*v = String
	default:
		return fmt.Errorf("unknown value kind %q", text)
	}
	return nil
}

// Key is one fixed key of a payload and the kind of its value
type Key struct {
	Name string    `json:"name"`
	Kind ValueKind `json:"kind"`
}

// Field is one catalog row
type Field struct {
	Name       string      `json:"name"`
	GetRequest string      `json:"get"`
	SetRequest string      `json:"set,omitempty"`
	Address    AddressForm `json:"address"`
	// Only is the converter kind a TileBlock field exists on
	Only  ConverterKind `json:"only"`
	Shape Shape         `json:"shape"`
	Kind  ValueKind     `json:"kind"`
	// Keys fixes the decoded key set. Scalar fields use the first key to store the value.
	Keys []Key `json:"keys,omitempty"`
	// GetArgs is the number of extra get arguments. For readback fields they
	// are also the leading set arguments.
	GetArgs int `json:"get_args"`
	SetArgs int `json:"set_args"`
	// Readback fields inform on set only when the target is disabled,
	// the value has to be read with a following get.
	Readback bool `json:"readback"`
	// Help is a short human readable description with set argument names
	Help string `json:"help"`
}

// ReadOnly tells if the field has no set request
func (f *Field) ReadOnly() bool {
	return f.SetRequest == ""
}

// KindOf returns the value kind of a key
func (f *Field) KindOf(key string) ValueKind {
	for _, k := range f.Keys {
		if k.Name == key {
			return k.Kind
		}
	}
	return f.Kind
}

func (f *Field) scalarKey() string {
	if len(f.Keys) > 0 {
		return f.Keys[0].Name
	}
	return f.Name
}

// address returns the request arguments carrying the target
func (f *Field) address(target Target) ([]interface{}, error) {
	switch f.Address {
	case TileKind:
		return []interface{}{target.Tile, target.Kind}, nil
	case TileBlockKind:
		return []interface{}{target.Tile, target.Block, target.Kind}, nil
	default:
		if target.Kind != f.Only {
			return nil, ErrWrongKind{Field: f.Name, Kind: target.Kind}
		}
		return []interface{}{target.Tile, target.Block}, nil
	}
}

func keys(kind ValueKind, names ...string) []Key {
	result := make([]Key, 0, len(names))
	for _, name := range names {
		result = append(result, Key{Name: name, Kind: kind})
	}
	return result
}

const (
	FieldFabricClkFreq     = "fabric-clk-freq"
	FieldDataType          = "datatype"
	FieldDataWidth         = "datawidth"
	FieldNyquistZone       = "nyquist-zone"
	FieldCoarseDelay       = "coarse-delay"
	FieldQMCSettings       = "qmc-settings"
	FieldPLLConfig         = "pll-config"
	FieldPLLLockStatus     = "pll-lock-status"
	FieldClkSrc            = "clk-src"
	FieldDSA               = "dsa"
	FieldCalFreeze         = "cal-freeze"
	FieldCalCoeffs         = "cal-coeffs"
	FieldCalMode           = "cal-mode"
	FieldOutputCurrent     = "output-current"
	FieldInvSincFIR        = "invsinc-fir"
	FieldInvSincFIREnabled = "invsinc-fir-enabled"
	FieldIMRMode           = "imr-mode"
)

var catalog = []*Field{
	{
		Name:       FieldFabricClkFreq,
		GetRequest: "rfdc-get-fab-clk-freq",
		Address:    TileKind,
		Shape:      Scalar,
		Kind:       Float,
		Keys:       keys(Float, "FabClkFreq"),
		Help:       "PL/fifo interface clock frequency in MHz",
	},
	{
		Name:       FieldDataType,
		GetRequest: "rfdc-get-datatype",
		Address:    TileBlockKind,
		Shape:      Scalar,
		Kind:       Int,
		Keys:       keys(Int, "DataType"),
		Help:       "output data type, 0 real, 1 complex",
	},
	{
		Name:       FieldDataWidth,
		GetRequest: "rfdc-get-datawidth",
		Address:    TileBlockKind,
		Shape:      Scalar,
		Kind:       Int,
		Keys:       keys(Int, "DataWidth"),
		Help:       "samples per fabric clock cycle",
	},
	{
		Name:       FieldNyquistZone,
		GetRequest: "rfdc-get-nyquist-zone",
		SetRequest: "rfdc-set-nyquist-zone",
		Address:    TileBlockKind,
		Shape:      Pair,
		Kind:       Int,
		SetArgs:    1,
		Help:       "set args: zone (1|2)",
	},
	{
		Name:       FieldCoarseDelay,
		GetRequest: "rfdc-get-coarse-delay",
		SetRequest: "rfdc-set-coarse-delay",
		Address:    TileBlockKind,
		Shape:      Multi,
		Kind:       Int,
		Keys:       keys(Int, "CoarseDelay", "EventSource"),
		SetArgs:    2,
		Help:       "set args: delay, event source",
	},
	{
		Name:       FieldQMCSettings,
		GetRequest: "rfdc-get-qmc-settings",
		SetRequest: "rfdc-set-qmc-settings",
		Address:    TileBlockKind,
		Shape:      Multi,
		Kind:       Float,
		Keys: []Key{
			{Name: "EnablePhase", Kind: Int},
			{Name: "EnableGain", Kind: Int},
			{Name: "GainCorrectionFactor", Kind: Float},
			{Name: "PhaseCorrectionFactor", Kind: Float},
			{Name: "OffsetCorrectionFactor", Kind: Int},
			{Name: "EventSource", Kind: Int},
		},
		SetArgs: 6,
		Help:    "set args: enable phase, enable gain, gain, phase, offset, event source",
	},
	{
		Name:       FieldPLLConfig,
		GetRequest: "rfdc-get-pll-config",
		SetRequest: "rfdc-set-pll-config",
		Address:    TileKind,
		Shape:      Multi,
		Kind:       Float,
		SetArgs:    3,
		Readback:   true,
		Help:       "set args: clock source, reference frequency MHz, sample rate MHz",
	},
	{
		Name:       FieldPLLLockStatus,
		GetRequest: "rfdc-pll-lock-status",
		Address:    TileKind,
		Shape:      Pair,
		Kind:       Int,
		Help:       "internal PLL lock status, 1 unlocked, 2 locked",
	},
	{
		Name:       FieldClkSrc,
		GetRequest: "rfdc-get-clk-src",
		Address:    TileKind,
		Shape:      Pair,
		Kind:       Int,
		Help:       "sample clock source, 0 external, 1 internal PLL",
	},
	{
		Name:       FieldDSA,
		GetRequest: "rfdc-get-dsa",
		SetRequest: "rfdc-set-dsa",
		Address:    TileBlock,
		Only:       ADC,
		Shape:      Pair,
		Kind:       String,
		SetArgs:    1,
		Help:       "set args: attenuation dB",
	},
	{
		Name:       FieldCalFreeze,
		GetRequest: "rfdc-get-cal-freeze",
		SetRequest: "rfdc-set-cal-freeze",
		Address:    TileBlock,
		Only:       ADC,
		Shape:      Multi,
		Kind:       Int,
		Keys:       keys(Int, "CalFrozen", "DisableFreezePin", "FreezeCalibration"),
		SetArgs:    1,
		Help:       "set args: freeze (0|1)",
	},
	{
		Name:       FieldCalCoeffs,
		GetRequest: "rfdc-get-cal-coeffs",
		SetRequest: "rfdc-set-cal-coeffs",
		Address:    TileBlock,
		Only:       ADC,
		Shape:      Multi,
		Kind:       Int,
		Keys:       keys(Int, "Coeff0", "Coeff1", "Coeff2", "Coeff3", "Coeff4", "Coeff5", "Coeff6", "Coeff7"),
		GetArgs:    1,
		SetArgs:    9,
		Readback:   true,
		Help:       "get args: calibration block; set args: calibration block, 8 coefficients",
	},
	{
		Name:       FieldCalMode,
		GetRequest: "rfdc-get-cal-mode",
		SetRequest: "rfdc-set-cal-mode",
		Address:    TileBlock,
		Only:       ADC,
		Shape:      Pair,
		Kind:       Int,
		SetArgs:    1,
		Help:       "set args: mode (1|2)",
	},
	{
		Name:       FieldOutputCurrent,
		GetRequest: "rfdc-get-output-current",
		SetRequest: "rfdc-set-vop",
		Address:    TileBlock,
		Only:       DAC,
		Shape:      Pair,
		Kind:       String,
		SetArgs:    1,
		Help:       "set args: output current uA",
	},
	{
		Name:       FieldInvSincFIR,
		GetRequest: "rfdc-get-invsincfir",
		SetRequest: "rfdc-set-invsincfir",
		Address:    TileBlock,
		Only:       DAC,
		Shape:      Pair,
		Kind:       Int,
		SetArgs:    1,
		Help:       "set args: mode (0 disabled, 1 first nyquist, 2 second nyquist)",
	},
	{
		Name:       FieldInvSincFIREnabled,
		GetRequest: "rfdc-invsincfir-enabled",
		Address:    TileBlock,
		Only:       DAC,
		Shape:      Pair,
		Kind:       Int,
		Help:       "inverse sinc filter enabled",
	},
	{
		Name:       FieldIMRMode,
		GetRequest: "rfdc-get-imr-mode",
		SetRequest: "rfdc-set-imr-mode",
		Address:    TileBlock,
		Only:       DAC,
		Shape:      Pair,
		Kind:       Int,
		SetArgs:    1,
		Help:       "set args: mode (0 lowpass, 1 highpass)",
	},
}

var catalogIndex = func() map[string]*Field {
	index := make(map[string]*Field, len(catalog))
	for _, field := range catalog {
		index[field.Name] = field
	}
	return index
}()

// Fields returns the catalog in a stable order
func Fields() []*Field {
	result := make([]*Field, len(catalog))
	copy(result, catalog)
	return result
}

func LookupField(name string) (*Field, error) {
	field, ok := catalogIndex[name]
	if !ok {
		return nil, ErrUnknownField{Name: name}
	}
	return field, nil
}
