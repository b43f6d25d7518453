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

package sim

import (
	"fmt"
	"strconv"

	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

// model describes how the peer stores and renders one catalog field
type model struct {
	keys     []string
	defaults []string
	// setKeys lists the keys every set argument writes, after the extra get arguments
	setKeys [][]string
	// format renders a written value, nil keeps the argument text
	format func(string) (string, error)
}

func one(keys ...string) [][]string {
	result := make([][]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, []string{k})
	}
	return result
}

func formatDecimal(value string) (string, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%.1f", v), nil
}

func formatMicroAmp(value string) (string, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(int64(v+0.5), 10), nil
}

var models = map[string]*model{
	rfdc.FieldFabricClkFreq: {
		keys:     []string{"FabClkFreq"},
		defaults: []string{"245.76"},
	},
	rfdc.FieldDataType: {
		keys:     []string{"DataType"},
		defaults: []string{"0"},
	},
	rfdc.FieldDataWidth: {
		keys:     []string{"DataWidth"},
		defaults: []string{"8"},
	},
	rfdc.FieldNyquistZone: {
		keys:     []string{"NyquistZone"},
		defaults: []string{"1"},
		setKeys:  one("NyquistZone"),
	},
	rfdc.FieldCoarseDelay: {
		keys:     []string{"CoarseDelay", "EventSource"},
		defaults: []string{"0", "0"},
		setKeys:  one("CoarseDelay", "EventSource"),
	},
	rfdc.FieldQMCSettings: {
		keys: []string{
			"EnablePhase", "EnableGain", "GainCorrectionFactor",
			"PhaseCorrectionFactor", "OffsetCorrectionFactor", "EventSource",
		},
		defaults: []string{"0", "0", "1.0", "0.0", "0", "0"},
		setKeys: one(
			"EnablePhase", "EnableGain", "GainCorrectionFactor",
			"PhaseCorrectionFactor", "OffsetCorrectionFactor", "EventSource",
		),
	},
	rfdc.FieldPLLConfig: {
		keys:     []string{"Enabled", "RefClkFreq", "SampleRate"},
		defaults: []string{"1", "245.76", "3932.16"},
		setKeys:  one("Enabled", "RefClkFreq", "SampleRate"),
	},
	rfdc.FieldPLLLockStatus: {
		keys:     []string{"PLLLockStatus"},
		defaults: []string{"2"},
	},
	rfdc.FieldClkSrc: {
		keys:     []string{"ClkSrc"},
		defaults: []string{"1"},
	},
	rfdc.FieldDSA: {
		keys:     []string{"Attenuation"},
		defaults: []string{"0.0"},
		setKeys:  one("Attenuation"),
		format:   formatDecimal,
	},
	rfdc.FieldCalFreeze: {
		keys:     []string{"CalFrozen", "DisableFreezePin", "FreezeCalibration"},
		defaults: []string{"0", "0", "0"},
		setKeys:  [][]string{{"CalFrozen", "FreezeCalibration"}},
	},
	rfdc.FieldCalCoeffs: {
		keys:     []string{"Coeff0", "Coeff1", "Coeff2", "Coeff3", "Coeff4", "Coeff5", "Coeff6", "Coeff7"},
		defaults: []string{"0", "0", "0", "0", "0", "0", "0", "0"},
		setKeys:  one("Coeff0", "Coeff1", "Coeff2", "Coeff3", "Coeff4", "Coeff5", "Coeff6", "Coeff7"),
	},
	rfdc.FieldCalMode: {
		keys:     []string{"CalibrationMode"},
		defaults: []string{"2"},
		setKeys:  one("CalibrationMode"),
	},
	rfdc.FieldOutputCurrent: {
		keys:     []string{"OutputCurrent"},
		defaults: []string{"20000"},
		setKeys:  one("OutputCurrent"),
		format:   formatMicroAmp,
	},
	rfdc.FieldInvSincFIR: {
		keys:     []string{"InvSincFIR"},
		defaults: []string{"1"},
		setKeys:  one("InvSincFIR"),
	},
	rfdc.FieldInvSincFIREnabled: {
		keys:     []string{"Enabled"},
		defaults: []string{"1"},
	},
	rfdc.FieldIMRMode: {
		keys:     []string{"IMRMode"},
		defaults: []string{"0"},
		setKeys:  one("IMRMode"),
	},
}

// values of one field on one address, in render order
type values struct {
	keys []string
	data map[string]string
}

func newValues(m *model) *values {
	v := &values{keys: m.keys, data: make(map[string]string, len(m.keys))}
	for i, k := range m.keys {
		v.data[k] = m.defaults[i]
	}
	return v
}

func (v *values) render(shape rfdc.Shape) string {
	switch shape {
	case rfdc.Scalar:
		return v.data[v.keys[0]]
	case rfdc.Pair:
		return v.keys[0] + " " + v.data[v.keys[0]]
	}
	result := ""
	for i, k := range v.keys {
		if i > 0 {
			result += ", "
		}
		result += k + " " + v.data[k]
	}
	return result
}
