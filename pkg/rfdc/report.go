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
	"path/filepath"
	"strings"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
)

const statusSep = ": "

func lines(informs []*katcp.Inform) []string {
	result := make([]string, 0, len(informs))
	for _, inform := range informs {
		result = append(result, strings.TrimRight(inform.Text(), "\n"))
	}
	return result
}

// Status decodes rfdc-status informs like "ADC0: Enabled 1, State 15, PLL 2"
// into a map keyed by the tile label
func (c *Client) Status() (map[string]*Result, error) {
	informs, err := c.request(RequestStatus)
	if err != nil {
		return nil, err
	}
	status := make(map[string]*Result, len(informs))
	for _, inform := range informs {
		text := strings.TrimSpace(inform.Text())
		parts := strings.SplitN(text, statusSep, 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, ErrMalformedResponse{Request: RequestStatus, Payload: text, What: "want label: values"}
		}
		values, err := decodeMulti(parts[1], allInt)
		if err != nil {
			return nil, ErrMalformedResponse{Request: RequestStatus, Payload: text, What: err.Error()}
		}
		status[parts[0]] = &Result{Values: values}
	}
	return status, nil
}

// RunMTS runs multi-tile synchronization of the ADC tiles selected by
// tileMask, LSB is tile 0. The informs replace the previous report.
func (c *Client) RunMTS(tileMask int) error {
	c.mtsReport = nil
	informs, err := c.request(RequestRunMTS, tileMask)
	if err != nil {
		return err
	}
	c.mtsReport = lines(informs)
	return nil
}

// MTSReport returns a copy of the report of the last RunMTS
func (c *Client) MTSReport() []string {
	report := make([]string, len(c.mtsReport))
	copy(report, c.mtsReport)
	return report
}

// UpdateNCOMTS programs NCOs keeping multi-tile synchronization.
// Masks select blocks by bit tile*4+block, freq is in MHz.
func (c *Client) UpdateNCOMTS(adcMask, dacMask uint16, freq float64) ([]string, error) {
	informs, err := c.request(RequestUpdateNCOMTS, adcMask, dacMask, freq)
	if err != nil {
		return nil, err
	}
	return lines(informs), nil
}

// ReportMixer returns the mixer settings lines of one target
func (c *Client) ReportMixer(target Target) ([]string, error) {
	informs, err := c.request(RequestReportMixer, target.Tile, target.Block, target.Kind)
	if err != nil {
		return nil, err
	}
	return lines(informs), nil
}

type MixerReport struct {
	Target Target   `json:"target"`
	Lines  []string `json:"lines"`
}

// ReportMixerStatus walks the masks, ADCs first, and reports every selected address
func (c *Client) ReportMixerStatus(adcMask, dacMask uint16) ([]MixerReport, error) {
	var reports []MixerReport
	for _, selection := range []struct {
		kind ConverterKind
		mask uint16
	}{{ADC, adcMask}, {DAC, dacMask}} {
		for _, target := range AllTargets(selection.kind) {
			if (selection.mask>>target.MaskBit())&1 == 0 {
				continue
			}
			report, err := c.ReportMixer(target)
			if err != nil {
				return nil, err
			}
			reports = append(reports, MixerReport{Target: target, Lines: report})
		}
	}
	return reports, nil
}

// UpdateEvent triggers the update event (mixer, coarse delay or QMC) of a target
func (c *Client) UpdateEvent(target Target, event int) error {
	return c.Action(RequestUpdateEvent, target.Tile, target.Block, target.Kind, event)
}

// DisableUserCoeffs returns an ADC calibration block to the driver coefficients
func (c *Client) DisableUserCoeffs(target Target, calblk int) error {
	if target.Kind != ADC {
		return ErrWrongKind{Field: RequestDisableUserCoeffs, Kind: target.Kind}
	}
	return c.Action(RequestDisableUserCoeffs, target.Tile, target.Block, calblk)
}

// Init programs the PLLs whose register files are given, lmk first, and
// initializes the rfdc driver. Empty names skip the PLL, upload works as in
// ProgPLL.
func (c *Client) Init(lmkFile, lmxFile string, upload bool) error {
	for _, pll := range []struct{ name, file string }{{PLLTypeLMK, lmkFile}, {PLLTypeLMX, lmxFile}} {
		if pll.file == "" {
			continue
		}
		if err := c.ProgPLL(pll.name, pll.file, upload); err != nil {
			return err
		}
	}
	return c.Action(RequestInit)
}

// ProgPLL programs the lmk or lmx PLL from a TICS register file. An empty
// path lets the board use its default file. With upload set the local file
// is uploaded first, replacing a remote file with the same name.
func (c *Client) ProgPLL(pll, path string, upload bool) error {
	pll = strings.ToLower(pll)
	if pll != PLLTypeLMK && pll != PLLTypeLMX {
		return ErrInvalidPLL{Name: pll}
	}
	if path == "" {
		return c.Action(RequestProgPLL, pll)
	}
	if upload {
		if _, err := c.UploadClkFile(path, true); err != nil {
			return err
		}
	}
	return c.Action(RequestProgPLL, pll, filepath.Base(path))
}
