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

// BoardInfo describes a configured board
type BoardInfo struct {
	Name      string `json:"name"`
	Transport string `json:"transport"`
	URL       string `json:"url,omitempty"`
}

// SetBody carries set arguments, JSON numbers and strings
type SetBody struct {
	Args []interface{} `json:"args"`
}

type EventBody struct {
	Event int `json:"event"`
}

type MTSBody struct {
	TileMask int `json:"tile_mask"`
}

type MaskBody struct {
	AdcMask uint16  `json:"adc_mask"`
	DacMask uint16  `json:"dac_mask"`
	Freq    float64 `json:"freq,omitempty"`
}

// ClkUploadBody names a file on the server host
type ClkUploadBody struct {
	Path  string `json:"path"`
	Force bool   `json:"force"`
}

type UploadResult struct {
	Uploaded bool `json:"uploaded"`
}

type ProgPLLBody struct {
	PLL    string `json:"pll"`
	File   string `json:"file,omitempty"`
	Upload bool   `json:"upload,omitempty"`
}

type CoeffsBody struct {
	CalBlock int `json:"calblk"`
}

// InitBody names PLL register files on the server host, empty ones are skipped
type InitBody struct {
	LMKFile string `json:"lmk_file,omitempty"`
	LMXFile string `json:"lmx_file,omitempty"`
	Upload  bool   `json:"upload,omitempty"`
}

// DTOBody names an overlay on the server host, empty applies the one on the board
type DTOBody struct {
	Path string `json:"path,omitempty"`
}

type DTOResult struct {
	Applied bool `json:"applied"`
}

// Lines is a textual report
type Lines struct {
	Lines []string `json:"lines"`
}
