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

package command

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
	"jinr.ru/greenlab/go-rfdc/pkg/srv/api"
)

// ApiClient talks to the API server
type ApiClient struct {
	*config.Config
	ApiPrefix string
	r         *req.Req
}

func NewApiClient(cfg *config.Config) *ApiClient {
	return NewApiClientWithPrefix(cfg, fmt.Sprintf("http://%s/api", cfg.Address()))
}

func NewApiClientWithPrefix(cfg *config.Config, prefix string) *ApiClient {
	return &ApiClient{
		Config:    cfg,
		ApiPrefix: prefix,
		r:         req.New(),
	}
}

func (c *ApiClient) url(format string, v ...interface{}) string {
	return c.ApiPrefix + fmt.Sprintf(format, v...)
}

func targetPath(t rfdc.Target) string {
	return fmt.Sprintf("%s/%d/%d", t.Kind, t.Tile, t.Block)
}

func check(method, u string, r *req.Resp) error {
	if r.Response().StatusCode != http.StatusOK {
		return ErrApi{Method: method, URL: u, Status: r.Response().StatusCode, Body: r.String()}
	}
	return nil
}

// retype gives decoded values the kinds the field declares
func retype(name string, result *rfdc.Result) error {
	if result == nil {
		return nil
	}
	field, err := rfdc.LookupField(name)
	if err != nil {
		return err
	}
	return result.Retype(field.KindOf)
}

func (c *ApiClient) get(u string, v interface{}) error {
	r, err := c.r.Get(u)
	if err != nil {
		return err
	}
	if err := check(http.MethodGet, u, r); err != nil {
		return err
	}
	return r.ToJSON(v)
}

// post sends body as JSON, the response is decoded into v unless v is nil
func (c *ApiClient) post(u string, body, v interface{}) error {
	var params []interface{}
	if body != nil {
		params = append(params, req.BodyJSON(body))
	}
	r, err := c.r.Post(u, params...)
	if err != nil {
		return err
	}
	if err := check(http.MethodPost, u, r); err != nil {
		return err
	}
	if v == nil {
		return nil
	}
	return r.ToJSON(v)
}

func (c *ApiClient) Boards() ([]*api.BoardInfo, error) {
	var boards []*api.BoardInfo
	if err := c.get(c.url("/boards"), &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

// Fields returns the field catalog the server knows
func (c *ApiClient) Fields() ([]*rfdc.Field, error) {
	var fields []*rfdc.Field
	if err := c.get(c.url("/field"), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// Get reads a field, extra args are sent as query parameters
func (c *ApiClient) Get(board string, t rfdc.Target, field string, args ...string) (*rfdc.Result, error) {
	u := c.url("/%s/field/%s/%s", board, field, targetPath(t))
	if len(args) > 0 {
		u += "?" + url.Values{"arg": args}.Encode()
	}
	result := &rfdc.Result{}
	if err := c.get(u, result); err != nil {
		return nil, err
	}
	if err := retype(field, result); err != nil {
		return nil, err
	}
	return result, nil
}

// Set writes a field and returns the readback
func (c *ApiClient) Set(board string, t rfdc.Target, field string, args ...interface{}) (*rfdc.Result, error) {
	result := &rfdc.Result{}
	body := &api.SetBody{Args: args}
	if err := c.post(c.url("/%s/field/%s/%s", board, field, targetPath(t)), body, result); err != nil {
		return nil, err
	}
	if err := retype(field, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *ApiClient) Scan(board string, kind rfdc.ConverterKind, field string, args ...string) ([]rfdc.ScanEntry, error) {
	u := c.url("/%s/scan/%s/%s", board, kind, field)
	if len(args) > 0 {
		u += "?" + url.Values{"arg": args}.Encode()
	}
	var entries []rfdc.ScanEntry
	if err := c.get(u, &entries); err != nil {
		return nil, err
	}
	for _, e := range entries {
		if err := retype(field, e.Result); err != nil {
			return nil, err
		}
	}
	return entries, nil
}

func (c *ApiClient) Status(board string) (map[string]*rfdc.Result, error) {
	status := map[string]*rfdc.Result{}
	if err := c.get(c.url("/%s/status", board), &status); err != nil {
		return nil, err
	}
	return status, nil
}

func (c *ApiClient) UpdateEvent(board string, t rfdc.Target, event int) error {
	return c.post(c.url("/%s/event/%s", board, targetPath(t)), &api.EventBody{Event: event}, nil)
}

func (c *ApiClient) DisableUserCoeffs(board string, tile, block, calblk int) error {
	return c.post(c.url("/%s/coeffs/%d/%d", board, tile, block), &api.CoeffsBody{CalBlock: calblk}, nil)
}

// Init programs the given PLL files and initializes the driver, paths are on the server host
func (c *ApiClient) Init(board, lmkFile, lmxFile string, upload bool) error {
	body := &api.InitBody{LMKFile: lmkFile, LMXFile: lmxFile, Upload: upload}
	return c.post(c.url("/%s/init", board), body, nil)
}

// RunMTS runs synchronization and returns the report
func (c *ApiClient) RunMTS(board string, tileMask int) ([]string, error) {
	lines := &api.Lines{}
	if err := c.post(c.url("/%s/mts", board), &api.MTSBody{TileMask: tileMask}, lines); err != nil {
		return nil, err
	}
	return lines.Lines, nil
}

// MTSReport returns the report of the last synchronization
func (c *ApiClient) MTSReport(board string) ([]string, error) {
	lines := &api.Lines{}
	if err := c.get(c.url("/%s/mts", board), lines); err != nil {
		return nil, err
	}
	return lines.Lines, nil
}

func (c *ApiClient) UpdateNCOMTS(board string, adcMask, dacMask uint16, freq float64) ([]string, error) {
	lines := &api.Lines{}
	body := &api.MaskBody{AdcMask: adcMask, DacMask: dacMask, Freq: freq}
	if err := c.post(c.url("/%s/nco", board), body, lines); err != nil {
		return nil, err
	}
	return lines.Lines, nil
}

func (c *ApiClient) ReportMixer(board string, t rfdc.Target) ([]string, error) {
	lines := &api.Lines{}
	if err := c.get(c.url("/%s/mixer/%s", board, targetPath(t)), lines); err != nil {
		return nil, err
	}
	return lines.Lines, nil
}

func (c *ApiClient) ReportMixerStatus(board string, adcMask, dacMask uint16) ([]rfdc.MixerReport, error) {
	var reports []rfdc.MixerReport
	body := &api.MaskBody{AdcMask: adcMask, DacMask: dacMask}
	if err := c.post(c.url("/%s/mixer", board), body, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *ApiClient) ClkFiles(board string) ([]string, error) {
	var files []string
	if err := c.get(c.url("/%s/clk", board), &files); err != nil {
		return nil, err
	}
	return files, nil
}

// UploadClkFile asks the server to upload a file found on the server host
func (c *ApiClient) UploadClkFile(board, path string, force bool) (bool, error) {
	result := &api.UploadResult{}
	if err := c.post(c.url("/%s/clk", board), &api.ClkUploadBody{Path: path, Force: force}, result); err != nil {
		return false, err
	}
	return result.Uploaded, nil
}

func (c *ApiClient) DelClkFile(board, name string) error {
	u := c.url("/%s/clk/%s", board, url.PathEscape(name))
	r, err := c.r.Delete(u)
	if err != nil {
		return err
	}
	return check(http.MethodDelete, u, r)
}

func (c *ApiClient) ProgPLL(board, pll, file string, upload bool) error {
	return c.post(c.url("/%s/progpll", board), &api.ProgPLLBody{PLL: pll, File: file, Upload: upload}, nil)
}

// ApplyDTO uploads the overlay found at path on the server host and applies it
func (c *ApiClient) ApplyDTO(board, path string) (bool, error) {
	result := &api.DTOResult{}
	if err := c.post(c.url("/%s/dto", board), &api.DTOBody{Path: path}, result); err != nil {
		return false, err
	}
	return result.Applied, nil
}

func (c *ApiClient) Journal(board string) ([]*api.Entry, error) {
	var entries []*api.Entry
	if err := c.get(c.url("/%s/journal", board), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
