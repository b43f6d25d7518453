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

package rest

import (
	"net/http"
	neturl "net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/imroc/req"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
)

// Transport talks to a REST gateway. It implements both katcp.Transport
// and katcp.Filesystem.
type Transport struct {
	base string
	r    *req.Req
}

var _ katcp.Transport = &Transport{}
var _ katcp.Filesystem = &Transport{}

// NewTransport creates a transport for the gateway at baseURL. The HTTP
// timeout is the board request timeout plus Slack.
func NewTransport(baseURL string, timeout time.Duration) *Transport {
	r := req.New()
	r.SetTimeout(timeout + Slack)
	return &Transport{
		base: strings.TrimRight(baseURL, "/"),
		r:    r,
	}
}

func (t *Transport) url(path string) string {
	return t.base + path
}

func check(resp *req.Resp, method, url string) error {
	if resp.Response().StatusCode != http.StatusOK {
		return ErrGateway{
			Method: method,
			URL:    url,
			Status: resp.Response().Status,
			Body:   strings.TrimSpace(resp.String()),
		}
	}
	return nil
}

func (t *Transport) Request(name string, timeout time.Duration, args ...interface{}) (*katcp.Reply, []*katcp.Inform, error) {
	text, err := katcp.FormatArgs(args...)
	if err != nil {
		return nil, nil, err
	}
	body := &RequestBody{
		TimeoutMs: timeout.Milliseconds(),
		Args:      text,
	}
	url := t.url(katcpPath(name))
	resp, err := t.r.Post(url, req.BodyJSON(body))
	if err != nil {
		return nil, nil, err
	}
	if err := check(resp, http.MethodPost, url); err != nil {
		return nil, nil, err
	}
	reply := &ReplyBody{}
	if err := resp.ToJSON(reply); err != nil {
		return nil, nil, err
	}

	informs := make([]*katcp.Inform, 0, len(reply.Informs))
	for _, arguments := range reply.Informs {
		informs = append(informs, katcp.NewInform(name, arguments...))
	}
	result := &katcp.Reply{Name: name, Status: reply.Status, Arguments: reply.Arguments}
	if !result.Ok() {
		return result, informs, katcp.ErrRequestFailed{Name: name, Status: reply.Status, Arguments: reply.Arguments}
	}
	return result, informs, nil
}

func (t *Transport) Upload(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	url := t.url(filesPath)
	resp, err := t.r.Post(url, req.FileUpload{
		File:      f,
		FieldName: UploadField,
		FileName:  filepath.Base(path),
	})
	if err != nil {
		return err
	}
	return check(resp, http.MethodPost, url)
}

func (t *Transport) List() ([]string, error) {
	url := t.url(filesPath)
	resp, err := t.r.Get(url)
	if err != nil {
		return nil, err
	}
	if err := check(resp, http.MethodGet, url); err != nil {
		return nil, err
	}
	files := &FilesBody{}
	if err := resp.ToJSON(files); err != nil {
		return nil, err
	}
	return files.Files, nil
}

// Delete removes a remote file, the name is sent as one escaped path segment
func (t *Transport) Delete(name string) error {
	url := t.url(filesPath + "/" + neturl.PathEscape(name))
	resp, err := t.r.Delete(url)
	if err != nil {
		return err
	}
	return check(resp, http.MethodDelete, url)
}
