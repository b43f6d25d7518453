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
	"io"
	"os"
	"path/filepath"
	"strings"
)

const dtoApplied = "applied"

func (c *Client) filesystem() error {
	if c.fs == nil {
		return ErrNoFilesystem{}
	}
	return nil
}

// ClkFiles lists TICS register files available on the board
func (c *Client) ClkFiles() ([]string, error) {
	if err := c.filesystem(); err != nil {
		return nil, err
	}
	files, err := c.fs.List()
	if err != nil {
		return nil, ErrTransport{Request: RequestListFiles, Err: err}
	}
	var clkFiles []string
	for _, name := range files {
		if strings.HasSuffix(name, ClkFileExt) {
			clkFiles = append(clkFiles, name)
		}
	}
	return clkFiles, nil
}

// UploadClkFile uploads a local register file. Unless force is set nothing
// is uploaded when a file with the same name already exists on the board,
// the returned flag tells if the upload happened.
func (c *Client) UploadClkFile(path string, force bool) (bool, error) {
	if err := c.filesystem(); err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		return false, err
	}
	if !force {
		files, err := c.ClkFiles()
		if err != nil {
			return false, err
		}
		name := filepath.Base(path)
		for _, f := range files {
			if f == name {
				return false, nil
			}
		}
	}
	if err := c.fs.Upload(path); err != nil {
		return false, ErrTransport{Request: RequestUploadFile, Err: err}
	}
	return true, nil
}

// DelClkFile removes a register file from the board
func (c *Client) DelClkFile(name string) error {
	if err := c.filesystem(); err != nil {
		return err
	}
	if err := c.fs.Delete(name); err != nil {
		return ErrTransport{Request: RequestDeleteFile, Err: err}
	}
	return nil
}

// ApplyDTO uploads the local overlay at path as DTOFile and applies it.
// An empty path applies the overlay already on the board.
func (c *Client) ApplyDTO(path string) (bool, error) {
	if path != "" {
		if err := c.uploadDTO(path); err != nil {
			return false, err
		}
	}
	informs, err := c.request(RequestDTO, "apply")
	if err != nil {
		return false, err
	}
	if len(informs) == 0 {
		return false, nil
	}
	return strings.TrimSpace(informs[0].Text()) == dtoApplied, nil
}

// uploadDTO copies the overlay under the name the board expects, the
// filesystem uploads files under their base name
func (c *Client) uploadDTO(path string) error {
	if err := c.filesystem(); err != nil {
		return err
	}
	src, err := os.Open(path)
	if err != nil {
		return err
	}
	defer src.Close()

	dir, err := os.MkdirTemp("", "go-rfdc-dto")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)
	tmp := filepath.Join(dir, DTOFile)
	dst, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	if err := c.fs.Upload(tmp); err != nil {
		return ErrTransport{Request: RequestUploadFile, Err: err}
	}
	return nil
}
