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
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
)

// Gateway serves a katcp.Transport and katcp.Filesystem over HTTP in the
// form Transport expects
type Gateway struct {
	*mux.Router
	transport katcp.Transport
	fs        katcp.Filesystem
}

func NewGateway(transport katcp.Transport, fs katcp.Filesystem) *Gateway {
	g := &Gateway{
		transport: transport,
		fs:        fs,
	}
	g.configureRouter()
	return g
}

func (g *Gateway) configureRouter() {
	g.Router = mux.NewRouter()
	g.Router.HandleFunc(katcpPath("{name}"), g.handleRequest()).Methods("POST")
	g.Router.HandleFunc(filesPath, g.handleList()).Methods("GET")
	g.Router.HandleFunc(filesPath, g.handleUpload()).Methods("POST")
	g.Router.HandleFunc(filesPath+"/{name}", g.handleDelete()).Methods("DELETE")
}

func (g *Gateway) handleRequest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		body := &RequestBody{}
		if err := json.NewDecoder(r.Body).Decode(body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Debug("Gateway request: %s %v", name, body.Args)

		args := make([]interface{}, 0, len(body.Args))
		for _, arg := range body.Args {
			args = append(args, arg)
		}
		reply, informs, err := g.transport.Request(name, time.Duration(body.TimeoutMs)*time.Millisecond, args...)
		var failed katcp.ErrRequestFailed
		if err != nil && !errors.As(err, &failed) {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		resp := &ReplyBody{Informs: [][]string{}}
		if reply != nil {
			resp.Status = reply.Status
			resp.Arguments = reply.Arguments
		}
		if err != nil {
			resp.Status = failed.Status
			resp.Arguments = failed.Arguments
		}
		for _, inform := range informs {
			arguments := make([]string, 0, len(inform.Arguments))
			for _, arg := range inform.Arguments {
				arguments = append(arguments, string(arg))
			}
			resp.Informs = append(resp.Informs, arguments)
		}
		json.NewEncoder(w).Encode(resp)
	}
}

func (g *Gateway) handleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := g.fs.List()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		if files == nil {
			files = []string{}
		}
		json.NewEncoder(w).Encode(&FilesBody{Files: files})
	}
}

func (g *Gateway) handleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile(UploadField)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		defer file.Close()

		// keep the uploaded name, the filesystem stores files by base name
		dir, err := os.MkdirTemp("", "go-rfdc-upload")
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		defer os.RemoveAll(dir)
		path := filepath.Join(dir, filepath.Base(header.Filename))
		out, err := os.Create(path)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		_, err = io.Copy(out, file)
		out.Close()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Debug("Gateway upload: %s", header.Filename)
		if err := g.fs.Upload(path); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}

func (g *Gateway) handleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := mux.Vars(r)["name"]
		log.Debug("Gateway delete: %s", name)
		if err := g.fs.Delete(name); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}
}
