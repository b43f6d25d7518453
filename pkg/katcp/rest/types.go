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

// Package rest relays KATCP requests through an HTTP gateway sitting next
// to the board, and provides such a gateway for any katcp.Transport.
package rest

import "time"

// Slack is added to the request timeout to get the HTTP client timeout
const Slack = 2 * time.Second

// RequestBody is posted to {base}/katcp/{name}
type RequestBody struct {
	TimeoutMs int64    `json:"timeout_ms"`
	Args      []string `json:"args"`
}

// ReplyBody is the gateway answer, informs hold the arguments of every inform
type ReplyBody struct {
	Status    string     `json:"status"`
	Arguments []string   `json:"arguments"`
	Informs   [][]string `json:"informs"`
}

type FilesBody struct {
	Files []string `json:"files"`
}

// UploadField is the multipart field carrying an uploaded file
const UploadField = "file"

func katcpPath(name string) string {
	return "/katcp/" + name
}

const filesPath = "/files"
