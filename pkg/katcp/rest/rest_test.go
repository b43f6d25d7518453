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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/sim"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

func newGateway(t *testing.T) (*sim.Peer, *Transport) {
	peer := sim.New(rfdc.NewTarget(rfdc.ADC, 0, 0), rfdc.NewTarget(rfdc.DAC, 1, 1))
	server := httptest.NewServer(NewGateway(peer, peer))
	t.Cleanup(server.Close)
	return peer, NewTransport(server.URL+"/", time.Second)
}

func TestRequestThroughGateway(t *testing.T) {
	peer, transport := newGateway(t)
	reply, informs, err := transport.Request("rfdc-get-nyquist-zone", time.Second, 0, 0, rfdc.ADC)
	require.NoError(t, err)
	assert.True(t, reply.Ok())
	require.Len(t, informs, 1)
	assert.Equal(t, "NyquistZone 1", informs[0].Text())
	assert.Equal(t, []sim.Call{{Name: "rfdc-get-nyquist-zone", Args: []string{"0", "0", "adc"}}}, peer.Calls())
}

func TestFailedReply(t *testing.T) {
	_, transport := newGateway(t)
	reply, _, err := transport.Request("rfdc-get-nyquist-zone", time.Second, 0)
	require.Error(t, err)
	var failed katcp.ErrRequestFailed
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, katcp.StatusInvalid, failed.Status)
	assert.Equal(t, katcp.StatusInvalid, reply.Status)
}

func TestTransportFailureIsBadGateway(t *testing.T) {
	peer, transport := newGateway(t)
	peer.FailNext(errors.New("board unreachable"))
	_, _, err := transport.Request(rfdc.RequestInit, time.Second)
	require.Error(t, err)
	var gatewayErr ErrGateway
	require.True(t, errors.As(err, &gatewayErr))
	assert.Contains(t, gatewayErr.Status, "502")
	assert.Equal(t, "board unreachable", gatewayErr.Body)
}

func TestClientOverGateway(t *testing.T) {
	_, transport := newGateway(t)
	client := rfdc.NewClient(transport, time.Second)

	result, err := client.Set(rfdc.NewTarget(rfdc.DAC, 1, 1), rfdc.FieldOutputCurrent, 25000)
	require.NoError(t, err)
	v, _ := result.Str("OutputCurrent")
	assert.Equal(t, "25000", v)

	entries, err := client.Scan(rfdc.DAC, rfdc.FieldInvSincFIR)
	require.NoError(t, err)
	require.Len(t, entries, 16)
	assert.False(t, entries[5].Result.Disabled)
	assert.True(t, entries[4].Result.Disabled)

	status, err := client.Status()
	require.NoError(t, err)
	enabled, _ := status["DAC1"].Int("Enabled")
	assert.Equal(t, int64(1), enabled)
}

func TestFilesThroughGateway(t *testing.T) {
	peer, transport := newGateway(t)
	path := filepath.Join(t.TempDir(), "lmk.txt")
	require.NoError(t, os.WriteFile(path, []byte("R0 0x01"), 0644))

	require.NoError(t, transport.Upload(path))
	files, err := transport.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"lmk.txt"}, files)

	require.NoError(t, transport.Delete("lmk.txt"))
	assert.Error(t, transport.Delete("lmk.txt"))
	files, err = transport.List()
	require.NoError(t, err)
	assert.Empty(t, files)

	peer.PutFile("rfpll.txt", nil)
	files, err = transport.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"rfpll.txt"}, files)
}

func TestDeleteEscapesName(t *testing.T) {
	peer, transport := newGateway(t)
	peer.PutFile("lmk", nil)
	peer.PutFile("lmk#1.txt", nil)
	peer.PutFile("lmx?v=2.txt", nil)

	require.NoError(t, transport.Delete("lmk#1.txt"))
	require.NoError(t, transport.Delete("lmx?v=2.txt"))
	files, err := transport.List()
	require.NoError(t, err)
	assert.Equal(t, []string{"lmk"}, files)
}

func TestBrokenGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()
	transport := NewTransport(server.URL, time.Second)
	_, _, err := transport.Request(rfdc.RequestInit, time.Second)
	assert.Error(t, err)
	_, err = transport.List()
	assert.Error(t, err)
}

func TestRequestBody(t *testing.T) {
	var got RequestBody
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/katcp/rfdc-set-qmc-settings", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(&ReplyBody{Status: katcp.StatusOk, Informs: [][]string{{"(disabled)"}}})
	}))
	defer server.Close()

	transport := NewTransport(server.URL, time.Second)
	_, informs, err := transport.Request("rfdc-set-qmc-settings", 1500*time.Millisecond, 0, 1, rfdc.DAC, 1, 0, 0.95, 2.5, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1500), got.TimeoutMs)
	assert.Equal(t, []string{"0", "1", "dac", "1", "0", "0.95", "2.5", "0", "0"}, got.Args)
	require.Len(t, informs, 1)
	assert.Equal(t, rfdc.Disabled, informs[0].Text())
}
