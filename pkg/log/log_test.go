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

package log

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Init(buf, "warning"))
	defer Init(os.Stderr, "info")

	Debug("debug %d", 1)
	Info("info %d", 2)
	Warning("warn %d", 3)
	Error("error %d", 4)

	out := buf.String()
	assert.NotContains(t, out, "debug 1")
	assert.NotContains(t, out, "info 2")
	assert.Contains(t, out, WarningPrefix+"warn 3")
	assert.Contains(t, out, ErrorPrefix+"error 4")
	assert.Contains(t, out, LogPrefix)
	assert.False(t, IsDebug())
}

func TestWrongLevel(t *testing.T) {
	_, err := ParseLevel("verbose")
	require.Error(t, err)
	assert.IsType(t, ErrWrongLevel{}, err)

	require.NoError(t, SetLevel("debug"))
	defer SetLevel("info")
	require.Error(t, SetLevel("loud"))
	assert.True(t, IsDebug(), "level must stay unchanged after a wrong value")
}

func TestWriter(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Init(buf, "info"))
	defer Init(os.Stderr, "info")

	n, err := Writer(InfoLevel).Write([]byte("GET /api/boards 200\n"))
	require.NoError(t, err)
	assert.Equal(t, 20, n)
	Writer(DebugLevel).Write([]byte("hidden\n"))
	PrintlnLogger{}.Println("panic:", "boom")

	out := buf.String()
	assert.Contains(t, out, InfoPrefix+"GET /api/boards 200\n")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, ErrorPrefix+"panic: boom\n")
}
