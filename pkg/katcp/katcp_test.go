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

package katcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatArgs(t *testing.T) {
	args, err := FormatArgs(0, int64(-3), uint16(15), 0.9, float32(1.5), -5.0, "adc", true, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "-3", "15", "0.9", "1.5", "-5", "adc", "1", "0"}, args)
}

func TestFormatArgUnsupported(t *testing.T) {
	_, err := FormatArg([]int{1})
	require.Error(t, err)
	assert.IsType(t, ErrUnsupportedArg{}, err)
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, "?rfdc-get-dsa 0 1", CommandLine("rfdc-get-dsa", 0, 1))
	assert.Equal(t, "?rfdc-init", CommandLine("rfdc-init"))
}

func TestInformText(t *testing.T) {
	assert.Equal(t, "NyquistZone 1", NewInform("rfdc-get-nyquist-zone", "NyquistZone 1").Text())
	assert.Equal(t, "", (&Inform{}).Text())
}

func TestReplyOk(t *testing.T) {
	assert.True(t, (&Reply{Status: StatusOk}).Ok())
	assert.False(t, (&Reply{Status: StatusFail}).Ok())
}
