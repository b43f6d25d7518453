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

package rfdc_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/sim"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

const timeout = 3 * time.Second

// scripted answers every request with fixed payloads and records what it got
type scripted struct {
	payloads map[string][]string
	names    []string
	args     [][]interface{}
	timeouts []time.Duration
}

func (s *scripted) Request(name string, timeout time.Duration, args ...interface{}) (*katcp.Reply, []*katcp.Inform, error) {
	s.names = append(s.names, name)
	s.args = append(s.args, args)
	s.timeouts = append(s.timeouts, timeout)
	var informs []*katcp.Inform
	for _, payload := range s.payloads[name] {
		informs = append(informs, katcp.NewInform(name, payload))
	}
	return &katcp.Reply{Name: name, Status: katcp.StatusOk}, informs, nil
}

var (
	adc00 = rfdc.NewTarget(rfdc.ADC, 0, 0)
	adc01 = rfdc.NewTarget(rfdc.ADC, 0, 1)
	adc12 = rfdc.NewTarget(rfdc.ADC, 1, 2)
	dac00 = rfdc.NewTarget(rfdc.DAC, 0, 0)
	dac31 = rfdc.NewTarget(rfdc.DAC, 3, 1)
)

func newSim() (*sim.Peer, *rfdc.Client) {
	peer := sim.New(adc00, adc01, rfdc.NewTarget(rfdc.ADC, 2, 3), dac00)
	return peer, rfdc.NewClient(peer, timeout)
}

func TestGetParsesMultiPayload(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{
		"rfdc-get-pll-config": {"Enabled 1, State 15, PLL 2"},
	}}
	client := rfdc.NewClient(transport, timeout)
	result, err := client.Get(adc00, rfdc.FieldPLLConfig)
	require.NoError(t, err)
	assert.False(t, result.Disabled)
	assert.Equal(t, map[string]interface{}{"Enabled": 1.0, "State": 15.0, "PLL": 2.0}, result.Values)

	require.Len(t, transport.names, 1)
	assert.Equal(t, "rfdc-get-pll-config", transport.names[0])
	assert.Equal(t, []interface{}{0, rfdc.ADC}, transport.args[0])
	assert.Equal(t, timeout, transport.timeouts[0])
}

func TestStatusParsesTiles(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{
		rfdc.RequestStatus: {"ADC0: Enabled 1, State 15, PLL 2", "DAC0: Enabled 0"},
	}}
	status, err := rfdc.NewClient(transport, timeout).Status()
	require.NoError(t, err)
	require.Len(t, status, 2)
	assert.Equal(t, map[string]interface{}{"Enabled": int64(1), "State": int64(15), "PLL": int64(2)}, status["ADC0"].Values)
	assert.Equal(t, map[string]interface{}{"Enabled": int64(0)}, status["DAC0"].Values)
}

func TestStatusMalformed(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{
		rfdc.RequestStatus: {"ADC0: Enabled 1, State 15, PLL 2", "DAC0 Enabled 0"},
	}}
	status, err := rfdc.NewClient(transport, timeout).Status()
	require.Error(t, err)
	assert.IsType(t, rfdc.ErrMalformedResponse{}, err)
	assert.Nil(t, status)
}

func TestGetDisabledSentinel(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{
		"rfdc-get-coarse-delay": {"(disabled)"},
	}}
	result, err := rfdc.NewClient(transport, timeout).Get(dac31, rfdc.FieldCoarseDelay)
	require.NoError(t, err)
	assert.True(t, result.Disabled)
	assert.Empty(t, result.Values)
}

func TestEnabledKeysAndKinds(t *testing.T) {
	_, client := newSim()
	for _, f := range rfdc.Fields() {
		target := adc00
		if f.Address == rfdc.TileBlock && f.Only == rfdc.DAC {
			target = dac00
		}
		args := make([]interface{}, f.GetArgs)
		for i := range args {
			args[i] = rfdc.CalBlockOCB2
		}
		result, err := client.Get(target, f.Name, args...)
		require.NoError(t, err, f.Name)
		require.False(t, result.Disabled, f.Name)
		if f.Shape == rfdc.Pair || f.Shape == rfdc.Scalar {
			assert.Len(t, result.Values, 1, f.Name)
		}
		if len(f.Keys) > 0 {
			assert.Len(t, result.Values, len(f.Keys), f.Name)
		}
		for key, value := range result.Values {
			switch f.KindOf(key) {
			case rfdc.Int:
				assert.IsType(t, int64(0), value, "%s %s", f.Name, key)
			case rfdc.Float:
				assert.IsType(t, float64(0), value, "%s %s", f.Name, key)
			default:
				assert.IsType(t, "", value, "%s %s", f.Name, key)
			}
		}
	}
}

func TestDisabledEverywhereIdempotent(t *testing.T) {
	_, client := newSim()
	for _, f := range rfdc.Fields() {
		target := adc12
		if f.Address == rfdc.TileBlock && f.Only == rfdc.DAC {
			target = dac31
		}
		if f.Address == rfdc.TileKind {
			target = rfdc.NewTarget(rfdc.ADC, 3, 0)
		}
		args := make([]interface{}, f.GetArgs)
		for i := range args {
			args[i] = 0
		}
		for i := 0; i < 3; i++ {
			result, err := client.Get(target, f.Name, args...)
			require.NoError(t, err, f.Name)
			assert.True(t, result.Disabled, f.Name)
			assert.Nil(t, result.Values, f.Name)
		}
	}
}

func TestSetDisabledTarget(t *testing.T) {
	_, client := newSim()
	result, err := client.Set(adc12, rfdc.FieldDSA, 3)
	require.NoError(t, err)
	assert.True(t, result.Disabled)

	// readback fields inform only for disabled targets
	result, err = client.Set(adc12, rfdc.FieldCalCoeffs, 1, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, err)
	assert.True(t, result.Disabled)

	result, err = client.Set(rfdc.NewTarget(rfdc.DAC, 2, 0), rfdc.FieldPLLConfig, 1, 245.76, 3932.16)
	require.NoError(t, err)
	assert.True(t, result.Disabled)
}

func TestSetGetRoundTrip(t *testing.T) {
	_, client := newSim()
	cases := []struct {
		field  string
		target rfdc.Target
		args   []interface{}
		want   map[string]interface{}
	}{
		{
			field:  rfdc.FieldQMCSettings,
			target: adc01,
			args:   []interface{}{1, 1, 0.9, -5.5, 3, rfdc.EventSourceTile},
			want: map[string]interface{}{
				"EnablePhase":            int64(1),
				"EnableGain":             int64(1),
				"GainCorrectionFactor":   0.9,
				"PhaseCorrectionFactor":  -5.5,
				"OffsetCorrectionFactor": int64(3),
				"EventSource":            int64(2),
			},
		},
		{
			field:  rfdc.FieldNyquistZone,
			target: dac00,
			args:   []interface{}{rfdc.NyquistZone2},
			want:   map[string]interface{}{"NyquistZone": int64(2)},
		},
		{
			field:  rfdc.FieldDSA,
			target: adc00,
			args:   []interface{}{11},
			want:   map[string]interface{}{"Attenuation": "11.0"},
		},
		{
			field:  rfdc.FieldOutputCurrent,
			target: dac00,
			args:   []interface{}{32000},
			want:   map[string]interface{}{"OutputCurrent": "32000"},
		},
		{
			field:  rfdc.FieldCoarseDelay,
			target: adc00,
			args:   []interface{}{7, rfdc.EventSourceSlice},
			want:   map[string]interface{}{"CoarseDelay": int64(7), "EventSource": int64(1)},
		},
		{
			field:  rfdc.FieldCalFreeze,
			target: adc00,
			args:   []interface{}{rfdc.CalFreeze},
			want:   map[string]interface{}{"CalFrozen": int64(1), "DisableFreezePin": int64(0), "FreezeCalibration": int64(1)},
		},
	}
	for _, c := range cases {
		t.Run(c.field, func(t *testing.T) {
			set, err := client.Set(c.target, c.field, c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, set.Values)
			get, err := client.Get(c.target, c.field)
			require.NoError(t, err)
			assert.Equal(t, set.Values, get.Values)
		})
	}
}

func TestSetReadbackFollowsWithGet(t *testing.T) {
	peer, client := newSim()
	result, err := client.Set(adc00, rfdc.FieldCalCoeffs, rfdc.CalBlockGCB, 1, 2, 3, 4, 5, 6, 7, 8)
	require.NoError(t, err)
	v, ok := result.Int("Coeff7")
	require.True(t, ok)
	assert.Equal(t, int64(8), v)

	calls := peer.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "rfdc-set-cal-coeffs", calls[0].Name)
	assert.Equal(t, "rfdc-get-cal-coeffs", calls[1].Name)
	assert.Equal(t, []string{"0", "0", "2"}, calls[1].Args)

	// other calibration blocks keep their own coefficients
	other, err := client.Get(adc00, rfdc.FieldCalCoeffs, rfdc.CalBlockOCB1)
	require.NoError(t, err)
	v, _ = other.Int("Coeff7")
	assert.Equal(t, int64(0), v)

	require.NoError(t, client.DisableUserCoeffs(adc00, rfdc.CalBlockGCB))
	result, err = client.Get(adc00, rfdc.FieldCalCoeffs, rfdc.CalBlockGCB)
	require.NoError(t, err)
	v, _ = result.Int("Coeff7")
	assert.Equal(t, int64(0), v)
}

func TestSetReadbackUnexpectedInform(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{
		"rfdc-set-pll-config": {"Enabled 1, RefClkFreq 245.76, SampleRate 3932.16"},
	}}
	_, err := rfdc.NewClient(transport, timeout).Set(adc00, rfdc.FieldPLLConfig, 1, 245.76, 3932.16)
	assert.IsType(t, rfdc.ErrMalformedResponse{}, err)
}

func TestSetPLLConfig(t *testing.T) {
	_, client := newSim()
	result, err := client.Set(dac00, rfdc.FieldPLLConfig, rfdc.ClkSrcInternal, 250.0, 4000.0)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"Enabled": 1.0, "RefClkFreq": 250.0, "SampleRate": 4000.0}, result.Values)
}

func TestAttenuationSetThenGet(t *testing.T) {
	peer, client := newSim()
	set, err := client.Set(adc01, rfdc.FieldDSA, 7.5)
	require.NoError(t, err)
	get, err := client.Get(adc01, rfdc.FieldDSA)
	require.NoError(t, err)
	setValue, _ := set.Str("Attenuation")
	getValue, _ := get.Str("Attenuation")
	assert.Equal(t, "7.5", setValue)
	assert.Equal(t, setValue, getValue)

	calls := peer.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, sim.Call{Name: "rfdc-set-dsa", Args: []string{"0", "1", "7.5"}}, calls[0])
	assert.Equal(t, sim.Call{Name: "rfdc-get-dsa", Args: []string{"0", "1"}}, calls[1])
}

func TestScanCoversEveryAddress(t *testing.T) {
	peer, client := newSim()
	entries, err := client.Scan(rfdc.ADC, rfdc.FieldNyquistZone)
	require.NoError(t, err)
	require.Len(t, entries, 16)

	enabled := map[rfdc.Target]bool{adc00: true, adc01: true, rfdc.NewTarget(rfdc.ADC, 2, 3): true}
	seen := map[rfdc.Target]bool{}
	for _, entry := range entries {
		assert.False(t, seen[entry.Target])
		seen[entry.Target] = true
		if enabled[entry.Target] {
			assert.False(t, entry.Result.Disabled, entry.Target.String())
			assert.Equal(t, map[string]interface{}{"NyquistZone": int64(1)}, entry.Result.Values)
		} else {
			assert.True(t, entry.Result.Disabled, entry.Target.String())
			assert.Nil(t, entry.Result.Values)
		}
	}
	assert.Len(t, seen, 16)
	assert.Len(t, peer.Calls(), 16)
}

func TestScanAbortsOnTransportError(t *testing.T) {
	peer, client := newSim()
	cause := errors.New("connection reset")
	peer.FailNext(cause)
	entries, err := client.Scan(rfdc.DAC, rfdc.FieldIMRMode)
	require.Error(t, err)
	assert.Nil(t, entries)
	assert.ErrorIs(t, err, cause)
	assert.Len(t, peer.Calls(), 1)
}

func TestTransportErrorWrapped(t *testing.T) {
	peer, client := newSim()
	cause := errors.New("timeout")
	peer.FailNext(cause)
	_, err := client.Get(adc00, rfdc.FieldDataType)
	require.Error(t, err)
	var transportErr rfdc.ErrTransport
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "rfdc-get-datatype", transportErr.Request)
	assert.ErrorIs(t, err, cause)

	// a failed reply from the peer is a transport error as well
	_, err = client.Get(adc00, rfdc.FieldCalCoeffs, "x")
	require.True(t, errors.As(err, &transportErr))
	var failed katcp.ErrRequestFailed
	require.True(t, errors.As(err, &failed))
	assert.Equal(t, katcp.StatusInvalid, failed.Status)
}

func TestMalformedFromPeer(t *testing.T) {
	peer, client := newSim()
	peer.SetMalformed("rfdc-get-cal-freeze", "CalFrozen 1, DisableFreezePin 0, FreezeCalibration yes")
	result, err := client.Get(adc00, rfdc.FieldCalFreeze)
	require.Error(t, err)
	assert.IsType(t, rfdc.ErrMalformedResponse{}, err)
	assert.Nil(t, result)

	peer.ClearMalformed("rfdc-get-cal-freeze")
	result, err = client.Get(adc00, rfdc.FieldCalFreeze)
	require.NoError(t, err)
	assert.NotNil(t, result)
}

func TestNoInform(t *testing.T) {
	client := rfdc.NewClient(&scripted{}, timeout)
	_, err := client.Get(adc00, rfdc.FieldDataWidth)
	assert.IsType(t, rfdc.ErrMalformedResponse{}, err)
}

func TestArgumentErrors(t *testing.T) {
	_, client := newSim()
	_, err := client.Get(adc00, "temperature")
	assert.Equal(t, rfdc.ErrUnknownField{Name: "temperature"}, err)

	_, err = client.Get(adc00, rfdc.FieldCalCoeffs)
	assert.Equal(t, rfdc.ErrArgs{Field: rfdc.FieldCalCoeffs, Want: 1, Got: 0}, err)

	_, err = client.Set(adc00, rfdc.FieldNyquistZone)
	assert.Equal(t, rfdc.ErrArgs{Field: rfdc.FieldNyquistZone, Want: 1, Got: 0}, err)

	_, err = client.Set(adc00, rfdc.FieldDataWidth, 16)
	assert.Equal(t, rfdc.ErrReadOnly{Field: rfdc.FieldDataWidth}, err)

	_, err = client.Get(adc00, rfdc.FieldOutputCurrent)
	assert.Equal(t, rfdc.ErrWrongKind{Field: rfdc.FieldOutputCurrent, Kind: rfdc.ADC}, err)

	_, err = client.Scan(rfdc.ADC, rfdc.FieldCalCoeffs)
	assert.IsType(t, rfdc.ErrArgs{}, err)
}

func TestOutOfRangeIsNotChecked(t *testing.T) {
	transport := &scripted{payloads: map[string][]string{"rfdc-get-datatype": {"(disabled)"}}}
	target := rfdc.NewTarget(rfdc.ADC, 7, 9)
	require.Error(t, target.Validate())
	result, err := rfdc.NewClient(transport, timeout).Get(target, rfdc.FieldDataType)
	require.NoError(t, err)
	assert.True(t, result.Disabled)
	assert.Equal(t, []interface{}{7, 9, rfdc.ADC}, transport.args[0])
}

func TestRunMTSReplacesReport(t *testing.T) {
	peer, client := newSim()
	assert.Empty(t, client.MTSReport())

	require.NoError(t, client.RunMTS(0b1111))
	first := client.MTSReport()
	require.Len(t, first, 3)
	assert.Equal(t, "ADC0: Latency 64, DelayMarker 8, DelayBit 1", first[0])
	assert.Equal(t, "MTS done, synced tile mask 5", first[2])

	// the copy is not the client state
	first[0] = "changed"
	assert.NotEqual(t, "changed", client.MTSReport()[0])

	require.NoError(t, client.RunMTS(0b0001))
	assert.Len(t, client.MTSReport(), 2)

	peer.FailNext(errors.New("down"))
	require.Error(t, client.RunMTS(0b1111))
	assert.Empty(t, client.MTSReport())

	_, other := newSim()
	assert.Empty(t, other.MTSReport())
}

func TestReportMixerStatus(t *testing.T) {
	peer, client := newSim()
	lines, err := client.UpdateNCOMTS(0b11, 0b1, 1024.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"ADC 0 0: NCO 1024.5 MHz", "ADC 0 1: NCO 1024.5 MHz", "DAC 0 0: NCO 1024.5 MHz"}, lines)

	// adc 0:0, adc 1:2 and dac 0:0
	reports, err := client.ReportMixerStatus(1|1<<6, 1)
	require.NoError(t, err)
	require.Len(t, reports, 3)
	assert.Equal(t, adc00, reports[0].Target)
	assert.Equal(t, "Freq: 1024.5", reports[0].Lines[0])
	assert.Equal(t, adc12, reports[1].Target)
	assert.Equal(t, []string{rfdc.Disabled}, reports[1].Lines)
	assert.Equal(t, dac00, reports[2].Target)

	calls := peer.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, []string{"1", "2", "adc"}, calls[2].Args)
}

func TestActions(t *testing.T) {
	peer, client := newSim()
	require.NoError(t, client.UpdateEvent(adc00, rfdc.EventQMC))
	err := client.UpdateEvent(adc00, 3)
	require.Error(t, err)
	assert.IsType(t, rfdc.ErrTransport{}, err)

	require.NoError(t, client.Init("", "", false))
	assert.True(t, peer.Initialized())
	_, ok := peer.PLLFile(rfdc.PLLTypeLMK)
	assert.False(t, ok)

	assert.IsType(t, rfdc.ErrWrongKind{}, client.DisableUserCoeffs(dac00, 0))
	assert.Equal(t, rfdc.ErrInvalidPLL{Name: "lmz"}, client.ProgPLL("LMZ", "", false))

	require.NoError(t, client.ProgPLL(rfdc.PLLTypeLMK, "", false))
	file, ok := peer.PLLFile(rfdc.PLLTypeLMK)
	require.True(t, ok)
	assert.Equal(t, "rfpll.txt", file)
}

func TestInitProgramsPLLs(t *testing.T) {
	peer, client := newSim()
	dir := t.TempDir()
	lmk := filepath.Join(dir, "lmk_245.txt")
	lmx := filepath.Join(dir, "lmx_3932.txt")
	require.NoError(t, os.WriteFile(lmk, []byte("R0"), 0644))
	require.NoError(t, os.WriteFile(lmx, []byte("R1"), 0644))

	// without upload the files must already be on the board
	err := client.Init(lmk, "", false)
	require.Error(t, err)
	assert.False(t, peer.Initialized())

	require.NoError(t, client.Init(lmk, lmx, true))
	assert.True(t, peer.Initialized())
	file, _ := peer.PLLFile(rfdc.PLLTypeLMK)
	assert.Equal(t, "lmk_245.txt", file)
	file, _ = peer.PLLFile(rfdc.PLLTypeLMX)
	assert.Equal(t, "lmx_3932.txt", file)

	var names []string
	for _, call := range peer.Calls() {
		names = append(names, call.Name)
	}
	assert.Equal(t, []string{rfdc.RequestProgPLL, rfdc.RequestProgPLL, rfdc.RequestProgPLL, rfdc.RequestInit}, names)
}

func TestApplyDTO(t *testing.T) {
	peer, client := newSim()
	_, err := client.ApplyDTO("")
	require.Error(t, err)
	assert.IsType(t, rfdc.ErrTransport{}, err)

	path := filepath.Join(t.TempDir(), "design.dtbo")
	require.NoError(t, os.WriteFile(path, []byte("overlay"), 0644))
	applied, err := client.ApplyDTO(path)
	require.NoError(t, err)
	assert.True(t, applied)
	data, ok := peer.File(rfdc.DTOFile)
	require.True(t, ok)
	assert.Equal(t, []byte("overlay"), data)
	_, ok = peer.File("design.dtbo")
	assert.False(t, ok)

	applied, err = client.ApplyDTO("")
	require.NoError(t, err)
	assert.True(t, applied)

	_, err = client.ApplyDTO(filepath.Join(t.TempDir(), "absent.dtbo"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestClkFiles(t *testing.T) {
	peer, client := newSim()
	peer.PutFile("design.fpg", []byte("fpg"))
	peer.PutFile("lmk_245.txt", []byte("R0"))

	dir := t.TempDir()
	path := filepath.Join(dir, "lmx_3932.txt")
	require.NoError(t, os.WriteFile(path, []byte("R1"), 0644))

	uploaded, err := client.UploadClkFile(path, false)
	require.NoError(t, err)
	assert.True(t, uploaded)

	uploaded, err = client.UploadClkFile(path, false)
	require.NoError(t, err)
	assert.False(t, uploaded)

	uploaded, err = client.UploadClkFile(path, true)
	require.NoError(t, err)
	assert.True(t, uploaded)

	_, err = client.UploadClkFile(filepath.Join(dir, "absent.txt"), true)
	require.Error(t, err)

	files, err := client.ClkFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"lmk_245.txt", "lmx_3932.txt"}, files)

	require.NoError(t, client.ProgPLL(rfdc.PLLTypeLMX, path, false))
	file, _ := peer.PLLFile(rfdc.PLLTypeLMX)
	assert.Equal(t, "lmx_3932.txt", file)
	assert.Error(t, client.ProgPLL(rfdc.PLLTypeLMX, "/nowhere/other.txt", false))

	require.NoError(t, client.DelClkFile("lmk_245.txt"))
	assert.Error(t, client.DelClkFile("lmk_245.txt"))
	files, err = client.ClkFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"lmx_3932.txt"}, files)
}

func TestNoFilesystem(t *testing.T) {
	client := rfdc.NewClient(&scripted{}, timeout)
	_, err := client.ClkFiles()
	assert.Equal(t, rfdc.ErrNoFilesystem{}, err)

	peer := sim.New()
	client.WithFilesystem(peer)
	files, err := client.ClkFiles()
	require.NoError(t, err)
	assert.Empty(t, files)
}

// counted records how many times it was formatted
type counted struct {
	n int
}

func (c *counted) String() string {
	c.n++
	return fmt.Sprintf("arg%d", c.n)
}

func TestRequestLogsOnlyAtDebug(t *testing.T) {
	out := &bytes.Buffer{}
	t.Cleanup(func() { log.Init(os.Stderr, "info") })
	client := rfdc.NewClient(&scripted{}, timeout)
	arg := &counted{}

	require.NoError(t, log.Init(out, "info"))
	require.NoError(t, client.Action(rfdc.RequestInit, arg))
	assert.Equal(t, 0, arg.n)
	assert.Empty(t, out.String())

	require.NoError(t, log.Init(out, "debug"))
	require.NoError(t, client.Action(rfdc.RequestInit, arg))
	assert.Equal(t, 1, arg.n)
	assert.Contains(t, out.String(), "Request ?"+rfdc.RequestInit+" arg1")
}
