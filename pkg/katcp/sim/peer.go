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

// Package sim is an in-memory RFDC peer. It answers rfdc-* requests the way
// tcpborphserver does and keeps written values per address, so clients can
// be exercised without a board.
package sim

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

// Call is a request received by the peer
type Call struct {
	Name string
	Args []string
}

type fieldRequest struct {
	field *rfdc.Field
	set   bool
}

type Peer struct {
	mu        sync.Mutex
	enabled   map[rfdc.Target]bool
	store     map[string]*values
	nco       map[rfdc.Target]string
	plls      map[string]string
	files     map[string][]byte
	requests  map[string]fieldRequest
	malformed map[string]string
	failNext  error
	calls     []Call
	initDone  bool
}

var _ katcp.Transport = &Peer{}
var _ katcp.Filesystem = &Peer{}

// New creates a peer where only the given targets are enabled
func New(enabled ...rfdc.Target) *Peer {
	p := &Peer{
		enabled:   map[rfdc.Target]bool{},
		store:     map[string]*values{},
		nco:       map[rfdc.Target]string{},
		plls:      map[string]string{},
		files:     map[string][]byte{},
		requests:  map[string]fieldRequest{},
		malformed: map[string]string{},
	}
	for _, target := range enabled {
		p.enabled[target] = true
	}
	for _, field := range rfdc.Fields() {
		p.requests[field.GetRequest] = fieldRequest{field: field}
		if !field.ReadOnly() {
			p.requests[field.SetRequest] = fieldRequest{field: field, set: true}
		}
	}
	return p
}

// NewFromStrings creates a peer from kind:tile:block strings
func NewFromStrings(enabled []string) (*Peer, error) {
	targets := make([]rfdc.Target, 0, len(enabled))
	for _, s := range enabled {
		target, err := rfdc.ParseTarget(s)
		if err != nil {
			return nil, err
		}
		targets = append(targets, target)
	}
	return New(targets...), nil
}

func (p *Peer) Enable(target rfdc.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.enabled[target] = true
}

func (p *Peer) Disable(target rfdc.Target) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.enabled, target)
}

// FailNext makes the next request or filesystem operation fail with err
func (p *Peer) FailNext(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.failNext = err
}

// SetMalformed makes the peer answer every request with the given name with payload
func (p *Peer) SetMalformed(name, payload string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.malformed[name] = payload
}

func (p *Peer) ClearMalformed(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.malformed, name)
}

// Calls returns the requests received so far
func (p *Peer) Calls() []Call {
	p.mu.Lock()
	defer p.mu.Unlock()
	calls := make([]Call, len(p.calls))
	copy(calls, p.calls)
	return calls
}

// Initialized tells if rfdc-init has been received
func (p *Peer) Initialized() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initDone
}

// PLLFile returns the file the PLL was last programmed with
func (p *Peer) PLLFile(pll string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	file, ok := p.plls[pll]
	return file, ok
}

func (p *Peer) takeFailure() error {
	err := p.failNext
	p.failNext = nil
	return err
}

func (p *Peer) Request(name string, timeout time.Duration, args ...interface{}) (*katcp.Reply, []*katcp.Inform, error) {
	text, err := katcp.FormatArgs(args...)
	if err != nil {
		return nil, nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, Call{Name: name, Args: text})
	if err := p.takeFailure(); err != nil {
		return nil, nil, err
	}
	if payload, ok := p.malformed[name]; ok {
		return &katcp.Reply{Name: name, Status: katcp.StatusOk}, []*katcp.Inform{katcp.NewInform(name, payload)}, nil
	}

	payloads, err := p.handle(name, text)
	if err != nil {
		failure, ok := err.(katcp.ErrRequestFailed)
		if !ok {
			return nil, nil, err
		}
		return &katcp.Reply{Name: name, Status: failure.Status, Arguments: failure.Arguments}, nil, failure
	}
	informs := make([]*katcp.Inform, 0, len(payloads))
	for _, payload := range payloads {
		informs = append(informs, katcp.NewInform(name, payload))
	}
	return &katcp.Reply{Name: name, Status: katcp.StatusOk, Arguments: []string{strconv.Itoa(len(informs))}}, informs, nil
}

func invalid(name, format string, v ...interface{}) error {
	return katcp.ErrRequestFailed{Name: name, Status: katcp.StatusInvalid, Arguments: []string{fmt.Sprintf(format, v...)}}
}

func fail(name, format string, v ...interface{}) error {
	return katcp.ErrRequestFailed{Name: name, Status: katcp.StatusFail, Arguments: []string{fmt.Sprintf(format, v...)}}
}

func (p *Peer) handle(name string, args []string) ([]string, error) {
	switch name {
	case rfdc.RequestStatus:
		return p.status(), nil
	case rfdc.RequestRunMTS:
		return p.runMTS(name, args)
	case rfdc.RequestUpdateNCOMTS:
		return p.updateNCOMTS(name, args)
	case rfdc.RequestReportMixer:
		return p.reportMixer(name, args)
	case rfdc.RequestUpdateEvent:
		return p.updateEvent(name, args)
	case rfdc.RequestDisableUserCoeffs:
		return p.disableUserCoeffs(name, args)
	case rfdc.RequestInit:
		p.initDone = true
		return nil, nil
	case rfdc.RequestProgPLL:
		return p.progPLL(name, args)
	case rfdc.RequestDTO:
		if len(args) != 1 || args[0] != "apply" {
			return nil, invalid(name, "usage: dto apply")
		}
		if _, ok := p.files[rfdc.DTOFile]; !ok {
			return nil, fail(name, "overlay %s not found", rfdc.DTOFile)
		}
		return []string{"applied\n"}, nil
	}
	request, ok := p.requests[name]
	if !ok {
		return nil, invalid(name, "unknown request %s", name)
	}
	if request.set {
		return p.set(name, request.field, args)
	}
	return p.get(name, request.field, args)
}

func parseInt(name, what, value string) (int, error) {
	v, err := strconv.Atoi(value)
	if err != nil {
		return 0, invalid(name, "bad %s %q", what, value)
	}
	return v, nil
}

func parseKind(name, value string) (rfdc.ConverterKind, error) {
	kind, err := rfdc.ParseConverterKind(value)
	if err != nil {
		return rfdc.ADC, invalid(name, "bad converter type %q", value)
	}
	return kind, nil
}

// tileBlockKind parses tile, block, kind
func tileBlockKind(name string, args []string) (rfdc.Target, error) {
	if len(args) < 3 {
		return rfdc.Target{}, invalid(name, "want tile, block and converter type")
	}
	tile, err := parseInt(name, "tile", args[0])
	if err != nil {
		return rfdc.Target{}, err
	}
	block, err := parseInt(name, "block", args[1])
	if err != nil {
		return rfdc.Target{}, err
	}
	kind, err := parseKind(name, args[2])
	if err != nil {
		return rfdc.Target{}, err
	}
	return rfdc.NewTarget(kind, tile, block), nil
}

func (p *Peer) address(name string, field *rfdc.Field, args []string) (rfdc.Target, []string, error) {
	switch field.Address {
	case rfdc.TileKind:
		if len(args) < 2 {
			return rfdc.Target{}, nil, invalid(name, "want tile and converter type")
		}
		tile, err := parseInt(name, "tile", args[0])
		if err != nil {
			return rfdc.Target{}, nil, err
		}
		kind, err := parseKind(name, args[1])
		if err != nil {
			return rfdc.Target{}, nil, err
		}
		return rfdc.NewTarget(kind, tile, 0), args[2:], nil
	case rfdc.TileBlockKind:
		target, err := tileBlockKind(name, args)
		if err != nil {
			return rfdc.Target{}, nil, err
		}
		return target, args[3:], nil
	default:
		if len(args) < 2 {
			return rfdc.Target{}, nil, invalid(name, "want tile and block")
		}
		tile, err := parseInt(name, "tile", args[0])
		if err != nil {
			return rfdc.Target{}, nil, err
		}
		block, err := parseInt(name, "block", args[1])
		if err != nil {
			return rfdc.Target{}, nil, err
		}
		return rfdc.NewTarget(field.Only, tile, block), args[2:], nil
	}
}

func (p *Peer) tileEnabled(kind rfdc.ConverterKind, tile int) bool {
	for block := 0; block < rfdc.NumBlocks; block++ {
		if p.enabled[rfdc.NewTarget(kind, tile, block)] {
			return true
		}
	}
	return false
}

func (p *Peer) active(field *rfdc.Field, target rfdc.Target) bool {
	if field.Address == rfdc.TileKind {
		return p.tileEnabled(target.Kind, target.Tile)
	}
	return p.enabled[target]
}

func storeKey(field *rfdc.Field, target rfdc.Target, extra []string) string {
	return fmt.Sprintf("%s|%s|%s", field.Name, target, strings.Join(extra, " "))
}

func (p *Peer) values(field *rfdc.Field, target rfdc.Target, extra []string) *values {
	key := storeKey(field, target, extra)
	v, ok := p.store[key]
	if !ok {
		v = newValues(models[field.Name])
		p.store[key] = v
	}
	return v
}

func (p *Peer) get(name string, field *rfdc.Field, args []string) ([]string, error) {
	target, rest, err := p.address(name, field, args)
	if err != nil {
		return nil, err
	}
	if len(rest) != field.GetArgs {
		return nil, invalid(name, "want %d extra arguments, got %d", field.GetArgs, len(rest))
	}
	if err := checkExtra(name, rest); err != nil {
		return nil, err
	}
	if !p.active(field, target) {
		return []string{rfdc.Disabled}, nil
	}
	return []string{p.values(field, target, rest).render(field.Shape)}, nil
}

func (p *Peer) set(name string, field *rfdc.Field, args []string) ([]string, error) {
	target, rest, err := p.address(name, field, args)
	if err != nil {
		return nil, err
	}
	if len(rest) != field.SetArgs {
		return nil, invalid(name, "want %d arguments, got %d", field.SetArgs, len(rest))
	}
	if !p.active(field, target) {
		return []string{rfdc.Disabled}, nil
	}

	m := models[field.Name]
	extra, writes := rest[:field.GetArgs], rest[field.GetArgs:]
	if err := checkExtra(name, extra); err != nil {
		return nil, err
	}
	if len(writes) != len(m.setKeys) {
		return nil, invalid(name, "want %d values, got %d", len(m.setKeys), len(writes))
	}
	formatted := make([]string, len(writes))
	for i, value := range writes {
		if m.format != nil {
			value, err = m.format(value)
			if err != nil {
				return nil, fail(name, "bad value %q", writes[i])
			}
		} else if err := check(value, field.KindOf(m.setKeys[i][0])); err != nil {
			return nil, fail(name, "bad value %q", value)
		}
		formatted[i] = value
	}

	v := p.values(field, target, extra)
	for i, value := range formatted {
		for _, key := range m.setKeys[i] {
			v.data[key] = value
		}
	}
	if field.Readback {
		return nil, nil
	}
	return []string{v.render(field.Shape)}, nil
}

// checkExtra validates extra get arguments, the calibration block is the only one
func checkExtra(name string, extra []string) error {
	for _, arg := range extra {
		if _, err := parseInt(name, "calibration block", arg); err != nil {
			return err
		}
	}
	return nil
}

func check(value string, kind rfdc.ValueKind) error {
	var err error
	switch kind {
	case rfdc.Int:
		_, err = strconv.ParseInt(value, 10, 64)
	case rfdc.Float:
		_, err = strconv.ParseFloat(value, 64)
	}
	return err
}

func (p *Peer) status() []string {
	var lines []string
	for _, kind := range []rfdc.ConverterKind{rfdc.ADC, rfdc.DAC} {
		for tile := 0; tile < rfdc.NumTiles; tile++ {
			label := fmt.Sprintf("%s%d", kind.Label(), tile)
			if p.tileEnabled(kind, tile) {
				lines = append(lines, fmt.Sprintf("%s: Enabled 1, State 15, PLL %d", label, rfdc.PLLLocked))
			} else {
				lines = append(lines, fmt.Sprintf("%s: Enabled 0", label))
			}
		}
	}
	return lines
}

func (p *Peer) runMTS(name string, args []string) ([]string, error) {
	if len(args) != 1 {
		return nil, invalid(name, "want tile mask")
	}
	mask, err := parseInt(name, "tile mask", args[0])
	if err != nil {
		return nil, err
	}
	var lines []string
	synced := 0
	for tile := 0; tile < rfdc.NumTiles; tile++ {
		if (mask>>tile)&1 == 0 || !p.tileEnabled(rfdc.ADC, tile) {
			continue
		}
		synced |= 1 << tile
		lines = append(lines, fmt.Sprintf("ADC%d: Latency %d, DelayMarker %d, DelayBit %d", tile, 64+2*tile, 8+tile, 1))
	}
	if synced == 0 {
		return nil, fail(name, "no enabled tiles in mask %d", mask)
	}
	lines = append(lines, fmt.Sprintf("MTS done, synced tile mask %d", synced))
	return lines, nil
}

func parseMask(name, value string) (uint16, error) {
	mask, err := strconv.ParseUint(value, 10, 16)
	if err != nil {
		return 0, invalid(name, "bad mask %q", value)
	}
	return uint16(mask), nil
}

func (p *Peer) updateNCOMTS(name string, args []string) ([]string, error) {
	if len(args) != 3 {
		return nil, invalid(name, "want adc mask, dac mask and frequency")
	}
	adcMask, err := parseMask(name, args[0])
	if err != nil {
		return nil, err
	}
	dacMask, err := parseMask(name, args[1])
	if err != nil {
		return nil, err
	}
	if _, err := strconv.ParseFloat(args[2], 64); err != nil {
		return nil, invalid(name, "bad frequency %q", args[2])
	}
	var lines []string
	for _, selection := range []struct {
		kind rfdc.ConverterKind
		mask uint16
	}{{rfdc.ADC, adcMask}, {rfdc.DAC, dacMask}} {
		for _, target := range rfdc.AllTargets(selection.kind) {
			if (selection.mask>>target.MaskBit())&1 == 0 || !p.enabled[target] {
				continue
			}
			p.nco[target] = args[2]
			lines = append(lines, fmt.Sprintf("%s %d %d: NCO %s MHz", target.Kind.Label(), target.Tile, target.Block, args[2]))
		}
	}
	return lines, nil
}

func (p *Peer) reportMixer(name string, args []string) ([]string, error) {
	if len(args) != 3 {
		return nil, invalid(name, "want tile, block and converter type")
	}
	target, err := tileBlockKind(name, args)
	if err != nil {
		return nil, err
	}
	if !p.enabled[target] {
		return []string{rfdc.Disabled}, nil
	}
	freq, ok := p.nco[target]
	if !ok {
		freq = "0"
	}
	return []string{
		"Freq: " + freq,
		"PhaseOffset: 0",
		"EventSource: 0",
		"CoarseMixFreq: 0",
		"MixerMode: 2",
		"FineMixerScale: 0",
		"MixerType: 2",
	}, nil
}

func (p *Peer) updateEvent(name string, args []string) ([]string, error) {
	if len(args) != 4 {
		return nil, invalid(name, "want tile, block, converter type and event")
	}
	if _, err := tileBlockKind(name, args); err != nil {
		return nil, err
	}
	event, err := parseInt(name, "event", args[3])
	if err != nil {
		return nil, err
	}
	switch event {
	case rfdc.EventMixer, rfdc.EventCoarseDelay, rfdc.EventQMC:
		return nil, nil
	}
	return nil, fail(name, "unknown event %d", event)
}

func (p *Peer) disableUserCoeffs(name string, args []string) ([]string, error) {
	if len(args) != 3 {
		return nil, invalid(name, "want tile, block and calibration block")
	}
	tile, err := parseInt(name, "tile", args[0])
	if err != nil {
		return nil, err
	}
	block, err := parseInt(name, "block", args[1])
	if err != nil {
		return nil, err
	}
	if _, err := parseInt(name, "calibration block", args[2]); err != nil {
		return nil, err
	}
	field, _ := rfdc.LookupField(rfdc.FieldCalCoeffs)
	delete(p.store, storeKey(field, rfdc.NewTarget(rfdc.ADC, tile, block), args[2:]))
	return nil, nil
}

func (p *Peer) progPLL(name string, args []string) ([]string, error) {
	if len(args) < 1 || len(args) > 2 {
		return nil, invalid(name, "want pll type and optional file")
	}
	pll := args[0]
	if pll != rfdc.PLLTypeLMK && pll != rfdc.PLLTypeLMX {
		return nil, invalid(name, "bad pll type %q", pll)
	}
	file := "rfpll.txt"
	if len(args) == 2 {
		file = args[1]
		if _, ok := p.files[file]; !ok {
			return nil, fail(name, "file %s not found", file)
		}
	}
	p.plls[pll] = file
	return nil, nil
}

// Upload stores a local file under its base name
func (p *Peer) Upload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.takeFailure(); err != nil {
		return err
	}
	p.files[filepath.Base(path)] = data
	return nil
}

func (p *Peer) List() ([]string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.takeFailure(); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(p.files))
	for name := range p.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (p *Peer) Delete(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.takeFailure(); err != nil {
		return err
	}
	if _, ok := p.files[name]; !ok {
		return fail(rfdc.RequestDeleteFile, "file %s not found", name)
	}
	delete(p.files, name)
	return nil
}

// File returns the content of a stored file
func (p *Peer) File(name string) ([]byte, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	data, ok := p.files[name]
	return data, ok
}

// PutFile stores a file as if it had been uploaded
func (p *Peer) PutFile(name string, data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.files[name] = data
}
