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

package api

import (
	"sync"
	"time"

	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/rest"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/sim"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

// Board is a configured board with its own client. RunMTS calls are
// serialized per board, the client keeps the report.
type Board struct {
	*config.Board
	Client *rfdc.Client
	mts    sync.Mutex
}

func NewBoard(cfg *config.Board) (*Board, error) {
	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}
	transport, err := NewTransport(cfg, timeout)
	if err != nil {
		return nil, err
	}
	return &Board{
		Board:  cfg,
		Client: rfdc.NewClient(transport, timeout),
	}, nil
}

// NewTransport creates the transport a board is configured with
func NewTransport(cfg *config.Board, timeout time.Duration) (katcp.Transport, error) {
	switch cfg.Transport {
	case config.TransportRest:
		return rest.NewTransport(cfg.URL, timeout), nil
	case config.TransportSim:
		return sim.NewFromStrings(cfg.SimEnabled)
	}
	return nil, ErrUnknownTransport{Board: cfg.Name, Transport: cfg.Transport}
}

// RunMTS runs synchronization and returns the fresh report
func (b *Board) RunMTS(tileMask int) ([]string, error) {
	b.mts.Lock()
	defer b.mts.Unlock()
	if err := b.Client.RunMTS(tileMask); err != nil {
		return nil, err
	}
	return b.Client.MTSReport(), nil
}

func (b *Board) MTSReport() []string {
	b.mts.Lock()
	defer b.mts.Unlock()
	return b.Client.MTSReport()
}
