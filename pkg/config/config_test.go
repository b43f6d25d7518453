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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "127.0.0.1:8004", cfg.Address())

	board, err := cfg.GetBoardByName(DefaultBoardName)
	require.NoError(t, err)
	timeout, err := board.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)
}

func TestPersistAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", ConfigFile)
	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	cfg.LogLevel = "debug"
	cfg.Boards = append(cfg.Boards, &Board{
		Name:           "zcu216",
		Transport:      TransportRest,
		URL:            "http://10.0.0.5:5001",
		RequestTimeout: "3s",
	})
	require.NoError(t, cfg.Persist(false))

	err := cfg.Persist(false)
	require.Error(t, err)
	assert.Equal(t, ErrConfigFileExists{Path: path}, err)
	require.NoError(t, cfg.Persist(true))

	loaded := NewDefaultConfig()
	loaded.SetPath(path)
	require.NoError(t, loaded.Load())
	assert.Equal(t, "debug", loaded.LogLevel)
	require.Len(t, loaded.Boards, 2)
	board, err := loaded.GetBoardByName("zcu216")
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:5001", board.URL)
	timeout, err := board.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, timeout)
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.SetPath(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, cfg.Load())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoadBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("boards: [\n"), 0644))
	cfg := NewDefaultConfig()
	cfg.SetPath(path)
	require.Error(t, cfg.Load())
}

func TestGetBoardByNameNotFound(t *testing.T) {
	_, err := NewDefaultConfig().GetBoardByName("nope")
	assert.Equal(t, ErrBoardNotFound{Name: "nope"}, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(cfg *Config){
		"duplicate board": func(cfg *Config) {
			cfg.Boards = append(cfg.Boards, &Board{Name: DefaultBoardName, Transport: TransportSim})
		},
		"rest without url": func(cfg *Config) {
			cfg.Boards[0].Transport = TransportRest
		},
		"unknown transport": func(cfg *Config) {
			cfg.Boards[0].Transport = "serial"
		},
		"bad timeout": func(cfg *Config) {
			cfg.Boards[0].RequestTimeout = "soon"
		},
		"no api": func(cfg *Config) {
			cfg.ApiConfig = nil
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.IsType(t, ErrInvalidConfig{}, err)
		})
	}
}
