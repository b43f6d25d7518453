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
	"fmt"
	"os"
	"path/filepath"
	"time"

	"sigs.k8s.io/yaml"
)

// Board describes one FPGA board and the transport used to reach its KATCP server
type Board struct {
	Name      string `json:"name"`
	Transport string `json:"transport"`
	// URL is the base URL of the REST gateway, only used by the rest transport
	URL string `json:"url,omitempty"`
	// RequestTimeout is a duration string, e.g. 10s
	RequestTimeout string `json:"request_timeout,omitempty"`
	// SimEnabled lists enabled converters as kind:tile:block, only used by the sim transport
	SimEnabled []string `json:"sim_enabled,omitempty"`
}

// Timeout returns parsed RequestTimeout or the default one if it is not set
func (b *Board) Timeout() (time.Duration, error) {
	value := b.RequestTimeout
	if value == "" {
		value = DefaultRequestTimeout
	}
	return time.ParseDuration(value)
}

type ApiConfig struct {
	IP   string `json:"ip,omitempty"`
	Port int    `json:"port,omitempty"`
}

// Address returns ip:port the API server binds to
func (c *ApiConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.IP, c.Port)
}

type Config struct {
	LogLevel   string `json:"log_level,omitempty"`
	StatePath  string `json:"state_path,omitempty"`
	*ApiConfig `json:"api,omitempty"`
	Boards     []*Board `json:"boards"`
	filepath   string
}

// Path returns the location of the config file
func (c *Config) Path() string {
	return c.filepath
}

// SetPath changes the location the config is loaded from and persisted to
func (c *Config) SetPath(path string) {
	c.filepath = path
}

func (c *Config) Persist(overwrite bool) error {
	if _, err := os.Stat(c.filepath); err == nil && !overwrite {
		return ErrConfigFileExists{Path: c.filepath}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(c.filepath), 0755)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filepath, data, 0644)
}

// Load reads the config file over the current values.
// A missing file is not an error, defaults stay in place.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Validate checks the values that can not be checked by unmarshalling
func (c *Config) Validate() error {
	if c.ApiConfig == nil {
		return ErrInvalidConfig{What: "api section is missing"}
	}
	names := map[string]bool{}
	for _, board := range c.Boards {
		if board.Name == "" {
			return ErrInvalidConfig{What: "board name is empty"}
		}
		if names[board.Name] {
			return ErrInvalidConfig{What: fmt.Sprintf("duplicate board name %s", board.Name)}
		}
		names[board.Name] = true
		switch board.Transport {
		case TransportRest:
			if board.URL == "" {
				return ErrInvalidConfig{What: fmt.Sprintf("board %s: url is required for rest transport", board.Name)}
			}
		case TransportSim:
		default:
			return ErrInvalidConfig{What: fmt.Sprintf("board %s: unknown transport %q", board.Name, board.Transport)}
		}
		if _, err := board.Timeout(); err != nil {
			return ErrInvalidConfig{What: fmt.Sprintf("board %s: %s", board.Name, err)}
		}
	}
	return nil
}

func (c *Config) GetBoardByName(name string) (*Board, error) {
	for _, board := range c.Boards {
		if board.Name == name {
			return board, nil
		}
	}
	return nil, ErrBoardNotFound{Name: name}
}

// String returns the config in the same form it is persisted
func (c *Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return string(data)
}

func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return filepath.Join(home, ConfigDir)
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), ConfigFile)
}

func NewDefaultConfig() *Config {
	return &Config{
		LogLevel:  DefaultLogLevel,
		StatePath: filepath.Join(DefaultConfigDir(), StateFile),
		ApiConfig: &ApiConfig{
			IP:   DefaultIP,
			Port: DefaultApiPort,
		},
		Boards: []*Board{
			{
				Name:           DefaultBoardName,
				Transport:      TransportSim,
				RequestTimeout: DefaultRequestTimeout,
				SimEnabled:     append([]string{}, DefaultSimEnabled...),
			},
		},
		filepath: DefaultConfigPath(),
	}
}
