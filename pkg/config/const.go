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

const (
	ConfigDir             = ".go-rfdc"
	ConfigFile            = "config"
	StateFile             = "state.db"
	DefaultIP             = "127.0.0.1"
	DefaultApiPort        = 8004
	DefaultLogLevel       = "info"
	DefaultRequestTimeout = "10s"
	DefaultBoardName      = "sim0"
)

// Board transports
const (
	TransportRest = "rest"
	TransportSim  = "sim"
)

// Converters enabled on the default simulated board, see Board.SimEnabled
var DefaultSimEnabled = []string{
	"adc:0:0", "adc:0:1", "adc:0:2", "adc:0:3",
	"adc:1:0", "adc:1:1",
	"dac:0:0", "dac:0:1",
}
