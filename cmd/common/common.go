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

package common

import (
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/pkg/config"
)

const (
	BoardOptionName   = "board"
	TargetOptionName  = "target"
	KindOptionName    = "kind"
	AdcMaskOptionName = "adc-mask"
	DacMaskOptionName = "dac-mask"
)

// Board returns the value of the persistent board flag
func Board(cmd *cobra.Command) string {
	board, err := cmd.Flags().GetString(BoardOptionName)
	if err != nil || board == "" {
		return config.DefaultBoardName
	}
	return board
}

// ParseArg turns a command line value into a number when it looks like one
func ParseArg(s string) interface{} {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

func ParseArgs(values []string) []interface{} {
	args := make([]interface{}, 0, len(values))
	for _, v := range values {
		args = append(args, ParseArg(v))
	}
	return args
}
