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

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/cmd/board"
	"jinr.ru/greenlab/go-rfdc/cmd/clk"
	"jinr.ru/greenlab/go-rfdc/cmd/common"
	"jinr.ru/greenlab/go-rfdc/cmd/completion"
	"jinr.ru/greenlab/go-rfdc/cmd/config"
	"jinr.ru/greenlab/go-rfdc/cmd/control"
	"jinr.ru/greenlab/go-rfdc/cmd/field"
	"jinr.ru/greenlab/go-rfdc/cmd/mts"
	pkgconfig "jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
)

const (
	LogLevelOptionName = "log-level"
	ConfigOptionName   = "config"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	var logLevel, configPath string
	cfg := pkgconfig.NewDefaultConfig()
	cmd := &cobra.Command{
		Use:          "go-rfdc",
		Short:        "Tool to control RFSoC data converters over KATCP",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configPath != "" {
				cfg.SetPath(configPath)
			}
			if err := cfg.Load(); err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			return log.Init(cmd.ErrOrStderr(), cfg.LogLevel)
		},
	}
	cmd.SetOut(out)
	cmd.AddCommand(config.NewCommand(cfg))
	cmd.AddCommand(control.NewCommand(cfg))
	cmd.AddCommand(board.NewCommand(cfg))
	cmd.AddCommand(field.NewCommand(cfg))
	cmd.AddCommand(mts.NewCommand(cfg))
	cmd.AddCommand(clk.NewCommand(cfg))
	cmd.AddCommand(completion.NewCommand())
	cmd.PersistentFlags().StringVar(&logLevel, LogLevelOptionName, "", fmt.Sprintf("Log level. %s", log.HelpLevels))
	cmd.PersistentFlags().StringVar(&configPath, ConfigOptionName, "", fmt.Sprintf("Config file. Default %s", pkgconfig.DefaultConfigPath()))
	cmd.PersistentFlags().String(common.BoardOptionName, pkgconfig.DefaultBoardName, "Board name")
	return cmd
}
