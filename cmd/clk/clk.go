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

package clk

import (
	"fmt"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/cmd/common"
	"jinr.ru/greenlab/go-rfdc/cmd/output"
	"jinr.ru/greenlab/go-rfdc/pkg/command"
	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

const (
	ForceOptionName  = "force"
	UploadOptionName = "upload"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clk",
		Short: "Manage PLL register files",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewUploadCommand(cfg))
	cmd.AddCommand(NewDeleteCommand(cfg))
	cmd.AddCommand(NewProgCommand(cfg))
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List register files on the board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			files, err := command.NewApiClient(cfg).ClkFiles(common.Board(cmd))
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Lines(files)
			return nil
		},
	}
	return cmd
}

func NewUploadCommand(cfg *config.Config) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "upload PATH",
		Short: "Upload a register file, the path is resolved on the API server host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uploaded, err := command.NewApiClient(cfg).UploadClkFile(common.Board(cmd), args[0], force)
			if err != nil {
				return err
			}
			if !uploaded {
				fmt.Fprintln(cmd.OutOrStdout(), "File already exists, use --force to overwrite")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, ForceOptionName, false, "Upload even if the file exists")
	return cmd
}

func NewDeleteCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a register file from the board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).DelClkFile(common.Board(cmd), args[0])
		},
	}
	return cmd
}

func NewProgCommand(cfg *config.Config) *cobra.Command {
	var upload bool
	cmd := &cobra.Command{
		Use:   "prog PLL [FILE]",
		Short: fmt.Sprintf("Program %s or %s, the default file is used when none is given", rfdc.PLLTypeLMK, rfdc.PLLTypeLMX),
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 2 {
				file = args[1]
			}
			return command.NewApiClient(cfg).ProgPLL(common.Board(cmd), args[0], file, upload)
		},
	}
	cmd.Flags().BoolVar(&upload, UploadOptionName, false, "Upload the file before programming")
	return cmd
}
