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

package field

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/cmd/common"
	"jinr.ru/greenlab/go-rfdc/cmd/output"
	"jinr.ru/greenlab/go-rfdc/pkg/command"
	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "field",
		Short: "Read and write converter fields",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewGetCommand(cfg))
	cmd.AddCommand(NewSetCommand(cfg))
	cmd.AddCommand(NewScanCommand(cfg))
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields, err := command.NewApiClient(cfg).Fields()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, f := range fields {
				access := "rw"
				if f.ReadOnly() {
					access = "ro"
				}
				var keys []string
				for _, k := range f.Keys {
					keys = append(keys, k.Name)
				}
				rows = append(rows, []string{f.Name, access, f.Address.String(), strings.Join(keys, ","), f.Help})
			}
			output.New(cmd.OutOrStdout()).Table([]string{"FIELD", "ACCESS", "ADDRESS", "KEYS", "HELP"}, rows)
			return nil
		},
	}
	return cmd
}

func targetFlag(cmd *cobra.Command, value *string) {
	cmd.Flags().StringVar(value, common.TargetOptionName, "", "Converter as kind:tile:block, e.g. adc:0:1")
	cmd.MarkFlagRequired(common.TargetOptionName)
}

func NewGetCommand(cfg *config.Config) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "get FIELD [ARG...]",
		Short: "Read field of a converter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rfdc.ParseTarget(target)
			if err != nil {
				return err
			}
			result, err := command.NewApiClient(cfg).Get(common.Board(cmd), t, args[0], args[1:]...)
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Result(result)
			return nil
		},
	}
	targetFlag(cmd, &target)
	return cmd
}

func NewSetCommand(cfg *config.Config) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "set FIELD ARG...",
		Short: "Write field of a converter and print the readback",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rfdc.ParseTarget(target)
			if err != nil {
				return err
			}
			result, err := command.NewApiClient(cfg).Set(common.Board(cmd), t, args[0], common.ParseArgs(args[1:])...)
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Result(result)
			return nil
		},
	}
	targetFlag(cmd, &target)
	return cmd
}

func NewScanCommand(cfg *config.Config) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "scan FIELD [ARG...]",
		Short: "Read field of every tile and block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := rfdc.ParseConverterKind(kind)
			if err != nil {
				return err
			}
			entries, err := command.NewApiClient(cfg).Scan(common.Board(cmd), k, args[0], args[1:]...)
			if err != nil {
				return err
			}
			var rows [][]string
			for _, entry := range entries {
				rows = append(rows, []string{entry.Target.String(), entry.Result.String()})
			}
			output.New(cmd.OutOrStdout()).Table([]string{"TARGET", "VALUE"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, common.KindOptionName, rfdc.ADC.String(), fmt.Sprintf("Converter kind, %s or %s", rfdc.ADC, rfdc.DAC))
	return cmd
}
