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

package mts

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
	TileMaskOptionName = "tile-mask"
	FreqOptionName     = "freq"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mts",
		Short: "Multi-tile synchronization and mixers",
	}
	cmd.AddCommand(NewRunCommand(cfg))
	cmd.AddCommand(NewReportCommand(cfg))
	cmd.AddCommand(NewNCOCommand(cfg))
	cmd.AddCommand(NewMixerCommand(cfg))
	return cmd
}

func NewRunCommand(cfg *config.Config) *cobra.Command {
	var tileMask int
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Synchronize ADC tiles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := command.NewApiClient(cfg).RunMTS(common.Board(cmd), tileMask)
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Lines(report)
			return nil
		},
	}
	cmd.Flags().IntVar(&tileMask, TileMaskOptionName, 0b1111, "ADC tiles to synchronize, bit 0 is tile 0")
	return cmd
}

func NewReportCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show the report of the last synchronization",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := command.NewApiClient(cfg).MTSReport(common.Board(cmd))
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Lines(report)
			return nil
		},
	}
	return cmd
}

func maskFlags(cmd *cobra.Command, adcMask, dacMask *uint16) {
	cmd.Flags().Uint16Var(adcMask, common.AdcMaskOptionName, 0, "ADC blocks, bit tile*4+block")
	cmd.Flags().Uint16Var(dacMask, common.DacMaskOptionName, 0, "DAC blocks, bit tile*4+block")
}

func NewNCOCommand(cfg *config.Config) *cobra.Command {
	var adcMask, dacMask uint16
	var freq float64
	cmd := &cobra.Command{
		Use:   "nco",
		Short: "Set NCO frequency of the selected blocks synchronously",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := command.NewApiClient(cfg).UpdateNCOMTS(common.Board(cmd), adcMask, dacMask, freq)
			if err != nil {
				return err
			}
			output.New(cmd.OutOrStdout()).Lines(lines)
			return nil
		},
	}
	maskFlags(cmd, &adcMask, &dacMask)
	cmd.Flags().Float64Var(&freq, FreqOptionName, 0, "NCO frequency, MHz")
	cmd.MarkFlagRequired(FreqOptionName)
	return cmd
}

func NewMixerCommand(cfg *config.Config) *cobra.Command {
	var adcMask, dacMask uint16
	var target string
	cmd := &cobra.Command{
		Use:   "mixer",
		Short: "Show mixer settings of one converter or of the selected blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiClient := command.NewApiClient(cfg)
			p := output.New(cmd.OutOrStdout())
			if target != "" {
				t, err := rfdc.ParseTarget(target)
				if err != nil {
					return err
				}
				lines, err := apiClient.ReportMixer(common.Board(cmd), t)
				if err != nil {
					return err
				}
				p.Lines(lines)
				return nil
			}
			reports, err := apiClient.ReportMixerStatus(common.Board(cmd), adcMask, dacMask)
			if err != nil {
				return err
			}
			for _, report := range reports {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\n", report.Target)
				p.Lines(report.Lines)
			}
			return nil
		},
	}
	maskFlags(cmd, &adcMask, &dacMask)
	cmd.Flags().StringVar(&target, common.TargetOptionName, "", "Converter as kind:tile:block, overrides masks")
	return cmd
}
