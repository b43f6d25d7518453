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

package board

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/cmd/common"
	"jinr.ru/greenlab/go-rfdc/cmd/output"
	"jinr.ru/greenlab/go-rfdc/pkg/command"
	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/rfdc"
)

const (
	EventOptionName    = "event"
	CalBlockOptionName = "calblk"
	LMKOptionName      = "lmk"
	LMXOptionName      = "lmx"
	UploadOptionName   = "upload"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Board level operations",
	}
	cmd.AddCommand(NewListCommand(cfg))
	cmd.AddCommand(NewStatusCommand(cfg))
	cmd.AddCommand(NewInitCommand(cfg))
	cmd.AddCommand(NewEventCommand(cfg))
	cmd.AddCommand(NewCoeffsCommand(cfg))
	cmd.AddCommand(NewDTOCommand(cfg))
	cmd.AddCommand(NewJournalCommand(cfg))
	return cmd
}

func NewListCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List boards served by the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			boards, err := command.NewApiClient(cfg).Boards()
			if err != nil {
				return err
			}
			var rows [][]string
			for _, b := range boards {
				rows = append(rows, []string{b.Name, b.Transport, b.URL})
			}
			output.New(cmd.OutOrStdout()).Table([]string{"NAME", "TRANSPORT", "URL"}, rows)
			return nil
		},
	}
	return cmd
}

func NewStatusCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show tile status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status, err := command.NewApiClient(cfg).Status(common.Board(cmd))
			if err != nil {
				return err
			}
			labels := make([]string, 0, len(status))
			for label := range status {
				labels = append(labels, label)
			}
			sort.Strings(labels)
			var rows [][]string
			for _, label := range labels {
				rows = append(rows, []string{label, status[label].String()})
			}
			output.New(cmd.OutOrStdout()).Table([]string{"TILE", "STATUS"}, rows)
			return nil
		},
	}
	return cmd
}

func NewInitCommand(cfg *config.Config) *cobra.Command {
	var lmk, lmx string
	var upload bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Program the given PLL files and initialize the RFDC driver",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return command.NewApiClient(cfg).Init(common.Board(cmd), lmk, lmx, upload)
		},
	}
	cmd.Flags().StringVar(&lmk, LMKOptionName, "", "LMK register file on the server host")
	cmd.Flags().StringVar(&lmx, LMXOptionName, "", "LMX register file on the server host")
	cmd.Flags().BoolVar(&upload, UploadOptionName, false, "Upload the PLL files before programming")
	return cmd
}

func NewEventCommand(cfg *config.Config) *cobra.Command {
	var target string
	var event int
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Trigger an update event of a converter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rfdc.ParseTarget(target)
			if err != nil {
				return err
			}
			return command.NewApiClient(cfg).UpdateEvent(common.Board(cmd), t, event)
		},
	}
	cmd.Flags().StringVar(&target, common.TargetOptionName, "", "Converter as kind:tile:block")
	cmd.MarkFlagRequired(common.TargetOptionName)
	cmd.Flags().IntVar(&event, EventOptionName, rfdc.EventMixer,
		fmt.Sprintf("Event: %d mixer, %d coarse delay, %d QMC", rfdc.EventMixer, rfdc.EventCoarseDelay, rfdc.EventQMC))
	return cmd
}

func NewCoeffsCommand(cfg *config.Config) *cobra.Command {
	var target string
	var calblk int
	cmd := &cobra.Command{
		Use:   "disable-coeffs",
		Short: "Disable user calibration coefficients of an ADC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := rfdc.ParseTarget(target)
			if err != nil {
				return err
			}
			return command.NewApiClient(cfg).DisableUserCoeffs(common.Board(cmd), t.Tile, t.Block, calblk)
		},
	}
	cmd.Flags().StringVar(&target, common.TargetOptionName, "", "ADC as adc:tile:block")
	cmd.MarkFlagRequired(common.TargetOptionName)
	cmd.Flags().IntVar(&calblk, CalBlockOptionName, rfdc.CalBlockOCB1, "Calibration block: 0 OCB1, 1 OCB2, 2 GCB, 3 TSCB")
	return cmd
}

func NewDTOCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dto [PATH]",
		Short: "Upload the overlay at PATH on the server host and apply it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			applied, err := command.NewApiClient(cfg).ApplyDTO(common.Board(cmd), path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied: %t\n", applied)
			return nil
		},
	}
	return cmd
}

func NewJournalCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show writes done through the API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := command.NewApiClient(cfg).Journal(common.Board(cmd))
			if err != nil {
				return err
			}
			var rows [][]string
			for i, e := range entries {
				readback := ""
				if e.Readback != nil {
					readback = e.Readback.String()
				}
				rows = append(rows, []string{strconv.Itoa(i + 1), e.Time.Format("2006-01-02 15:04:05"), e.Field,
					e.Target.String(), fmt.Sprintf("%v", e.Args), readback})
			}
			output.New(cmd.OutOrStdout()).Table([]string{"#", "TIME", "FIELD", "TARGET", "ARGS", "READBACK"}, rows)
			return nil
		},
	}
	return cmd
}
