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

package control

import (
	"fmt"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/spf13/cobra"

	"jinr.ru/greenlab/go-rfdc/pkg/command"
	"jinr.ru/greenlab/go-rfdc/pkg/config"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/rest"
	"jinr.ru/greenlab/go-rfdc/pkg/katcp/sim"
	"jinr.ru/greenlab/go-rfdc/pkg/log"
)

const (
	IPOptionName      = "ip"
	PortOptionName    = "port"
	ListenOptionName  = "listen"
	EnabledOptionName = "enabled"

	DefaultGatewayAddress = "127.0.0.1:5001"
)

func NewCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "control",
		Short: "Run servers",
	}
	cmd.AddCommand(NewStartCommand(cfg))
	cmd.AddCommand(NewGatewayCommand())
	return cmd
}

func NewStartCommand(cfg *config.Config) *cobra.Command {
	var ip string
	var port int
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start API server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ip != "" {
				cfg.IP = ip
			}
			if port != 0 {
				cfg.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return command.StartServer(cfg)
		},
	}
	cmd.Flags().StringVar(&ip, IPOptionName, "", fmt.Sprintf("IP to bind. E.g. %s", config.DefaultIP))
	cmd.Flags().IntVar(&port, PortOptionName, 0, fmt.Sprintf("Port to bind. E.g. %d", config.DefaultApiPort))
	return cmd
}

// NewGatewayCommand serves a simulated board over the REST transport protocol
func NewGatewayCommand() *cobra.Command {
	var listen string
	var enabled []string
	cmd := &cobra.Command{
		Use:   "gateway",
		Short: "Serve a simulated board to rest transport clients",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			peer, err := sim.NewFromStrings(enabled)
			if err != nil {
				return err
			}
			log.Info("Starting gateway: address: %s enabled: %v", listen, enabled)
			gateway := rest.NewGateway(peer, peer)
			return http.ListenAndServe(listen, handlers.LoggingHandler(log.Writer(log.InfoLevel), gateway))
		},
	}
	cmd.Flags().StringVar(&listen, ListenOptionName, DefaultGatewayAddress, "Address to listen on")
	cmd.Flags().StringSliceVar(&enabled, EnabledOptionName, config.DefaultSimEnabled, "Enabled converters as kind:tile:block")
	return cmd
}
