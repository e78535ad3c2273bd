package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tooldock/tooldock/pkg/a2a"
	"github.com/tooldock/tooldock/pkg/catalog"
	"github.com/tooldock/tooldock/pkg/service"
	"github.com/tooldock/tooldock/pkg/tools"
)

var (
	portFlag     int
	hostFlag     string
	agentKeyFlag string
	registerFlag string

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve a tool provider over JSON-RPC",
		Long:  longServe,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetReportCaller(true)
			log.SetLevel(log.InfoLevel)

			card := a2a.NewAgentCardFromConfig(agentKeyFlag)
			if card.URL == "" {
				card.URL = fmt.Sprintf("http://%s:%d", hostFlag, portFlag)
			}

			srv := service.NewToolServer(*card, tools.NewBuiltinSet())

			if registerFlag != "" {
				client := catalog.NewCatalogClient(registerFlag)

				if err := client.RegisterAgent(srv.Card); err != nil {
					log.Warn("could not register with catalog", "url", registerFlag, "error", err)
				} else {
					log.Info("registered with catalog", "url", registerFlag, "agent", srv.Card.ID)
				}
			}

			addr := fmt.Sprintf("%s:%d", hostFlag, portFlag)
			log.Info("serving tools", "addr", addr, "agent", srv.Card.Name)

			return srv.Run(addr)
		},
	}
)

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&portFlag, "port", "p", 3210, "Port to serve on")
	serveCmd.Flags().StringVarP(&hostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
	serveCmd.Flags().StringVarP(&agentKeyFlag, "agent", "a", "default", "Config key of the agent card to serve")
	serveCmd.Flags().StringVar(&registerFlag, "register", "", "Catalog URL to register this server with")
}

var longServe = `
Serve a tool provider over JSON-RPC 2.0.

The agent card is read from the config file under agent.<key> and served at
/.well-known/agent.json next to the /rpc endpoint.

Examples:
  # Serve the default agent on port 8080
  tooldock serve --port 8080

  # Serve and register with a running catalog
  tooldock serve --register http://localhost:3211
`
