package cmd

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tooldock/tooldock/pkg/service"
)

var (
	catalogPortFlag int
	catalogHostFlag string

	catalogCmd = &cobra.Command{
		Use:   "catalog",
		Short: "Run the agent catalog",
		Long:  longCatalog,
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetReportCaller(true)
			log.SetLevel(log.InfoLevel)

			addr := fmt.Sprintf("%s:%d", catalogHostFlag, catalogPortFlag)
			log.Info("serving catalog", "addr", addr)

			return service.NewCatalogServer().Run(addr)
		},
	}
)

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().IntVarP(&catalogPortFlag, "port", "p", 3211, "Port to serve on")
	catalogCmd.Flags().StringVarP(&catalogHostFlag, "host", "H", "0.0.0.0", "Host address to bind to")
}

var longCatalog = `
Serve the agent catalog.

Agents register their cards with POST /agent and are discoverable through
GET /.well-known/catalog.json.

Examples:
  # Serve the agent catalog on port 3211.
  tooldock catalog
`
