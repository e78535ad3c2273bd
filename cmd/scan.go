package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tooldock/tooldock/pkg/scanner"
)

var (
	markerFlag string
	jsonFlag   bool

	scanCmd = &cobra.Command{
		Use:   "scan [folder]",
		Short: "Scan a folder for an MCP tool server instance",
		Long:  longScan,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetLevel(log.InfoLevel)

			folder := "."
			if len(args) > 0 {
				folder = args[0]
			}

			report, err := scanner.New(markerFlag).Scan(folder)

			if err != nil {
				// No marker instance anywhere in the folder is the one
				// fatal scan condition.
				return err
			}

			if jsonFlag {
				return json.NewEncoder(os.Stdout).Encode(report)
			}

			fmt.Printf("instance:  %s\n", report.Match.InstanceName)
			fmt.Printf("package:   %s\n", report.Match.PackageName)
			fmt.Printf("file:      %s\n", report.Match.FilePath)
			fmt.Printf("go.mod:    %v\n", report.HasGoMod)

			if report.EnvExample != "" {
				fmt.Printf("env file:  %s\n", report.EnvExample)
			}

			for _, req := range report.Env {
				status := "set"
				if !req.Present {
					status = "MISSING"
				}
				if req.ExampleValue != "" {
					fmt.Printf("env %s: %s (example: %s)\n", req.Name, status, req.ExampleValue)
					continue
				}
				fmt.Printf("env %s: %s\n", req.Name, status)
			}

			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVarP(&markerFlag, "marker", "m", scanner.DefaultMarker, "Constructor identifier that marks a tool server")
	scanCmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the scan report as JSON")
}

var longScan = `
Scan a folder of Go source for a tool server instance.

The scan looks for the first assignment whose right-hand side calls the
marker constructor (by default NewMCPServer) and reports the instance name,
its file, and the environment variables the file reads. Missing environment
variables are warnings only; a folder without any instance exits non-zero.

Examples:
  # Scan the current folder
  tooldock scan

  # Scan with a custom marker
  tooldock scan ./servers --marker NewToolServer
`
