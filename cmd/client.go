package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/tooldock/tooldock/pkg/a2a"
	"github.com/tooldock/tooldock/pkg/catalog"
	"github.com/tooldock/tooldock/pkg/jsonrpc"
)

var (
	serverURLFlag  string
	catalogURLFlag string
	callArgsFlag   string

	clientCmd = &cobra.Command{
		Use:   "client",
		Short: "Client operations against tool servers",
		Long:  `Run client operations against running tool servers and the catalog`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pingCmd = &cobra.Command{
		Use:   "ping",
		Short: "Ping a tool server",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := jsonrpc.NewRPCClient(serverURLFlag + "/rpc")

			var result map[string]any
			if err := client.Call(cmd.Context(), "ping", nil, &result); err != nil {
				return err
			}

			fmt.Println("pong")
			return nil
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List the tools a server exposes",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := jsonrpc.NewRPCClient(serverURLFlag + "/rpc")

			var result struct {
				Tools []struct {
					Name        string `json:"name"`
					Description string `json:"description"`
				} `json:"tools"`
			}

			if err := client.Call(cmd.Context(), "tools/list", nil, &result); err != nil {
				return err
			}

			for _, tool := range result.Tools {
				fmt.Printf("%s\t%s\n", tool.Name, tool.Description)
			}

			return nil
		},
	}

	callCmd = &cobra.Command{
		Use:   "call [tool]",
		Short: "Call a tool by name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arguments := map[string]any{}

			if callArgsFlag != "" {
				if err := json.Unmarshal([]byte(callArgsFlag), &arguments); err != nil {
					return fmt.Errorf("invalid --args JSON: %w", err)
				}
			}

			client := jsonrpc.NewRPCClient(serverURLFlag + "/rpc")

			var result struct {
				Content []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"content"`
				IsError bool `json:"isError"`
			}

			params := map[string]any{
				"name":      args[0],
				"arguments": arguments,
			}

			if err := client.Call(cmd.Context(), "tools/call", params, &result); err != nil {
				return err
			}

			for _, content := range result.Content {
				fmt.Println(content.Text)
			}

			return nil
		},
	}

	sendCmd = &cobra.Command{
		Use:   "send [message]",
		Short: "Send a message to a tool server",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := jsonrpc.NewRPCClient(serverURLFlag + "/rpc")

			var result map[string]any

			params := map[string]any{"message": args[0]}
			if err := client.Call(cmd.Context(), "message/send", params, &result); err != nil {
				return err
			}

			out, _ := json.MarshalIndent(result, "", "  ")
			fmt.Println(string(out))
			return nil
		},
	}

	cardCmd = &cobra.Command{
		Use:   "card",
		Short: "Fetch and print a server's agent card",
		RunE: func(cmd *cobra.Command, args []string) error {
			httpClient := &http.Client{Timeout: 10 * time.Second}

			resp, err := httpClient.Get(serverURLFlag + "/.well-known/agent.json")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			var card a2a.AgentCard
			if err := json.NewDecoder(resp.Body).Decode(&card); err != nil {
				return err
			}

			fmt.Println(card.String())
			return nil
		},
	}

	agentsCmd = &cobra.Command{
		Use:   "agents",
		Short: "List the agents known to the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.SetLevel(log.DebugLevel)

			agents, err := catalog.NewCatalogClient(catalogURLFlag).GetAgents()
			if err != nil {
				return err
			}

			if len(agents) == 0 {
				fmt.Println("no agents registered")
				return nil
			}

			for i, agent := range agents {
				fmt.Printf("%d. %s (%s)\n", i+1, agent.Name, agent.URL)
				fmt.Printf("   Skills: %d\n", len(agent.Skills))
			}

			return nil
		},
	}
)

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(pingCmd)
	clientCmd.AddCommand(listCmd)
	clientCmd.AddCommand(callCmd)
	clientCmd.AddCommand(sendCmd)
	clientCmd.AddCommand(cardCmd)
	clientCmd.AddCommand(agentsCmd)

	clientCmd.PersistentFlags().StringVarP(&serverURLFlag, "url", "u", "http://localhost:3210", "Base URL of the tool server")
	clientCmd.PersistentFlags().StringVar(&catalogURLFlag, "catalog", "http://localhost:3211", "Base URL of the agent catalog")

	callCmd.Flags().StringVar(&callArgsFlag, "args", "", "Tool arguments as a JSON object")
}
