package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tooldock/tooldock/pkg/registry"
)

var (
	registryFileFlag string

	registryCmd = &cobra.Command{
		Use:   "registry",
		Short: "Manage the flat-file server registry",
		Long:  longRegistry,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	registryListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered servers",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			entries := store.List()

			if len(entries) == 0 {
				fmt.Println("registry is empty")
				return nil
			}

			for _, entry := range entries {
				fmt.Printf("%s  %s  %s  (%d tools)\n", entry.ID, entry.Name, entry.Address, len(entry.Tools))
			}

			return nil
		},
	}

	addNameFlag    string
	addDescFlag    string
	addAddressFlag string

	registryAddCmd = &cobra.Command{
		Use:   "add",
		Short: "Register a server",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			entry, err := store.Add(registry.ServerEntry{
				Name:        addNameFlag,
				Description: addDescFlag,
				Address:     addAddressFlag,
			})

			if err != nil {
				return err
			}

			fmt.Println(entry.ID)
			return nil
		},
	}

	registryRemoveCmd = &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a server by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			removed, err := store.Remove(args[0])
			if err != nil {
				return err
			}

			if !removed {
				return fmt.Errorf("no server with id %s", args[0])
			}

			return nil
		},
	}

	registryExportCmd = &cobra.Command{
		Use:   "export",
		Short: "Write the registry contents to stdout as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			return store.Export(os.Stdout)
		},
	}

	registryImportCmd = &cobra.Command{
		Use:   "import [file]",
		Short: "Replace the registry contents from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore()
			if err != nil {
				return err
			}

			fh, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer fh.Close()

			if err := store.Import(fh); err != nil {
				return err
			}

			log.Info("imported registry", "file", args[0])
			return nil
		},
	}
)

func openStore() (*registry.Store, error) {
	path := registryFileFlag
	if path == "" {
		path = viper.GetString("registry.file")
	}
	if path == "" {
		path = "tooldock-registry.json"
	}

	store := registry.NewStore(path)

	if err := store.Load(); err != nil {
		return nil, err
	}

	return store, nil
}

func init() {
	rootCmd.AddCommand(registryCmd)
	registryCmd.AddCommand(registryListCmd)
	registryCmd.AddCommand(registryAddCmd)
	registryCmd.AddCommand(registryRemoveCmd)
	registryCmd.AddCommand(registryExportCmd)
	registryCmd.AddCommand(registryImportCmd)

	registryCmd.PersistentFlags().StringVarP(&registryFileFlag, "file", "f", "", "Registry file (default from config registry.file)")

	registryAddCmd.Flags().StringVarP(&addNameFlag, "name", "n", "", "Server name")
	registryAddCmd.Flags().StringVarP(&addDescFlag, "description", "d", "", "Server description")
	registryAddCmd.Flags().StringVar(&addAddressFlag, "address", "", "Server address, e.g. http://localhost:3210")
	_ = registryAddCmd.MarkFlagRequired("name")
	_ = registryAddCmd.MarkFlagRequired("address")
}

var longRegistry = `
Manage the flat-file server registry.

The registry maps server ids to metadata (name, tools, address) in a single
JSON file that is rewritten wholesale on every mutation.

Examples:
  tooldock registry add --name weather --address http://localhost:3210
  tooldock registry list
  tooldock registry export > servers.json
  tooldock registry import servers.json
`
