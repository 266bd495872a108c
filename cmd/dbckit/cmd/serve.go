/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/wowtools/dbckit/pkg/api"
	"github.com/wowtools/dbckit/pkg/archive"
	"github.com/wowtools/dbckit/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the dbckit REST API server over the loaded database.

Server settings can come from a YAML config file; flags set on the
command line win over the file.

Examples:
  dbckit serve --api-key=mysecretkey --port=8080 -f Item.dbc -s item.yaml
  dbckit serve --config=dbckit.yaml -f Item.dbc -s item.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.DefaultConfig()
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			loaded, err := config.LoadConfig(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("bind") {
			cfg.Bind, _ = cmd.Flags().GetString("bind")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("archive-dir") {
			cfg.ArchiveDir, _ = cmd.Flags().GetString("archive-dir")
		}

		if cfg.APIKey == "" {
			cmd.Println("Error: an API key is required (--api-key or config file)")
			return nil
		}

		st, err := storeFromContext(cmd)
		if err != nil {
			return err
		}

		var snapshots api.SnapshotArchive
		if cfg.ArchiveDir != "" {
			arc, err := archive.Open(cfg.ArchiveDir)
			if err != nil {
				return err
			}
			defer arc.Close()
			snapshots = arc
		}

		serverConfig := api.ServerConfig{
			Port:   cfg.Port,
			Bind:   cfg.Bind,
			APIKey: cfg.APIKey,
		}
		server := container.GetServerFactory().NewServer(st, snapshots, serverConfig, api.NewMetrics())

		if err := api.StartServer(server, serverConfig); err != nil {
			cmd.Printf("Error starting server: %v\n", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Bind address")
	serveCmd.Flags().String("api-key", "", "API key for client authentication")
	serveCmd.Flags().String("archive-dir", "./archive", "Directory holding the snapshot archive")
	serveCmd.Flags().String("config", "", "YAML config file for server settings")
}
