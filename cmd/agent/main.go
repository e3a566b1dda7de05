package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/atlascmdb/atlas/internal/agent"
	"github.com/atlascmdb/atlas/internal/inventory"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "atlas-agent",
	Short: "Local inventory helper for the Atlas CMDB",
	Long: "atlas-agent runs on a host to be registered in the CMDB. It collects " +
		"inventory facts by shelling out to system commands and forwards the " +
		"report to the configured workflow webhook.",
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local registration endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := agent.LoadConfig(configPath)
		if err != nil {
			return err
		}

		server := agent.NewServer(cfg)
		mux := http.NewServeMux()
		server.SetupRoutes(mux)

		httpServer := &http.Server{
			Addr:    cfg.ListenAddr,
			Handler: mux,
		}

		go func() {
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
			<-sigChan
			log.Println("Shutting down...")
			httpServer.Close()
		}()

		log.Printf("Agent listening on %s", cfg.ListenAddr)
		if cfg.WebhookURL == "" {
			log.Printf("Warning: no webhook URL configured; registrations will fail until one is set")
		}

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect inventory and print the report as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := agent.LoadConfig(configPath)
		if err != nil {
			return err
		}

		runner := &inventory.ExecRunner{Timeout: cfg.CommandTimeout}
		collector := inventory.NewCollector(runner)
		collector.LicenseScript = cfg.LicenseScript

		report := collector.Collect(context.Background())

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "/etc/atlas/agent.yaml", "path to the agent config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(collectCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
