package main

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/djboot-dev/djboot/internal/config"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Start the development server",
		Long: `Start the development proxy in front of the Django server.

The proxy forwards requests to Django, injects a hot reload client
into HTML pages, and restarts Django when dependencies change.

Features:
  • Hot reload on file change
  • Error overlay in browser
  • Proxy rules for external APIs
  • Prometheus metrics at /_djboot/metrics

Examples:
  djboot dev
  djboot dev --port=9000
  djboot dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(cmd, port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from djboot.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from djboot.json)")

	return cmd
}

func runDev(cmd *cobra.Command, port int, host string) error {
	if _, err := exec.LookPath("poetry"); err != nil {
		return fmt.Errorf("poetry is not installed or not in PATH (run `djboot install` first)")
	}

	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}

	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	return runDevServer(cmd.Context(), cfg)
}
