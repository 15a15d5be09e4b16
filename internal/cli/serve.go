package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buemura/warden/internal/web"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Warden scan API server",
	Long:  "Launches the HTTP server that exposes source-tree scans as async jobs over a REST API.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrFlag, "addr", ":8080", "listen address (host:port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := addrFlag
	if !cmd.Flags().Changed("addr") && appConfig != nil && appConfig.ListenAddr != "" {
		addr = appConfig.ListenAddr
	}

	s := web.NewServer(addr)
	fmt.Fprintf(cmd.OutOrStdout(), "Warden API server listening on %s\n", addr)
	return s.Start()
}
