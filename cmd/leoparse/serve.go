package main

import (
	"fmt"
	"net"

	"github.com/spf13/cobra"

	"github.com/zkcircuit/leoparse/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var addr, certFile, keyFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the parser over HTTP/3",
		Long: `Serve answers POST /parse with the syntax tree and diagnostics of the
posted source. Without --cert and --key a self-signed certificate is used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("addr") {
				a.config.ServerAddr = addr
			}
			if flags.Changed("cert") {
				a.config.CertFile = certFile
			}
			if flags.Changed("key") {
				a.config.KeyFile = keyFile
			}

			host, _, err := net.SplitHostPort(a.config.ServerAddr)
			if err != nil {
				return err
			}
			tlsCfg, err := server.ServerTLS(a.config.CertFile, a.config.KeyFile, host)
			if err != nil {
				return err
			}

			srv := server.New(a.config.ServerAddr, tlsCfg, server.NewHandler(a.driver(), a.logger), a.logger)
			bound, err := srv.Start()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on https://%s\n", bound)

			<-cmd.Context().Done()
			a.logger.Info("shutting down")
			return srv.Stop()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "UDP address to listen on")
	cmd.Flags().StringVar(&certFile, "cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&keyFile, "key", "", "TLS key file")
	return cmd
}
