package main

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/stubserver"
)

func newDevServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run a local in-memory backend for development",
		Long: `Run a local in-memory backend for development.

Seeds one account (demo@innervoice.app / demo1234). All state is lost on
exit. Point the client at it with --service-url or INNERVOICE_SERVICE_URL.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			srv := &http.Server{
				Addr:              addr,
				Handler:           stubserver.New().Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			log.Info().Str("addr", addr).Msg("dev server listening")
			return srv.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8980", "Listen address")
	return cmd
}
