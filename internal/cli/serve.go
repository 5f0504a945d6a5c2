package cli

import (
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func newServeCmd(outW io.Writer, opts *rootOptions) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the integration HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig(nil)
			if err != nil {
				return err
			}
			if listen != "" {
				cfg.Listen = listen
			}

			a, err := newApp(outW, cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address for the HTTP API (overrides config).")
	return cmd
}
