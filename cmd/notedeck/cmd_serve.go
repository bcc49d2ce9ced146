package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/notedeck/server"
)

func newServeCmd(a *app) *cobra.Command {
	var keep bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the deck generation HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			brand, err := a.cfg.BrandingOptions()
			if err != nil {
				return err
			}
			opts := server.Options{
				MaxUploadMB: a.cfg.Server.MaxUploadMB,
				Branding:    brand,
				Seed:        a.seedFlag(cmd),
				Assets:      a.cfg.Resolver(),
				OCR:         a.cfg.OCROptions(),
				Logger:      a.logger,
			}
			if a.cfg.Assets.Dir != "" || a.cfg.Assets.S3.Bucket != "" {
				opts.Icons = a.cfg.Resolver()
			}
			if keep {
				if opts.Store, err = a.cfg.Store(); err != nil {
					return err
				}
			}
			return server.New(opts).Run(ctx, a.cfg.Server.Addr)
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "Also save every generated deck to the configured output")
	return cmd
}
