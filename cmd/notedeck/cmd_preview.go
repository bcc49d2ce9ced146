package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsawler/notedeck/preview"
	"github.com/tsawler/notedeck/storage"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		flags deckFlags
		dir   string
		width int
	)
	cmd := &cobra.Command{
		Use:   "preview NOTES",
		Short: "Render approximate PNG previews of the generated slides",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			images, _, err := a.builder(cmd, args[0], &flags).Preview(ctx, preview.Options{Width: width})
			if err != nil {
				return err
			}

			store := storage.NewLocalStore(dir)
			for i, img := range images {
				data, err := preview.EncodePNG(img)
				if err != nil {
					return fmt.Errorf("slide %d: %w", i+1, err)
				}
				location, err := store.Save(ctx, fmt.Sprintf("slide-%02d.png", i+1), data, "image/png")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), location)
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&dir, "dir", "d", "preview", "Directory for PNG files")
	cmd.Flags().IntVar(&width, "width", 960, "Image width in pixels")
	return cmd
}
