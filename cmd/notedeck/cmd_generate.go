package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tsawler/notedeck"
	"github.com/tsawler/notedeck/deck"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		flags deckFlags
		out   string
		key   string
	)
	cmd := &cobra.Command{
		Use:   "generate NOTES",
		Short: "Generate a deck from a notes file",
		Long: `Generate a deck from a notes file (.txt, .md, .html, .docx or an image when
built with the ocr tag).

With --out the deck is written to that path. Otherwise it goes to the
configured output (output.dir or output.s3).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b := a.builder(cmd, args[0], &flags)

			var (
				location string
				warnings []deck.Warning
				err      error
			)
			if out != "" {
				warnings, err = b.SaveAs(ctx, out)
				location = out
			} else {
				store, serr := a.cfg.Store()
				if serr != nil {
					return serr
				}
				var res deck.Result
				res, warnings, err = b.Store(store).Key(key).Generate(ctx)
				location = res.Location
			}
			if err != nil {
				return err
			}

			for _, w := range warnings {
				a.logger.Warn("deck warning", zap.String("warning", w.String()))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", location)
			if len(warnings) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "warnings: %s\n", notedeck.FormatWarnings(warnings))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file path")
	cmd.Flags().StringVar(&key, "key", "", "Output key in the configured store (default: random)")
	return cmd
}
