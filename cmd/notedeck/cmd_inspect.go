package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/notedeck/pptx"
)

func newInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect TEMPLATE",
		Short: "Show the slides and layouts of a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := pptx.Open(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			width, height := pkg.SlideSize()
			fmt.Fprintln(out, args[0])
			fmt.Fprintf(out, "  size:    %.2fin x %.2fin\n", width.Inches(), height.Inches())
			fmt.Fprintf(out, "  slides:  %d\n", pkg.SlideCount())
			for i, s := range pkg.Slides() {
				fmt.Fprintf(out, "    %2d  %s\n", i+1, s.Title())
			}

			fmt.Fprintf(out, "  layouts: %d\n", len(pkg.Layouts()))
			for _, l := range pkg.Layouts() {
				types := make([]string, len(l.Placeholders))
				for i, ph := range l.Placeholders {
					types[i] = ph.Type
				}
				fmt.Fprintf(out, "    %2d  %-24s (%s)\n", l.Index, l.Name, strings.Join(types, ", "))
			}

			if len(pkg.Layouts()) < 2 {
				a.logger.Warn("template has fewer than two layouts and cannot be used to generate decks")
			}
			return nil
		},
	}
}
