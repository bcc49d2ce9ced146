package main

import (
	"github.com/spf13/cobra"

	"github.com/tsawler/notedeck"
	"github.com/tsawler/notedeck/assets"
)

// deckFlags are shared by generate and preview.
type deckFlags struct {
	template   string
	logo       string
	brand      string
	primary    string
	accent     string
	background string
}

func (f *deckFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.template, "template", "t", "", "PowerPoint template (.pptx) (required)")
	cmd.Flags().StringVar(&f.logo, "logo", "", "Logo image for the intro slide")
	cmd.Flags().StringVar(&f.brand, "brand", "", "Brand text for the intro slide")
	cmd.Flags().StringVar(&f.primary, "primary", "", "Primary color (hex)")
	cmd.Flags().StringVar(&f.accent, "accent", "", "Accent color (hex)")
	cmd.Flags().StringVar(&f.background, "background", "", "Background color (hex)")
	_ = cmd.MarkFlagRequired("template")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// builder configures a notedeck.Builder from flags, falling back to the
// config file.
func (a *app) builder(cmd *cobra.Command, notesPath string, f *deckFlags) *notedeck.Builder {
	brand := a.cfg.Branding
	b := notedeck.FromFile(notesPath).
		Template(f.template).
		Logger(a.logger).
		OCR(a.cfg.OCROptions()).
		Brand(firstNonEmpty(f.brand, brand.BrandText)).
		Logo(firstNonEmpty(f.logo, brand.Logo)).
		Colors(
			firstNonEmpty(f.primary, brand.Primary),
			firstNonEmpty(f.accent, brand.Accent),
			firstNonEmpty(f.background, brand.Background),
		).
		// Logo paths on the command line are relative to the working directory.
		Assets(assets.Chain{assets.DirResolver{}, a.cfg.Resolver()})

	if a.cfg.Assets.Dir != "" || a.cfg.Assets.S3.Bucket != "" {
		b = b.Icons(a.cfg.Resolver())
	}
	if seed := a.seedFlag(cmd); seed != nil {
		b = b.Seed(*seed)
	}
	return b
}
