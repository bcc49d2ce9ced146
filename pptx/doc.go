// Package pptx edits PowerPoint (Office Open XML) presentation packages.
//
// A Package is opened from a template, held in memory as a set of parts,
// and written back out as a new file. Template slides can be removed while
// the theme, masters and layouts stay intact, and new slides can be added
// from the template's layouts and populated with text boxes, tables and
// pictures.
//
// Basic usage:
//
//	pkg, err := pptx.Open("template.pptx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pkg.RemoveAllSlides()
//	slide, err := pkg.AddSlide(1)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	slide.ClearShapes()
//	tb := slide.AddTextBox(model.NewRect(model.Inches(1), model.Inches(1), model.Inches(8), model.Inches(1)))
//	tb.AddParagraph(pptx.TextParagraph("Hello", pptx.RunStyle{SizePt: 40}))
//	f, err := os.Create("deck.pptx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//	err = pkg.Write(f)
package pptx
