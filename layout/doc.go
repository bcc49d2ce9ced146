// Package layout computes body geometry and typography for generated slides.
//
// The engine is a pure calculator: given a [classify.Shape] and the slide's
// content lines it returns a [Plan] and never touches the document.
//
// # Shapes
//
//   - Bullet lists get a fixed 7.6in x 5in box and a font size that shrinks
//     with the line count: floor(360pt / lines) - 4, clamped to 16..26pt.
//     An empty list therefore gets the 26pt ceiling.
//   - Tables use 22pt text in a 7.6in x 4in box, one row per line that
//     contains a colon. Lines without one are listed in [Plan.Dropped].
//   - Code blocks use 16pt Courier New, no word wrap, in a box spanning
//     nearly the whole content area.
//
// The package also exports the fixed title, intro and logo geometry shared
// by the assembler and the preview renderer.
package layout
