// Package model provides the geometry types shared by the layout engine, the
// PPTX container and the preview renderer.
//
// All slide coordinates are expressed in English Metric Units (EMU), the unit
// used natively by Office Open XML:
//
//	1 inch  = 914400 EMU
//	1 point = 12700 EMU
//
// Helpers convert from the units slide notes are usually reasoned about:
//
//	box := model.NewRect(model.Inches(1.2), model.Inches(1.9), model.Inches(7.6), model.Inches(5))
//	heightPt := box.Height.Points() // 360
//
// A [Rect] has its origin at the top-left corner of the slide, matching the
// PresentationML coordinate system (unlike PDF, Y grows downward).
package model
