package model

import "math"

// EMU is a length in English Metric Units.
type EMU int64

// Unit conversions.
const (
	EMUPerInch  EMU = 914400
	EMUPerPoint EMU = 12700
)

// Inches converts a length in inches to EMU.
func Inches(in float64) EMU {
	return EMU(math.Round(in * float64(EMUPerInch)))
}

// Points converts a length in points to EMU.
func Points(pt float64) EMU {
	return EMU(math.Round(pt * float64(EMUPerPoint)))
}

// Inches returns the length in inches.
func (e EMU) Inches() float64 {
	return float64(e) / float64(EMUPerInch)
}

// Points returns the length in points.
func (e EMU) Points() float64 {
	return float64(e) / float64(EMUPerPoint)
}

// Point represents a 2D point in EMU
type Point struct {
	X, Y EMU
}

// Rect is an axis-aligned rectangle with a top-left origin.
type Rect struct {
	X      EMU // Left
	Y      EMU // Top
	Width  EMU
	Height EMU
}

// NewRect creates a rectangle from its offset and extent.
func NewRect(x, y, width, height EMU) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

// Left returns the left edge X coordinate
func (r Rect) Left() EMU {
	return r.X
}

// Right returns the right edge X coordinate
func (r Rect) Right() EMU {
	return r.X + r.Width
}

// Top returns the top edge Y coordinate
func (r Rect) Top() EMU {
	return r.Y
}

// Bottom returns the bottom edge Y coordinate
func (r Rect) Bottom() EMU {
	return r.Y + r.Height
}

// Center returns the center point
func (r Rect) Center() Point {
	return Point{
		X: r.X + r.Width/2,
		Y: r.Y + r.Height/2,
	}
}

// Contains reports whether other lies entirely inside r.
func (r Rect) Contains(other Rect) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Top() >= r.Top() && other.Bottom() <= r.Bottom()
}

// IsEmpty returns true if the rectangle has zero area
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// WithHeight returns a copy of r with the given height, keeping the top edge.
func (r Rect) WithHeight(h EMU) Rect {
	r.Height = h
	return r
}

// CenteredIn returns a rectangle of the given size centered horizontally
// within r, keeping r's top edge.
func (r Rect) CenteredIn(width, height EMU) Rect {
	return Rect{
		X:      r.X + (r.Width-width)/2,
		Y:      r.Y,
		Width:  width,
		Height: height,
	}
}
