package pipeline

import "github.com/MeKo-Christian/pogo/internal/geom"

// CharBox is one recognized character with its bounding quad,
// back-projected from its span ratio onto the parent line's box.
type CharBox struct {
	Text       string
	Confidence float64
	Points     [4]geom.Point
}

// Line is one recognized text line: its detected box, the decoded
// text, overall confidence, and per-character boxes.
type Line struct {
	Box      [4]geom.Point
	DetScore float64

	Text       string
	Confidence float64
	// LowConfidence reports whether Confidence fell below
	// Config.MinRecognitionScore but at or above
	// Config.FallbackMinRecognitionScore.
	LowConfidence bool
	Rotated       bool
	Chars         []CharBox
}

// Result is the aggregated OCR output for one image.
type Result struct {
	Width  int
	Height int
	Lines  []Line
}
