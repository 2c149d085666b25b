package detector

import "github.com/MeKo-Christian/pogo/internal/geom"

// Box is a detected text region: four clockwise-ordered corners in
// original-image coordinates, plus the detector's confidence score.
type Box struct {
	Points [4]geom.Point
	Score  float64
}
