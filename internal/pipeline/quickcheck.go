package pipeline

import (
	"errors"
	"image"

	"github.com/MeKo-Christian/pogo/internal/classifier"
	"github.com/MeKo-Christian/pogo/internal/detector"
)

// highConfidenceDetScore is the detection score a box must clear to be
// worth a quick single-item recognize attempt.
const highConfidenceDetScore = 0.90

// HasHighConfidenceText runs a cheap streaming variant of ProcessImage:
// it inspects at most QuickCheckMaxCandidates high-scoring detections,
// one at a time, and returns true as soon as one recognizes to
// non-empty text at or above MinRecognitionScore. It shares the
// detector's single inference pass with the full pipeline but skips
// batching, pass-2 retries, and back-projection entirely.
func (p *Pipeline) HasHighConfidenceText(img image.Image) (bool, error) {
	if img == nil {
		return false, errors.New("input image is nil")
	}

	var candidates []detector.Box
	err := p.Detector.DetectStream(img, func(box detector.Box, score float64) bool {
		if score >= highConfidenceDetScore {
			candidates = append(candidates, box)
		}
		return len(candidates) >= p.cfg.QuickCheckMaxCandidates
	})
	if err != nil {
		return false, err
	}

	for _, box := range candidates {
		crop, _ := warpCrop(img, box)

		if p.Classifier != nil && aspectRatio(crop) < p.cfg.AngleAspectRatioThreshold {
			result, err := p.Classifier.Classify(crop)
			if err != nil {
				return false, err
			}
			if result.Rotated {
				crop = classifier.Rotate180(crop)
			}
		}

		recResults, err := p.Recognizer.Recognize([]image.Image{crop})
		if err != nil {
			return false, err
		}
		res := recResults[0]
		if res.Text != "" && res.Confidence >= p.cfg.MinRecognitionScore {
			return true, nil
		}
	}

	return false, nil
}
