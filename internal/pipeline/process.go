package pipeline

import (
	"errors"
	"image"
	"log/slog"
	"math"
	"time"

	"github.com/MeKo-Christian/pogo/internal/classifier"
	"github.com/MeKo-Christian/pogo/internal/detector"
	"github.com/MeKo-Christian/pogo/internal/geom"
	"github.com/MeKo-Christian/pogo/internal/imageops"
	"github.com/MeKo-Christian/pogo/internal/recognizer"
)

// ProcessImage runs the full detect -> crop -> classify -> recognize ->
// back-project -> filter pipeline over img.
func (p *Pipeline) ProcessImage(img image.Image) (Result, error) {
	if img == nil {
		return Result{}, errors.New("input image is nil")
	}

	detectStart := time.Now()
	boxes, err := p.Detector.Detect(img)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("pipeline: detect stage complete", "elapsed", time.Since(detectStart), "boxes", len(boxes))

	crops := make([]image.Image, len(boxes))
	rotated90 := make([]bool, len(boxes))
	for i, box := range boxes {
		crop, r90 := warpCrop(img, box)
		crops[i] = crop
		rotated90[i] = r90
	}

	// Pass 1: classify crops narrow enough that they might be 180°
	// rotated, and rotate them in place before the first recognize pass.
	classify1Start := time.Now()
	rotated180 := make([]bool, len(crops))
	examined := make([]bool, len(crops))
	if err := p.classifyPass1(crops, rotated180, examined); err != nil {
		return Result{}, err
	}
	slog.Debug("pipeline: classify pass 1 complete", "elapsed", time.Since(classify1Start))

	recognizeStart := time.Now()
	results, err := p.Recognizer.Recognize(crops)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("pipeline: recognize stage complete", "elapsed", time.Since(recognizeStart), "lines", len(results))

	// Pass 2: for low-confidence lines the first pass never examined,
	// try the opposite rotation once and keep it only if it strictly
	// improves confidence.
	classify2Start := time.Now()
	if err := p.classifyPass2(crops, results, rotated180, examined); err != nil {
		return Result{}, err
	}
	slog.Debug("pipeline: classify pass 2 complete", "elapsed", time.Since(classify2Start))

	lines := make([]Line, 0, len(boxes))
	for i, box := range boxes {
		res := results[i]
		if res.Confidence < p.cfg.FallbackMinRecognitionScore {
			continue
		}
		// Only a genuine 180° correction reverses reading order along the
		// box's top/bottom edges; the 90° warp in warpCrop just picks the
		// crop's long axis and doesn't affect that ordering.
		netFlip := rotated180[i]
		lines = append(lines, Line{
			Box:           box.Points,
			DetScore:      box.Score,
			Text:          res.Text,
			Confidence:    res.Confidence,
			LowConfidence: res.Confidence < p.cfg.MinRecognitionScore,
			Rotated:       rotated180[i],
			Chars:         backProjectChars(box, res.Chars, netFlip),
		})
	}

	bounds := img.Bounds()
	return Result{Width: bounds.Dx(), Height: bounds.Dy(), Lines: lines}, nil
}

// warpCrop perspective-warps box out of img into an upright crop sized
// to the box's own edge lengths, rotating 90° if the result reads
// taller than it is wide by a 1.5x margin.
func warpCrop(img image.Image, box detector.Box) (image.Image, bool) {
	pts := box.Points
	top := dist(pts[0], pts[1])
	bottom := dist(pts[3], pts[2])
	left := dist(pts[0], pts[3])
	right := dist(pts[1], pts[2])

	w := clampDim(math.Max(top, bottom))
	h := clampDim(math.Max(left, right))

	warped := geom.WarpPerspective(img, pts, w, h)
	if float64(h)/float64(w) >= 1.5 {
		return imageops.Rotate90(warped), true
	}
	return warped, false
}

func clampDim(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	if n > 10000 {
		return 10000
	}
	return n
}

func dist(a, b geom.Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func aspectRatio(img image.Image) float64 {
	b := img.Bounds()
	if b.Dy() == 0 {
		return 0
	}
	return float64(b.Dx()) / float64(b.Dy())
}

// classifyPass1 runs the rotation classifier over every crop narrow
// enough (aspect < AngleAspectRatioThreshold) to plausibly be
// 180°-rotated, rotating the crop in place when the classifier agrees.
func (p *Pipeline) classifyPass1(crops []image.Image, rotated180, examined []bool) error {
	if p.Classifier == nil {
		return nil
	}

	var indices []int
	var candidates []image.Image
	for i, c := range crops {
		if aspectRatio(c) < p.cfg.AngleAspectRatioThreshold {
			indices = append(indices, i)
			candidates = append(candidates, c)
		}
	}
	if len(indices) == 0 {
		return nil
	}

	clsResults, err := p.Classifier.ClassifyBatch(candidates)
	if err != nil {
		return err
	}
	for j, idx := range indices {
		examined[idx] = true
		if clsResults[j].Rotated {
			crops[idx] = classifier.Rotate180(crops[idx])
			rotated180[idx] = true
		}
	}
	return nil
}

// classifyPass2 retries lines below LowConfidenceThreshold that pass 1
// never examined: consult the classifier, and for crops it votes as
// rotated, flip and re-recognize, keeping the flip only if it strictly
// improves confidence. Skipped entirely when no classifier is loaded.
func (p *Pipeline) classifyPass2(crops []image.Image, results []recognizer.Result, rotated180, examined []bool) error {
	if p.Classifier == nil {
		return nil
	}

	var indices []int
	var candidates []image.Image
	for i := range crops {
		if examined[i] || results[i].Confidence >= p.cfg.LowConfidenceThreshold {
			continue
		}
		indices = append(indices, i)
		candidates = append(candidates, crops[i])
	}
	if len(indices) == 0 {
		return nil
	}

	clsResults, err := p.Classifier.ClassifyBatch(candidates)
	if err != nil {
		return err
	}

	for j, idx := range indices {
		if !clsResults[j].Rotated {
			continue
		}

		flipped := classifier.Rotate180(crops[idx])
		retry, err := p.Recognizer.Recognize([]image.Image{flipped})
		if err != nil {
			return err
		}
		if retry[0].Confidence > results[idx].Confidence {
			crops[idx] = flipped
			results[idx] = retry[0]
			rotated180[idx] = !rotated180[idx]
		}
	}
	return nil
}

// backProjectChars maps each character's [start, end] span ratio (along
// the crop's horizontal axis) onto box's top/bottom edges via linear
// interpolation, flipping the ratio if the crop underwent a net
// odd number of rotations relative to the original detected box.
func backProjectChars(box detector.Box, chars []recognizer.CharSpan, netFlip bool) []CharBox {
	if len(chars) == 0 {
		return nil
	}
	pts := box.Points // top-left, top-right, bottom-right, bottom-left

	out := make([]CharBox, 0, len(chars))
	for _, c := range chars {
		start, end := c.Start, c.End
		if netFlip {
			start, end = 1-c.End, 1-c.Start
		}
		if end-start < 1e-4 {
			continue
		}

		topStart := lerpPoint(pts[0], pts[1], start)
		topEnd := lerpPoint(pts[0], pts[1], end)
		bottomStart := lerpPoint(pts[3], pts[2], start)
		bottomEnd := lerpPoint(pts[3], pts[2], end)

		out = append(out, CharBox{
			Text:       c.Token,
			Confidence: c.Confidence,
			Points:     [4]geom.Point{topStart, topEnd, bottomEnd, bottomStart},
		})
	}
	return out
}

func lerpPoint(a, b geom.Point, t float64) geom.Point {
	return geom.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}
