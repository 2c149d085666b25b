package recognizer

import (
	"math"

	"github.com/MeKo-Christian/pogo/internal/dict"
)

// emission is one decoded, collapsed character: its confidence (the
// run-mean of per-step max probabilities) and its timestep span.
type emission struct {
	classIdx   int
	confidence float64
	tStart     int
	tEnd       int // inclusive
}

// CharSpan is a decoded character with its dictionary token and
// normalized [start, end] span ratio relative to the content region.
type CharSpan struct {
	Token      string
	Confidence float64
	Start      float64
	End        float64
}

// decodedItem is one fully decoded recognition result.
type decodedItem struct {
	text       string
	confidence float64
	chars      []CharSpan
}

func argmax(v []float32) (int, float32) {
	if len(v) == 0 {
		return -1, 0
	}
	idx := 0
	maxVal := v[0]
	for i := 1; i < len(v); i++ {
		if v[i] > maxVal {
			maxVal = v[i]
			idx = i
		}
	}
	return idx, maxVal
}

// probOfIndex returns v[idx] as a probability. If v already sums to
// ~1 with values in [0,1], it is used directly; otherwise a stable
// softmax is applied.
func probOfIndex(v []float32, idx int) float64 {
	if len(v) == 0 || idx < 0 || idx >= len(v) {
		return 0
	}
	var sum float64
	minV, maxV := v[0], v[0]
	for _, x := range v {
		sum += float64(x)
		if x < minV {
			minV = x
		}
		if x > maxV {
			maxV = x
		}
	}
	if sum > 0.99 && sum < 1.01 && minV >= 0 && maxV <= 1 {
		return float64(v[idx])
	}
	m := v[0]
	for _, x := range v {
		if x > m {
			m = x
		}
	}
	var denom float64
	for _, x := range v {
		denom += math.Exp(float64(x - m))
	}
	if denom == 0 {
		return 0
	}
	return math.Exp(float64(v[idx]-m)) / denom
}

// decodeGreedy runs CTC greedy decode over one item's logits ([T, V]
// row-major) and returns the collapsed emissions with run-mean
// confidence per run.
func decodeGreedy(logits []float32, timesteps, vocab, blank int) []emission {
	var out []emission
	runStart := -1
	runClass := -1
	var runProbSum float64
	var runLen int

	flushRun := func(endT int) {
		if runClass < 0 {
			return
		}
		out = append(out, emission{
			classIdx:   runClass,
			confidence: runProbSum / float64(runLen),
			tStart:     runStart,
			tEnd:       endT,
		})
	}

	for t := range timesteps {
		row := logits[t*vocab : (t+1)*vocab]
		idx, _ := argmax(row)
		p := probOfIndex(row, idx)

		switch {
		case idx == blank:
			flushRun(t - 1)
			runClass = -1
		case idx == runClass:
			runProbSum += p
			runLen++
		default:
			flushRun(t - 1)
			runClass = idx
			runStart = t
			runProbSum = p
			runLen = 1
		}
	}
	flushRun(timesteps - 1)
	return out
}

// spanRatios computes the clamped [start, end] ratio for one emission,
// scaled to the content region rather than the padded strip.
func spanRatios(e emission, timesteps int, scale, minSpanRatio float64) (float64, float64) {
	start := (float64(e.tStart) / float64(timesteps)) * scale
	// tEnd is the last timestep in the run (inclusive), so its ratio uses
	// tEnd+1 to cover that timestep's own width rather than stopping at
	// its leading edge.
	end := (float64(e.tEnd+1) / float64(timesteps)) * scale

	if start < 0 {
		start = 0
	}
	if end > 1 {
		end = 1
	}
	if start > end {
		start = end
	}

	minSpan := minSpanRatio
	if perStep := (1.0 / float64(timesteps)) * scale; perStep > minSpan {
		minSpan = perStep
	}
	if end-start < minSpan {
		start = end - minSpan
		if start < 0 {
			start = 0
			end = math.Min(1, start+minSpan)
		}
	}
	return start, end
}

// decodeItem turns raw logits for one item into text, per-character
// spans, and overall confidence.
func decodeItem(logits []float32, timesteps, vocab int, charset *dict.Charset, contentWidth, packedWidth int, minSpanRatio float64) decodedItem {
	emissions := decodeGreedy(logits, timesteps, vocab, charset.BlankIndex())

	scale := 1.0
	if contentWidth > 0 {
		if s := float64(packedWidth) / float64(contentWidth); s > scale {
			scale = s
		}
	}

	var chars []CharSpan
	var confSum float64
	for _, e := range emissions {
		token := charset.Token(e.classIdx)
		if token == "" {
			continue // out-of-range or blank index: dropped silently
		}
		start, end := spanRatios(e, timesteps, scale, minSpanRatio)
		chars = append(chars, CharSpan{Token: token, Confidence: e.confidence, Start: start, End: end})
		confSum += e.confidence
	}

	text := ""
	for _, c := range chars {
		text += c.Token
	}

	confidence := 0.0
	if len(chars) > 0 {
		confidence = confSum / float64(len(chars))
	}

	return decodedItem{text: text, confidence: confidence, chars: chars}
}
