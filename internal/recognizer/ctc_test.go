package recognizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/MeKo-Christian/pogo/internal/dict"
	"github.com/MeKo-Christian/pogo/internal/onnx/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCharset(t *testing.T) *dict.Charset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\nc\n"), 0o600))
	cs, err := dict.Load(path)
	require.NoError(t, err)
	return cs
}

// row builds one timestep's logits over a 4-class vocab (blank, a, b, c)
// with a sharp peak at peakIdx.
func row(peakIdx int) []float32 {
	v := []float32{0.01, 0.01, 0.01, 0.01}
	v[peakIdx] = 10
	return v
}

func TestArgmax(t *testing.T) {
	idx, val := argmax([]float32{0.1, 0.9, 0.2})
	assert.Equal(t, 1, idx)
	assert.InDelta(t, 0.9, float64(val), 1e-6)

	idx, _ = argmax(nil)
	assert.Equal(t, -1, idx)
}

func TestDecodeGreedyCollapsesRunsWithMeanConfidence(t *testing.T) {
	vocab := 4
	// t0: blank, t1: a, t2: a, t3: blank, t4: b
	logits := append(append(append(append(
		row(0), row(1)...), row(1)...), row(0)...), row(2)...)

	emissions := decodeGreedy(logits, 5, vocab, 0)
	require.Len(t, emissions, 2)

	assert.Equal(t, 1, emissions[0].classIdx)
	assert.Equal(t, 1, emissions[0].tStart)
	assert.Equal(t, 2, emissions[0].tEnd)
	assert.Greater(t, emissions[0].confidence, 0.9)

	assert.Equal(t, 2, emissions[1].classIdx)
	assert.Equal(t, 4, emissions[1].tStart)
	assert.Equal(t, 4, emissions[1].tEnd)
}

func TestDecodeGreedyNoBlankBetweenSameClassCollapsesToOne(t *testing.T) {
	vocab := 4
	logits := append(append(row(1), row(1)...), row(1)...)
	emissions := decodeGreedy(logits, 3, vocab, 0)
	require.Len(t, emissions, 1)
	assert.Equal(t, 0, emissions[0].tStart)
	assert.Equal(t, 2, emissions[0].tEnd)
}

func TestDecodeGreedyOnSyntheticGreedyPathLogits(t *testing.T) {
	vocab := 4
	logits := mock.NewGreedyPathLogits([]int{0, 1, 1, 0, 2}, vocab, false, 10, 0.01)

	emissions := decodeGreedy(logits.Data, 5, vocab, 0)
	require.Len(t, emissions, 2)
	assert.Equal(t, 1, emissions[0].classIdx)
	assert.Equal(t, 2, emissions[1].classIdx)
}

func TestSpanRatiosClampedAndMinWidth(t *testing.T) {
	e := emission{classIdx: 1, confidence: 0.9, tStart: 0, tEnd: 0}
	start, end := spanRatios(e, 100, 1.0, 1e-3)
	assert.GreaterOrEqual(t, start, 0.0)
	assert.LessOrEqual(t, end, 1.0)
	assert.GreaterOrEqual(t, end-start, 1e-3-1e-9)
}

func TestDecodeItemAssemblesTextAndConfidence(t *testing.T) {
	cs := testCharset(t)
	vocab := 4
	// "a" then "b": t0 blank, t1-2 class1(a), t3 blank, t4 class2(b)
	logits := append(append(append(append(
		row(0), row(1)...), row(1)...), row(0)...), row(2)...)

	decoded := decodeItem(logits, 5, vocab, cs, 80, 80, 1e-3)
	assert.Equal(t, "ab", decoded.text)
	assert.Len(t, decoded.chars, 2)
	assert.Greater(t, decoded.confidence, 0.9)
}

func TestDecodeItemDropsOutOfRangeTokensSilently(t *testing.T) {
	cs := testCharset(t) // 5 tokens: blank, a, b, c, space
	vocab := 8
	logits := make([]float32, vocab)
	for i := range logits {
		logits[i] = 0.01
	}
	logits[6] = 10 // index 6 has no dictionary entry
	decoded := decodeItem(logits, 1, vocab, cs, 10, 10, 1e-3)
	assert.Empty(t, decoded.text)
	assert.Equal(t, 0.0, decoded.confidence)
}
