// Package recognizer implements CRNN-style text recognition: width-packed
// batching, CTC greedy decoding, and dictionary-backed text assembly.
package recognizer

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/MeKo-Christian/pogo/internal/common"
	"github.com/MeKo-Christian/pogo/internal/dict"
	"github.com/MeKo-Christian/pogo/internal/mempool"
	"github.com/MeKo-Christian/pogo/internal/onnx"
)

// Recognizer turns cropped text-line images into decoded strings.
type Recognizer struct {
	cfg     Config
	charset *dict.Charset
	session *onnx.Session
	mu      sync.RWMutex
}

// New creates a recognizer, loading its dictionary and ONNX session.
func New(cfg Config) (*Recognizer, error) {
	slog.Debug("initializing recognizer", "model_path", cfg.ModelPath, "dict_path", cfg.DictionaryPath)

	charset, err := dict.Load(cfg.DictionaryPath)
	if err != nil {
		return nil, common.NewConfigError("recognizer.New", err)
	}

	session, err := onnx.NewSession(cfg.ModelPath, cfg.NumThreads, onnx.GPUConfig{UseGPU: cfg.UseGPU})
	if err != nil {
		return nil, common.NewConfigError("recognizer.New", err)
	}

	return &Recognizer{cfg: cfg, charset: charset, session: session}, nil
}

// Close releases the underlying ONNX session.
func (r *Recognizer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session == nil {
		return nil
	}
	err := r.session.Close()
	r.session = nil
	return err
}

// Result is one crop's decoded text with its confidence and
// per-character span ratios within the crop.
type Result struct {
	Text       string
	Confidence float64
	Chars      []CharSpan
}

// Recognize decodes every image, returning results in the same order
// the images were given, regardless of internal width-packed batching
// order.
func (r *Recognizer) Recognize(imgs []image.Image) ([]Result, error) {
	if len(imgs) == 0 {
		return nil, nil
	}

	r.mu.RLock()
	session := r.session
	cfg := r.cfg
	charset := r.charset
	r.mu.RUnlock()
	if session == nil {
		return nil, errors.New("recognizer session is closed")
	}

	results := make([]Result, len(imgs))
	items := sortByAspect(imgs)
	groups := groupInto(items, cfg.BatchSize)

	for _, group := range groups {
		packedW := packedWidth(group, cfg.Height, cfg.MinWhRatio)

		buf := mempool.GetFloat32(len(group) * 3 * cfg.Height * packedW)
		contentWidths := make([]int, len(group))
		for i, it := range group {
			cw := contentWidth(it, cfg.Height, packedW)
			contentWidths[i] = cw
			packItem(it, cfg.Height, cw, packedW, buf, i*3*cfg.Height*packedW)
		}

		tensor := onnx.Tensor{
			Data:  buf,
			Shape: []int64{int64(len(group)), 3, int64(cfg.Height), int64(packedW)},
		}

		data, shape, err := session.Run(tensor)
		mempool.PutFloat32(buf)
		if err != nil {
			return nil, common.NewInferenceError("recognizer.Recognize", err)
		}
		if len(shape) != 3 || shape[0] != int64(len(group)) {
			return nil, common.NewInferenceError("recognizer.Recognize",
				fmt.Errorf("expected [N,T,V] output, got shape %v", shape))
		}
		timesteps := int(shape[1])
		vocab := int(shape[2])
		perItem := timesteps * vocab

		for i, it := range group {
			logits := data[i*perItem : (i+1)*perItem]
			decoded := decodeItem(logits, timesteps, vocab, charset, contentWidths[i], packedW, cfg.MinSpanRatio)
			results[it.origIndex] = Result{
				Text:       decoded.text,
				Confidence: decoded.confidence,
				Chars:      decoded.chars,
			}
		}
	}

	return results, nil
}
