package onnx

import (
	"fmt"

	"github.com/yalue/onnxruntime_go"
)

// GPUConfig is the trimmed GPU on/off switch this module carries. Tuning
// the CUDA execution provider beyond a plain enable flag is explicitly
// out of scope (GPU acceleration selection logic is a spec Non-goal).
type GPUConfig struct {
	UseGPU bool
}

// Session wraps a DynamicAdvancedSession with the single-input,
// single-output shape every component in this module uses. Session holds
// no lock of its own; callers serialize Run (ONNX Runtime sessions are
// not assumed thread-safe).
type Session struct {
	inner      *onnxruntime_go.DynamicAdvancedSession
	InputName  string
	OutputName string
}

// NewSession creates an ONNX session for modelPath with one declared
// input and one declared output, configuring GPU execution if requested.
func NewSession(modelPath string, numThreads int, gpu GPUConfig) (*Session, error) {
	if err := EnsureEnvironment(); err != nil {
		return nil, err
	}

	inputs, outputs, err := onnxruntime_go.GetInputOutputInfo(modelPath)
	if err != nil {
		return nil, fmt.Errorf("read model IO info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, fmt.Errorf("model %s declares no inputs/outputs", modelPath)
	}

	opts, err := onnxruntime_go.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("create session options: %w", err)
	}
	defer func() { _ = opts.Destroy() }()

	if err := configureGPU(opts, gpu); err != nil {
		return nil, fmt.Errorf("configure GPU: %w", err)
	}
	if numThreads > 0 {
		if err := opts.SetIntraOpNumThreads(numThreads); err != nil {
			return nil, fmt.Errorf("set thread count: %w", err)
		}
	}

	inputName := inputs[0].Name
	outputName := outputs[0].Name
	sess, err := onnxruntime_go.NewDynamicAdvancedSession(modelPath,
		[]string{inputName}, []string{outputName}, opts)
	if err != nil {
		return nil, fmt.Errorf("create ONNX session: %w", err)
	}

	return &Session{inner: sess, InputName: inputName, OutputName: outputName}, nil
}

// Run executes the session on a single input tensor and returns the
// output tensor's data and shape.
func (s *Session) Run(input Tensor) ([]float32, []int64, error) {
	inTensor, err := onnxruntime_go.NewTensor(shapeOf(input.Shape), input.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("build input tensor: %w", err)
	}
	defer func() { _ = inTensor.Destroy() }()

	outputs := []onnxruntime_go.Value{nil}
	if err := s.inner.Run([]onnxruntime_go.Value{inTensor}, outputs); err != nil {
		return nil, nil, fmt.Errorf("run inference: %w", err)
	}
	defer func() {
		if outputs[0] != nil {
			_ = outputs[0].Destroy()
		}
	}()

	outTensor, ok := outputs[0].(*onnxruntime_go.Tensor[float32])
	if !ok {
		return nil, nil, fmt.Errorf("unexpected output tensor type %T", outputs[0])
	}
	shape := outTensor.GetShape()
	data := append([]float32(nil), outTensor.GetData()...)
	return data, []int64(shape), nil
}

// Close releases the underlying session.
func (s *Session) Close() error {
	if s.inner == nil {
		return nil
	}
	return s.inner.Destroy()
}

func configureGPU(opts *onnxruntime_go.SessionOptions, gpu GPUConfig) error {
	if !gpu.UseGPU {
		return nil
	}
	cudaOpts, err := onnxruntime_go.NewCUDAProviderOptions()
	if err != nil {
		return fmt.Errorf("create CUDA provider options: %w", err)
	}
	defer func() { _ = cudaOpts.Destroy() }()
	if err := opts.AppendExecutionProviderCUDA(cudaOpts); err != nil {
		return fmt.Errorf("append CUDA execution provider: %w", err)
	}
	return nil
}

func shapeOf(dims []int64) onnxruntime_go.Shape {
	return onnxruntime_go.NewShape(dims...)
}
