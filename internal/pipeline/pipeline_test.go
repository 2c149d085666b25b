package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildFailsWithoutModelFiles(t *testing.T) {
	_, err := NewBuilder(t.TempDir()).Build()
	assert.Error(t, err)
}

func TestBuilderFluentConfig(t *testing.T) {
	b := NewBuilder(t.TempDir()).WithThreads(2).WithGPU(true)
	cfg := b.Config()
	assert.Equal(t, 2, cfg.Detector.NumThreads)
	assert.True(t, cfg.Recognizer.UseGPU)
}

func TestCloseOnZeroValuePipelineIsSafe(t *testing.T) {
	p := &Pipeline{}
	assert.NoError(t, p.Close())
}

func TestInfoReportsClassifierAvailability(t *testing.T) {
	p := &Pipeline{cfg: DefaultConfig(t.TempDir())}
	info := p.Info()
	assert.Equal(t, false, info["classifier_available"])
}
