package server

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"

	"github.com/MeKo-Christian/pogo/internal/geom"
	"github.com/MeKo-Christian/pogo/internal/pipeline"
	"github.com/MeKo-Christian/pogo/internal/testutil"
)

// mockPipeline is a simple mock implementation of ocrPipeline for testing.
type mockPipeline struct {
	processImageResult *pipeline.Result
	processImageError  error
	hasTextResult      bool
	hasTextError       error
}

func (m *mockPipeline) ProcessImage(img image.Image) (pipeline.Result, error) {
	if m.processImageResult != nil || m.processImageError != nil {
		if m.processImageResult == nil {
			return pipeline.Result{}, m.processImageError
		}
		return *m.processImageResult, m.processImageError
	}

	bounds := img.Bounds()
	return pipeline.Result{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Lines: []pipeline.Line{
			{
				Box: [4]geom.Point{
					{X: 10, Y: 10},
					{X: 100, Y: 10},
					{X: 100, Y: 30},
					{X: 10, Y: 30},
				},
				DetScore:   0.95,
				Text:       "Hello World",
				Confidence: 0.92,
				Chars: []pipeline.CharBox{
					{Text: "H", Confidence: 0.9, Points: [4]geom.Point{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 30}, {X: 10, Y: 30}}},
				},
			},
		},
	}, nil
}

func (m *mockPipeline) HasHighConfidenceText(img image.Image) (bool, error) {
	return m.hasTextResult, m.hasTextError
}

func (m *mockPipeline) Close() error {
	return nil
}

// createTestImage renders a synthetic text image for testing, using
// the shared test image generator rather than a bare colored rect so
// that upload-handling tests exercise a realistic PNG payload.
func createTestImage(width, height int) image.Image {
	return testutil.CreateTestImageWithText("Hello World", width, height)
}

// encodeImageToPNG encodes an image to PNG bytes.
func encodeImageToPNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	err := png.Encode(&buf, img)
	return buf.Bytes(), err
}

// createMultipartFormRequest creates a multipart form request with an image.
func createMultipartFormRequest(
	imageData []byte,
	filename string,
	extraFields map[string]string,
) (*http.Request, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(imageData); err != nil {
		return nil, err
	}

	for key, value := range extraFields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}

	req := httptest.NewRequest(http.MethodPost, "/ocr/detect", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return req, nil
}
