package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/MeKo-Christian/pogo/internal/geom"
	"github.com/MeKo-Christian/pogo/internal/pipeline"
	_ "golang.org/x/image/bmp"
)

// decodeUploadedImage reads and decodes the multipart "image" field,
// enforcing the server's upload size limit.
func (s *Server) decodeUploadedImage(w http.ResponseWriter, r *http.Request) (image.Image, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		return nil, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		s.writeErrorResponse(w, "No image file provided", http.StatusBadRequest)
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return nil, fmt.Errorf("file too large: %d bytes", header.Size)
	}
	uploadSizeBytes.Observe(float64(header.Size))

	data, err := io.ReadAll(file)
	if err != nil {
		s.writeErrorResponse(w, "Failed to read image data", http.StatusInternalServerError)
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		s.writeErrorResponse(w, "Invalid image format", http.StatusBadRequest)
		return nil, err
	}
	return img, nil
}

// ocrDetectHandler detects and recognizes text in an uploaded image.
func (s *Server) ocrDetectHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, err := s.decodeUploadedImage(w, r)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("image", "error").Inc()
		return
	}

	includeAll := r.FormValue("includeAllConfidenceScores") == "true"

	start := time.Now()
	res, err := s.pipeline.ProcessImage(img)
	duration := time.Since(start)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("image", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("OCR processing failed: %v", err), http.StatusInternalServerError)
		return
	}

	ocrRequestsTotal.WithLabelValues("image", "success").Inc()
	ocrProcessingDuration.WithLabelValues("image").Observe(duration.Seconds())

	resp := toDetectResponse(res, includeAll)

	var totalText int
	for _, region := range resp.Regions {
		totalText += len(region.Text)
	}
	ocrTextLength.WithLabelValues("image").Observe(float64(totalText))
	ocrRegionsDetected.WithLabelValues("image").Observe(float64(len(resp.Regions)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding detect response: %v\n", err)
	}
}

// ocrHasTextHandler quick-checks an uploaded image for confidently
// recognizable text.
func (s *Server) ocrHasTextHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	img, err := s.decodeUploadedImage(w, r)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("has-text", "error").Inc()
		return
	}

	start := time.Now()
	hasText, err := s.pipeline.HasHighConfidenceText(img)
	duration := time.Since(start)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("has-text", "error").Inc()
		s.writeErrorResponse(w, fmt.Sprintf("has-text check failed: %v", err), http.StatusInternalServerError)
		return
	}

	ocrRequestsTotal.WithLabelValues("has-text", "success").Inc()
	ocrProcessingDuration.WithLabelValues("has-text").Observe(duration.Seconds())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(HasTextResponse{HasText: hasText}); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding has-text response: %v\n", err)
	}
}

// toDetectResponse serializes a pipeline.Result's regions. ProcessImage
// has already dropped lines below FallbackMinRecognitionScore; unless
// includeAll is set, lines marked LowConfidence (below
// MinRecognitionScore) are dropped here as well.
func toDetectResponse(res pipeline.Result, includeAll bool) DetectResponse {
	out := DetectResponse{Width: res.Width, Height: res.Height}
	for _, line := range res.Lines {
		if !includeAll && line.LowConfidence {
			continue
		}
		out.Regions = append(out.Regions, toRegionResponse(line))
	}
	return out
}

func toRegionResponse(l pipeline.Line) RegionResponse {
	r := RegionResponse{Text: l.Text, Confidence: l.Confidence}
	for i, p := range l.Box {
		r.Points[i] = Point{X: p.X, Y: p.Y}
	}
	r.BoundingBox = boundingBoxOf(l.Box)
	for _, c := range l.Chars {
		cb := CharacterBoxResponse{Text: c.Text, Confidence: c.Confidence}
		for i, p := range c.Points {
			cb.Points[i] = Point{X: p.X, Y: p.Y}
		}
		r.CharacterBoxes = append(r.CharacterBoxes, cb)
	}
	return r
}

func boundingBoxOf(pts [4]geom.Point) BoundingBox {
	b := BoundingBox{Left: pts[0].X, Top: pts[0].Y, Right: pts[0].X, Bottom: pts[0].Y}
	for _, p := range pts {
		if p.X < b.Left {
			b.Left = p.X
		}
		if p.X > b.Right {
			b.Right = p.X
		}
		if p.Y < b.Top {
			b.Top = p.Y
		}
		if p.Y > b.Bottom {
			b.Bottom = p.Y
		}
	}
	return b
}
