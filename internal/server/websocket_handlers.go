package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	_ "golang.org/x/image/bmp"
)

// upgrader has permissive origin checking; callers behind an
// authenticated gateway are expected to enforce their own policy.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketOCRRequest is one detectText request sent over the socket.
type WebSocketOCRRequest struct {
	Image                       []byte `json:"image"`
	IncludeAllConfidenceScores  bool   `json:"includeAllConfidenceScores,omitempty"`
}

// WebSocketConnWriter is the subset of *websocket.Conn used to send
// responses, narrowed for testability.
type WebSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// WebSocketOCRResponse is one detectText result, or an error, sent
// back over the socket.
type WebSocketOCRResponse struct {
	Status    string          `json:"status"` // "completed" or "error"
	Result    *DetectResponse `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	RequestID string          `json:"requestId,omitempty"`
}

// ocrWebSocketHandler streams detectText requests/responses over a
// persistent connection, one image per message.
func (s *Server) ocrWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() { _ = conn.Close() }()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	s.handleWebSocketConnection(conn)
}

func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	stopPing := make(chan struct{})
	defer close(stopPing)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-stopPing:
				return
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			return
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()
		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

func (s *Server) handleWebSocketMessage(conn WebSocketConnWriter, data []byte) {
	var req WebSocketOCRRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "", fmt.Sprintf("failed to parse request: %v", err))
		return
	}

	requestID := strconv.FormatInt(time.Now().UnixNano(), 10)

	if len(req.Image) == 0 {
		s.sendWebSocketError(conn, requestID, "no image data provided")
		return
	}

	img, _, err := image.Decode(bytes.NewReader(req.Image))
	if err != nil {
		s.sendWebSocketError(conn, requestID, fmt.Sprintf("failed to decode image: %v", err))
		return
	}

	start := time.Now()
	res, err := s.pipeline.ProcessImage(img)
	duration := time.Since(start)
	if err != nil {
		ocrRequestsTotal.WithLabelValues("websocket_image", "error").Inc()
		s.sendWebSocketError(conn, requestID, fmt.Sprintf("OCR processing failed: %v", err))
		return
	}

	ocrRequestsTotal.WithLabelValues("websocket_image", "success").Inc()
	ocrProcessingDuration.WithLabelValues("websocket_image").Observe(duration.Seconds())

	resp := toDetectResponse(res, req.IncludeAllConfidenceScores)
	ocrRegionsDetected.WithLabelValues("websocket_image").Observe(float64(len(resp.Regions)))

	s.sendWebSocketResponse(conn, WebSocketOCRResponse{
		Status:    "completed",
		Result:    &resp,
		RequestID: requestID,
	})
}

func (s *Server) sendWebSocketResponse(conn WebSocketConnWriter, response WebSocketOCRResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

func (s *Server) sendWebSocketError(conn WebSocketConnWriter, requestID, message string) {
	s.sendWebSocketResponse(conn, WebSocketOCRResponse{
		Status:    "error",
		Error:     message,
		RequestID: requestID,
	})
}
