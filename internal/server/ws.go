package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/app"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// RecognitionHandler streams live recognition results over WebSocket. Each
// connection gets its own subscription to the pipeline; the handler never
// runs detection itself.
type RecognitionHandler struct {
	app *app.App
}

// NewRecognitionHandler creates a new RecognitionHandler over the given app.
func NewRecognitionHandler(a *app.App) *RecognitionHandler {
	return &RecognitionHandler{app: a}
}

// ServeHTTP handles WebSocket upgrade requests and forwards results until
// the client disconnects.
func (h *RecognitionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("websocket upgrade error")
		return
	}
	defer conn.Close()

	results, cancel := h.app.Subscribe()
	defer cancel()

	// Reads only serve to notice the client going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case result, ok := <-results:
			if !ok {
				return
			}
			msg := map[string]any{
				"label":        result.Label,
				"confidence":   result.Confidence,
				"fingerStates": result.FingerStates,
				"timestamp":    time.Now().UnixMilli(),
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
