package server

import (
	"fmt"
	"image"
	"image/color"
	"net/http"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/recognize"
)

// StreamHandler serves MJPEG frames from the camera with the current stable
// letter and confidence drawn onto each frame, so the stream doubles as live
// recognition feedback.
type StreamHandler struct {
	app *app.App
}

// NewStreamHandler creates a new StreamHandler over the given app.
func NewStreamHandler(a *app.App) *StreamHandler {
	return &StreamHandler{app: a}
}

var (
	overlayLetterColor = color.RGBA{R: 46, G: 204, B: 113}
	overlayInfoColor   = color.RGBA{R: 236, G: 240, B: 241}
)

// drawOverlay renders the stable letter (large, top-left) and its smoothed
// confidence onto the frame in place.
func drawOverlay(frame *gocv.Mat, result recognize.Result) {
	if result.Label == nil {
		return
	}

	gocv.PutText(frame, *result.Label, image.Point{X: 20, Y: 90},
		gocv.FontHersheySimplex, 3.0, overlayLetterColor, 6)
	gocv.PutText(frame, fmt.Sprintf("%.0f%%", result.Confidence*100),
		image.Point{X: 24, Y: 130}, gocv.FontHersheySimplex, 1.0, overlayInfoColor, 2)
}

// ServeHTTP streams annotated MJPEG frames to the client until it
// disconnects. Recognition results arrive over a per-connection
// subscription; the most recent one is painted onto every frame.
func (h *StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	results, cancel := h.app.Subscribe()
	defer cancel()

	var last recognize.Result
	for {
		select {
		case <-r.Context().Done():
			return
		default:
		}

		// Drain any results produced since the previous frame and keep
		// the newest.
		for drained := false; !drained; {
			select {
			case result, ok := <-results:
				if !ok {
					return
				}
				last = result
			default:
				drained = true
			}
		}

		frame, err := h.app.Camera().ReadFrame()
		if err != nil {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		drawOverlay(frame, last)

		buf, err := gocv.IMEncode(".jpg", *frame)
		frame.Close()
		if err != nil {
			continue
		}

		fmt.Fprintf(w, "--frame\r\n")
		fmt.Fprintf(w, "Content-Type: image/jpeg\r\n")
		fmt.Fprintf(w, "Content-Length: %d\r\n\r\n", buf.Len())
		w.Write(buf.GetBytes())
		fmt.Fprintf(w, "\r\n")
		buf.Close()

		if f, ok := w.(http.Flusher); ok {
			f.Flush()
		}

		time.Sleep(66 * time.Millisecond) // ~15 FPS
	}
}
