package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/recognize"
)

func TestStreamHandler_MethodNotAllowed(t *testing.T) {
	handler := NewStreamHandler(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/stream", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", w.Code, http.StatusMethodNotAllowed)
	}
}

func TestDrawOverlay_PaintsLetter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	label := "A"
	drawOverlay(&frame, recognize.Result{Label: &label, Confidence: 0.82})

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	if gocv.CountNonZero(gray) == 0 {
		t.Error("overlay should paint the letter onto a black frame")
	}
}

func TestDrawOverlay_NoLabelLeavesFrameUntouched(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	drawOverlay(&frame, recognize.Result{})

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(frame, &gray, gocv.ColorBGRToGray)

	if gocv.CountNonZero(gray) != 0 {
		t.Error("overlay should draw nothing without a stable letter")
	}
}
