package capture

import (
	"errors"
	"testing"
)

func TestMockCamera_OpenClose(t *testing.T) {
	cam := NewMockCamera()

	if cam.IsOpen() {
		t.Error("a fresh mock camera should be closed")
	}
	if err := cam.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !cam.IsOpen() {
		t.Error("camera should report open after Open")
	}
	if err := cam.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if cam.IsOpen() {
		t.Error("camera should report closed after Close")
	}
}

func TestMockCamera_ReadRequiresOpen(t *testing.T) {
	cam := NewMockCamera()

	if _, err := cam.ReadFrame(); !errors.Is(err, ErrCameraNotOpen) {
		t.Errorf("reading a closed camera should fail with ErrCameraNotOpen, got %v", err)
	}
}

func TestMockCamera_ReadFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	cam := NewMockCamera()
	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	defer cam.Close()

	frame, err := cam.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	defer frame.Close()

	if frame.Rows() != DefaultHeight || frame.Cols() != DefaultWidth {
		t.Errorf("frame size = %dx%d, want %dx%d", frame.Cols(), frame.Rows(), DefaultWidth, DefaultHeight)
	}
	if cam.FramesRead() != 1 {
		t.Errorf("FramesRead = %d, want 1", cam.FramesRead())
	}
}

func TestMockCamera_ReadError(t *testing.T) {
	cam := NewMockCamera()
	if err := cam.Open(); err != nil {
		t.Fatal(err)
	}
	defer cam.Close()

	wantErr := errors.New("sensor fault")
	cam.SetReadError(wantErr)
	if _, err := cam.ReadFrame(); !errors.Is(err, wantErr) {
		t.Errorf("ReadFrame error = %v, want %v", err, wantErr)
	}
	if cam.FramesRead() != 0 {
		t.Errorf("failed reads should not count, got %d", cam.FramesRead())
	}
}

func TestMockCamera_FPS(t *testing.T) {
	cam := NewMockCamera()

	if cam.FPS() != DefaultFPS {
		t.Errorf("FPS = %d, want default %d", cam.FPS(), DefaultFPS)
	}

	cam.SetFPS(5)
	if cam.FPS() != 5 {
		t.Errorf("FPS = %d, want 5", cam.FPS())
	}

	cam.SetFPS(0)
	if cam.FPS() != 5 {
		t.Errorf("zero FPS should be ignored, got %d", cam.FPS())
	}
}
