package capture

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockCamera is a Camera implementation for tests and the simulator. It
// serves synthetic solid-color frames and never touches real hardware.
type MockCamera struct {
	mu      sync.Mutex
	open    bool
	fps     int
	readErr error
	frames  int
}

// NewMockCamera creates a closed MockCamera.
func NewMockCamera() *MockCamera {
	return &MockCamera{fps: DefaultFPS}
}

// SetReadError makes subsequent ReadFrame calls fail with err.
func (m *MockCamera) SetReadError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readErr = err
}

// FramesRead returns how many frames have been served.
func (m *MockCamera) FramesRead() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frames
}

// Open implements Camera.
func (m *MockCamera) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	return nil
}

// Close implements Camera.
func (m *MockCamera) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = false
	return nil
}

// ReadFrame returns a blank frame of the default capture size.
// The caller is responsible for closing it.
func (m *MockCamera) ReadFrame() (*gocv.Mat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.open {
		return nil, ErrCameraNotOpen
	}
	if m.readErr != nil {
		return nil, m.readErr
	}

	mat := gocv.NewMatWithSize(DefaultHeight, DefaultWidth, gocv.MatTypeCV8UC3)
	m.frames++
	return &mat, nil
}

// SetFPS implements Camera.
func (m *MockCamera) SetFPS(fps int) {
	if fps <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fps = fps
}

// FPS implements Camera.
func (m *MockCamera) FPS() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fps
}

// IsOpen implements Camera.
func (m *MockCamera) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
