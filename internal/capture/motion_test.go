package capture

import (
	"testing"

	"gocv.io/x/gocv"
)

func TestNewMotionGate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mg := NewMotionGate(1.0)
	if mg == nil {
		t.Fatal("NewMotionGate returned nil")
	}
	defer mg.Close()

	if mg.threshold != 1.0 {
		t.Errorf("threshold = %f, want 1.0", mg.threshold)
	}
	if mg.initialized {
		t.Error("gate should not be initialized before the first frame")
	}
}

func TestMotionGate_FirstFrameIsBaseline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mg := NewMotionGate(1.0)
	defer mg.Close()

	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame.Close()

	motion, percent := mg.Detect(&frame)
	if motion {
		t.Error("first frame should only establish the baseline")
	}
	if percent != 0 {
		t.Errorf("first frame change percent = %f, want 0", percent)
	}
	if !mg.initialized {
		t.Error("gate should be initialized after the first frame")
	}
}

func TestMotionGate_IdenticalFramesNoMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mg := NewMotionGate(1.0)
	defer mg.Close()

	frame1 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame1.Close()
	frame2 := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer frame2.Close()

	mg.Detect(&frame1)
	motion, percent := mg.Detect(&frame2)

	if motion {
		t.Errorf("identical frames should not report motion (%.2f%% changed)", percent)
	}
}

func TestMotionGate_BrightnessChangeIsMotion(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mg := NewMotionGate(1.0)
	defer mg.Close()

	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(200, 200, 200, 0), 480, 640, gocv.MatTypeCV8UC3)
	defer bright.Close()

	mg.Detect(&dark)
	motion, percent := mg.Detect(&bright)

	if !motion {
		t.Errorf("full-frame brightness change should report motion (%.2f%% changed)", percent)
	}
}

func TestMotionGate_NilFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	mg := NewMotionGate(1.0)
	defer mg.Close()

	motion, percent := mg.Detect(nil)
	if motion || percent != 0 {
		t.Errorf("nil frame should be ignored, got motion=%v percent=%f", motion, percent)
	}
}
