package app

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/sign"
	"github.com/ayusman/mudra/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{
		Store:    s,
		Settings: config.Default(),
	})
	a.SetDetector(detector.NewMockDetector())
	return a, s
}

func TestApp_SessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t)

	if a.SessionID() != "" {
		t.Error("no session should exist before enabling")
	}

	a.SetEnabled(true)
	sessionID := a.SessionID()
	if sessionID == "" {
		t.Fatal("enabling should start a session")
	}

	sess, err := s.Sessions().GetByID(sessionID)
	if err != nil {
		t.Fatalf("session should be persisted: %v", err)
	}
	if sess.EndedAt != nil {
		t.Error("session should be open while enabled")
	}

	// Enabling again must not start a second session.
	a.SetEnabled(true)
	if a.SessionID() != sessionID {
		t.Error("re-enabling should not replace the session")
	}

	a.SetEnabled(false)
	if a.SessionID() != "" {
		t.Error("disabling should clear the session")
	}

	sess, err = s.Sessions().GetByID(sessionID)
	if err != nil {
		t.Fatalf("session should still exist after end: %v", err)
	}
	if sess.EndedAt == nil {
		t.Error("session should be ended after disabling")
	}
}

func TestApp_RecognizesStableLetter(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t)
	a.SetEnabled(true)

	hands := []detector.HandLandmarks{detector.FistLandmarks()}

	var result recognize.Result
	for i := 0; i < 7; i++ {
		result = a.ProcessFrame(hands)
	}

	if result.Label == nil {
		t.Fatal("expected a stable letter after a full window of fist frames")
	}
	if *result.Label != "A" {
		t.Errorf("expected letter A, got %q", *result.Label)
	}
	if result.Confidence <= 0 {
		t.Errorf("expected positive confidence, got %f", result.Confidence)
	}

	// The promotion should be logged to the session.
	a.recordEvent(*result.Label, result.Confidence)
	events, err := s.Sessions().Events(a.SessionID())
	if err != nil {
		t.Fatalf("failed to list events: %v", err)
	}
	if len(events) == 0 {
		t.Fatal("expected at least one recognition event")
	}
	if events[len(events)-1].Letter != "A" {
		t.Errorf("expected event letter A, got %q", events[len(events)-1].Letter)
	}
}

func TestApp_SubscribeReceivesResults(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	ch, cancel := a.Subscribe()
	defer cancel()

	label := "B"
	a.publish(recognize.Result{Label: &label, Confidence: 0.9})

	select {
	case result := <-ch:
		if result.Label == nil || *result.Label != "B" {
			t.Errorf("unexpected result: %+v", result)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for published result")
	}
}

func TestApp_SubscribeCancelStopsDelivery(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	ch, cancel := a.Subscribe()
	cancel()

	// Publishing after cancel must not panic.
	a.publish(recognize.Result{Confidence: 0.1})

	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}

	// Cancel is safe to call twice.
	cancel()
}

func TestApp_CameraFailureDecaysConfidence(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	cam := capture.NewMockCamera()
	cam.SetReadError(errors.New("sensor fault"))
	a.SetCamera(cam)
	a.SetEnabled(true)

	// Build up a stable letter before the camera starts failing.
	hands := []detector.HandLandmarks{detector.FistLandmarks()}
	for i := 0; i < 10; i++ {
		a.ProcessFrame(hands)
	}

	ch, cancel := a.Subscribe()
	defer cancel()

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	// Every failed read must still publish a no-detection result with
	// decaying confidence.
	prev := 1.1
	for i := 0; i < 3; i++ {
		select {
		case result := <-ch:
			if result.Confidence >= prev {
				t.Errorf("result %d: confidence should decay during camera failure, got %f after %f",
					i, result.Confidence, prev)
			}
			prev = result.Confidence
		case <-time.After(3 * time.Second):
			t.Fatal("timed out waiting for pipeline output during camera failure")
		}
	}
}

func TestNewRecognizer_TemplateScorer(t *testing.T) {
	settings := config.Default()
	settings.Recognition.Scorer = "template"

	rec := newRecognizer(&settings, nil)

	hands := []detector.HandLandmarks{detector.FistLandmarks()}
	var result recognize.Result
	for i := 0; i < 7; i++ {
		result = rec.Process(hands)
	}

	if result.Label == nil || *result.Label != "A" {
		got := "<nil>"
		if result.Label != nil {
			got = *result.Label
		}
		t.Errorf("template scorer should match the fist snapshot as A, got %q", got)
	}
}

func TestApp_LoadPoses(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t)

	pose := &store.CustomPose{
		ID:     "pose-1",
		Letter: "G",
		Requirements: [sign.NumFingers]sign.Requirement{
			sign.Thumb:  sign.MustBeOpen,
			sign.Index:  sign.MustBeOpen,
			sign.Middle: sign.MustBeClosed,
			sign.Ring:   sign.MustBeClosed,
			sign.Pinky:  sign.MustBeClosed,
		},
	}
	if err := s.Poses().Create(pose); err != nil {
		t.Fatalf("failed to create pose: %v", err)
	}

	if err := a.LoadPoses(); err != nil {
		t.Fatalf("LoadPoses() error = %v", err)
	}
}
