// Package app orchestrates the recognition pipeline: camera frames in,
// stabilized letters out to subscribers and the session log.
package app

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
	"github.com/ayusman/mudra/internal/sign"
	"github.com/ayusman/mudra/internal/stabilize"
	"github.com/ayusman/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active recognition.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// switching back to idle mode.
	IdleTimeoutMs = 2000
)

// Config holds configuration options for the application.
type Config struct {
	Store    *store.Store
	Settings config.Config
}

// App runs the recognition pipeline and fans results out to subscribers.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionGate
	detector   detector.Detector
	recognizer *recognize.Recognizer

	enabled     bool
	stopCh      chan struct{}
	sessionID   string
	subscribers map[chan recognize.Result]struct{}
	mu          sync.RWMutex

	log *logrus.Entry
}

// New creates a new App instance with the given configuration.
func New(cfg Config) *App {
	motionThreshold := cfg.Settings.MotionThreshold
	if motionThreshold <= 0 {
		motionThreshold = 1.0
	}

	a := &App{
		config:      cfg,
		camera:      capture.NewCamera(cfg.Settings.CameraID),
		motion:      capture.NewMotionGate(motionThreshold),
		recognizer:  newRecognizer(&cfg.Settings, nil),
		subscribers: make(map[chan recognize.Result]struct{}),
		log:         logrus.WithField("component", "app"),
	}

	// Try MediaPipe first, fall back to mock detector.
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		a.log.Info("using MediaPipe hand detection")
	} else {
		a.log.WithError(err).Warn("MediaPipe not available, using mock detector")
		a.detector = detector.NewMockDetector()
	}

	return a
}

// newRecognizer builds a recognizer from the settings, with any custom pose
// definitions appended after the built-in library so built-ins win ties.
// The template strategy matches against the built-in reference snapshots;
// custom poses carry no landmark snapshot, so it ignores them.
func newRecognizer(settings *config.Config, custom []sign.Definition) *recognize.Recognizer {
	var scorer sign.Scorer
	if settings.Recognition.Scorer == "template" {
		scorer = sign.NewTemplateScorer(sign.ReferenceTemplates())
	} else {
		library := append(sign.DefaultLibrary(), custom...)
		scorer = sign.NewHybridScorer(library, settings.Recognition.AcceptThreshold)
	}
	return recognize.New(
		settings.Thresholds(),
		scorer,
		stabilize.New(settings.Stabilizer()),
	)
}

// SetEnabled enables or disables recognition.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.enabled == enabled {
		return
	}
	a.enabled = enabled

	if enabled {
		a.beginSessionLocked()
	} else {
		a.endSessionLocked()
		a.recognizer.Reset()
	}
}

// IsEnabled returns whether recognition is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// LoadPoses loads custom pose definitions from the database and rebuilds the
// recognizer so they match alongside the built-in library.
func (a *App) LoadPoses() error {
	if a.config.Store == nil {
		return nil
	}

	poses, err := a.config.Store.Poses().List()
	if err != nil {
		return err
	}

	custom := make([]sign.Definition, 0, len(poses))
	for _, p := range poses {
		custom = append(custom, p.Definition())
	}

	a.mu.Lock()
	a.recognizer = newRecognizer(&a.config.Settings, custom)
	a.mu.Unlock()

	a.log.WithField("count", len(custom)).Info("loaded custom poses")
	return nil
}

// Subscribe registers a result channel. Every processed frame is delivered
// to all subscribers; slow subscribers drop frames rather than stall the
// pipeline. The returned cancel function removes the subscription.
func (a *App) Subscribe() (<-chan recognize.Result, func()) {
	ch := make(chan recognize.Result, 8)

	a.mu.Lock()
	a.subscribers[ch] = struct{}{}
	a.mu.Unlock()

	cancel := func() {
		a.mu.Lock()
		if _, ok := a.subscribers[ch]; ok {
			delete(a.subscribers, ch)
			close(ch)
		}
		a.mu.Unlock()
	}
	return ch, cancel
}

// publish delivers a result to every subscriber without blocking.
func (a *App) publish(result recognize.Result) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for ch := range a.subscribers {
		select {
		case ch <- result:
		default:
		}
	}
}

// Start opens the camera and begins the pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(IdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	a.log.Info("recognition pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if a.enabled {
		a.enabled = false
		a.endSessionLocked()
	}

	if err := a.camera.Close(); err != nil {
		a.log.WithError(err).Error("error closing camera")
	}
	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			a.log.WithError(err).Error("error closing detector")
		}
	}

	a.log.Info("recognition pipeline stopped")
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// SessionID returns the current session ID, or empty when disabled.
func (a *App) SessionID() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.sessionID
}

func (a *App) beginSessionLocked() {
	if a.config.Store == nil {
		return
	}
	sess := &store.Session{ID: uuid.New().String()}
	if err := a.config.Store.Sessions().Start(sess); err != nil {
		a.log.WithError(err).Error("failed to start session")
		return
	}
	a.sessionID = sess.ID
	a.log.WithField("session", sess.ID).Info("session started")
}

func (a *App) endSessionLocked() {
	if a.config.Store == nil || a.sessionID == "" {
		return
	}
	if err := a.config.Store.Sessions().End(a.sessionID, time.Now()); err != nil {
		a.log.WithError(err).Error("failed to end session")
	}
	a.log.WithField("session", a.sessionID).Info("session ended")
	a.sessionID = ""
}

// recordEvent logs a stable letter promotion to the current session.
func (a *App) recordEvent(letter string, confidence float64) {
	a.mu.RLock()
	st := a.config.Store
	sessionID := a.sessionID
	a.mu.RUnlock()

	if st == nil || sessionID == "" {
		return
	}
	ev := &store.RecognitionEvent{
		SessionID:  sessionID,
		Letter:     letter,
		Confidence: confidence,
	}
	if err := st.Sessions().RecordEvent(ev); err != nil {
		a.log.WithError(err).Error("failed to record recognition event")
	}
}
