package app

import (
	"time"

	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/recognize"
)

// runPipeline is the main recognition loop. It manages the transitions
// between idle and active modes based on motion detection.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS)
// 2. On motion detected, switch to active mode (ActiveFPS)
// 3. Run hand detection and the recognition pipeline
// 4. Publish every result to subscribers; log stable letter changes
// 5. After 2s without motion, switch back to idle mode
//
// Idle frames still feed the recognizer as no-detection observations so
// the reported confidence decays instead of freezing.
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()
	lastStable := ""

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			if !a.IsEnabled() {
				continue
			}

			var result recognize.Result
			frame, err := a.Camera().ReadFrame()
			if err != nil {
				// Keep the no-detection signal flowing while the
				// camera fails, so confidence decays instead of
				// freezing on stale state.
				a.log.WithError(err).Error("error reading frame")
				result = a.ProcessNone()
			} else {
				motionDetected, _ := a.motion.Detect(frame)

				if motionDetected {
					lastMotionTime = time.Now()

					if !activeMode {
						activeMode = true
						a.Camera().SetFPS(ActiveFPS)
						frameInterval = time.Second / time.Duration(ActiveFPS)
						ticker.Reset(frameInterval)
						a.log.Debug("switched to active mode")
					}
				} else if activeMode {
					if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
						activeMode = false
						a.Camera().SetFPS(IdleFPS)
						frameInterval = time.Second / time.Duration(IdleFPS)
						ticker.Reset(frameInterval)
						a.log.Debug("switched to idle mode")
					}
				}

				if !activeMode || a.Detector() == nil {
					frame.Close()
					result = a.ProcessNone()
				} else {
					hands, err := a.Detector().Detect(frame)
					frame.Close()
					if err != nil {
						a.log.WithError(err).Error("error detecting hands")
						result = a.ProcessNone()
					} else {
						result = a.ProcessFrame(hands)
					}
				}
			}

			stable := ""
			if result.Label != nil {
				stable = *result.Label
			}
			if stable != lastStable {
				if stable != "" {
					a.log.WithFields(map[string]interface{}{
						"letter":     stable,
						"confidence": result.Confidence,
					}).Info("letter recognized")
					a.recordEvent(stable, result.Confidence)
				}
				lastStable = stable
			}
		}
	}
}

// ProcessFrame runs one set of detected hands through the recognizer and
// publishes the result to subscribers.
func (a *App) ProcessFrame(hands []detector.HandLandmarks) recognize.Result {
	a.mu.Lock()
	result := a.recognizer.Process(hands)
	a.mu.Unlock()

	a.publish(result)
	return result
}

// ProcessNone feeds a no-detection frame so confidence decays while idle.
func (a *App) ProcessNone() recognize.Result {
	a.mu.Lock()
	result := a.recognizer.ProcessNone()
	a.mu.Unlock()

	a.publish(result)
	return result
}
