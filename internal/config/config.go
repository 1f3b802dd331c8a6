// Package config loads the mudra tuning file. All recognition knobs are
// plain numbers with working defaults; a missing file means defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ayusman/mudra/internal/sign"
	"github.com/ayusman/mudra/internal/stabilize"
)

// Config is the top-level mudra.yml configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr,omitempty"`
	// DBPath is the SQLite database location; empty means ~/.mudra/mudra.db.
	DBPath string `yaml:"db_path,omitempty"`
	// StaticDir is the web UI directory to serve, if any.
	StaticDir string `yaml:"static_dir,omitempty"`
	// CameraID selects the capture device.
	CameraID int `yaml:"camera_id,omitempty"`
	// MotionThreshold is the percentage of changed pixels that wakes the
	// pipeline from idle.
	MotionThreshold float64 `yaml:"motion_threshold,omitempty"`

	Recognition Recognition `yaml:"recognition,omitempty"`
}

// Recognition holds the engine tuning.
type Recognition struct {
	// AcceptThreshold is the minimum match score to report a letter.
	AcceptThreshold float64 `yaml:"accept_threshold,omitempty"`

	// Scorer selects the matching strategy: "hybrid" (curl + direction
	// features) or "template" (nearest stored landmark snapshot).
	Scorer string `yaml:"scorer,omitempty"`

	// ExtendEnter and ExtendExit are the curl hysteresis thresholds for
	// the four fingers, as multiples of the wrist-to-knuckle distance.
	ExtendEnter float64 `yaml:"extend_enter,omitempty"`
	ExtendExit  float64 `yaml:"extend_exit,omitempty"`
	// FoldRatio separates a folded finger from a fully closed one.
	FoldRatio float64 `yaml:"fold_ratio,omitempty"`

	// ThumbEnter and ThumbExit are the thumb's hysteresis thresholds,
	// measured against the index knuckle distance.
	ThumbEnter float64 `yaml:"thumb_enter,omitempty"`
	ThumbExit  float64 `yaml:"thumb_exit,omitempty"`

	// Shape predicate thresholds, as fractions of palm size.
	Pinch    float64 `yaml:"pinch,omitempty"`
	Circle   float64 `yaml:"circle,omitempty"`
	Together float64 `yaml:"together,omitempty"`
	Spread   float64 `yaml:"spread,omitempty"`

	// Stabilizer knobs.
	Policy       string  `yaml:"policy,omitempty"` // "majority" or "consecutive"
	WindowSize   int     `yaml:"window_size,omitempty"`
	Consensus    float64 `yaml:"consensus,omitempty"`
	ConsecutiveK int     `yaml:"consecutive_k,omitempty"`
	Alpha        float64 `yaml:"alpha,omitempty"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		Addr:            ":8080",
		CameraID:        0,
		MotionThreshold: 1.0,
		Recognition: Recognition{
			AcceptThreshold: 0.6,
			Scorer:          "hybrid",
			ExtendEnter:     1.25,
			ExtendExit:      1.10,
			FoldRatio:       0.85,
			ThumbEnter:      1.10,
			ThumbExit:       0.95,
			Pinch:           0.35,
			Circle:          0.45,
			Together:        0.35,
			Spread:          0.60,
			Policy:          "majority",
			WindowSize:      7,
			Consensus:       0.55,
			ConsecutiveK:    3,
			Alpha:           0.15,
		},
	}
}

// Load reads the configuration from path, filling unset fields from the
// defaults. A missing file is not an error and yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate performs range checks on every knob.
func (c *Config) Validate() error {
	r := &c.Recognition

	if r.AcceptThreshold < 0 || r.AcceptThreshold > 1 {
		return fmt.Errorf("accept_threshold must be in [0,1], got %g", r.AcceptThreshold)
	}
	if r.ExtendExit > r.ExtendEnter {
		return fmt.Errorf("extend_exit (%g) must not exceed extend_enter (%g)", r.ExtendExit, r.ExtendEnter)
	}
	if r.ThumbExit > r.ThumbEnter {
		return fmt.Errorf("thumb_exit (%g) must not exceed thumb_enter (%g)", r.ThumbExit, r.ThumbEnter)
	}
	if r.FoldRatio <= 0 || r.FoldRatio >= r.ExtendEnter {
		return fmt.Errorf("fold_ratio must be in (0, extend_enter), got %g", r.FoldRatio)
	}
	if r.Scorer != "hybrid" && r.Scorer != "template" {
		return fmt.Errorf("scorer must be hybrid or template, got %q", r.Scorer)
	}
	if r.Policy != "majority" && r.Policy != "consecutive" {
		return fmt.Errorf("policy must be majority or consecutive, got %q", r.Policy)
	}
	if r.WindowSize < 1 {
		return fmt.Errorf("window_size must be at least 1, got %d", r.WindowSize)
	}
	if r.Consensus <= 0 || r.Consensus > 1 {
		return fmt.Errorf("consensus must be in (0,1], got %g", r.Consensus)
	}
	if r.ConsecutiveK < 1 {
		return fmt.Errorf("consecutive_k must be at least 1, got %d", r.ConsecutiveK)
	}
	if r.Alpha <= 0 || r.Alpha > 1 {
		return fmt.Errorf("alpha must be in (0,1], got %g", r.Alpha)
	}
	if r.Together >= r.Spread {
		return fmt.Errorf("together (%g) must be below spread (%g)", r.Together, r.Spread)
	}
	return nil
}

// Thresholds converts the recognition tuning into extractor thresholds.
func (c *Config) Thresholds() sign.Thresholds {
	r := &c.Recognition
	t := sign.Thresholds{
		Pinch:    r.Pinch,
		Circle:   r.Circle,
		Together: r.Together,
		Spread:   r.Spread,
	}
	for f := sign.Index; f < sign.NumFingers; f++ {
		t.Fingers[f] = sign.FingerThresholds{Enter: r.ExtendEnter, Exit: r.ExtendExit, Fold: r.FoldRatio}
	}
	t.Fingers[sign.Thumb] = sign.FingerThresholds{Enter: r.ThumbEnter, Exit: r.ThumbExit, Fold: r.FoldRatio}
	return t
}

// Stabilizer converts the recognition tuning into stabilizer configuration.
func (c *Config) Stabilizer() stabilize.Config {
	r := &c.Recognition
	return stabilize.Config{
		WindowSize:   r.WindowSize,
		Consensus:    r.Consensus,
		Policy:       r.Policy,
		ConsecutiveK: r.ConsecutiveK,
		Alpha:        r.Alpha,
	}
}
