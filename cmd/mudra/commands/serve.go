package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

var serveHeadless bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the recognition daemon",
	Long: `Run the full recognition daemon: camera pipeline, HTTP API and
system tray.

The daemon starts with recognition disabled; enable it from the tray menu
or via PUT /api/recognition/enabled.

Examples:
  # Run with the default configuration
  mudra serve

  # Run with a custom tuning file, without the tray icon
  mudra serve --config ./mudra.yml --headless`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveHeadless, "headless", false, "Run without the system tray icon")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dir, err := dataDir()
		if err != nil {
			return err
		}
		dbPath = filepath.Join(dir, "mudra.db")
	}

	st, err := store.New(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	a := app.New(app.Config{
		Store:    st,
		Settings: cfg,
	})
	if err := a.LoadPoses(); err != nil {
		return fmt.Errorf("failed to load custom poses: %w", err)
	}
	if err := a.Start(); err != nil {
		return fmt.Errorf("failed to start pipeline: %w", err)
	}
	defer a.Stop()

	srv := server.New(server.Config{
		StaticDir: cfg.StaticDir,
		Store:     st,
		App:       a,
	})

	logrus.WithField("addr", cfg.Addr).Info("starting HTTP server")

	if serveHeadless {
		return srv.ListenAndServe(cfg.Addr)
	}

	go func() {
		if err := srv.ListenAndServe(cfg.Addr); err != nil {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnSettings(func() {
		logrus.Infof("settings: http://localhost%s/", cfg.Addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})

	// Keep the tray letter display current.
	results, cancel := a.Subscribe()
	defer cancel()
	go func() {
		for result := range results {
			if result.Label != nil {
				t.SetLastLetter(*result.Label)
			}
		}
	}()

	t.Run()
	return nil
}

// loadConfig reads the configuration from --config, or from the default
// location under the data directory.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		dir, err := dataDir()
		if err != nil {
			return config.Config{}, err
		}
		path = filepath.Join(dir, "mudra.yml")
	}
	return config.Load(path)
}

// dataDir returns ~/.mudra, creating it if needed.
func dataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(homeDir, ".mudra")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}
