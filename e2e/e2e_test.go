package e2e

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/capture"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/detector"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/store"
)

func TestE2E_CompleteWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping e2e test")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "mudra.db")

	s, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	defer s.Close()

	settings := config.Default()
	settings.DBPath = dbPath

	application := app.New(app.Config{Store: s, Settings: settings})
	application.SetDetector(detector.NewMockDetector())
	application.SetCamera(capture.NewMockCamera())

	srv := server.New(server.Config{Store: s, App: application})
	ts := httptest.NewServer(srv)
	defer ts.Close()

	client := ts.Client()

	t.Run("Health", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/health")
		if err != nil {
			t.Fatalf("health error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}
	})

	var customID string

	t.Run("CreateCustomLetter", func(t *testing.T) {
		body := `{
			"letter": "x",
			"fingers": {"thumb": "closed", "index": "open", "middle": "closed", "ring": "closed", "pinky": "closed"},
			"directions": {"index": {"x": 0, "y": 0.5, "z": -0.8}}
		}`
		resp, err := client.Post(ts.URL+"/api/letters", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatalf("create letter error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
		}

		var created struct {
			ID     string `json:"id"`
			Letter string `json:"letter"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if created.Letter != "X" {
			t.Errorf("letter = %q, want X", created.Letter)
		}
		customID = created.ID
	})

	t.Run("ListLettersIncludesCustom", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/letters")
		if err != nil {
			t.Fatalf("list letters error = %v", err)
		}
		defer resp.Body.Close()

		var list struct {
			Letters []struct {
				Letter  string `json:"letter"`
				Builtin bool   `json:"builtin"`
			} `json:"letters"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
			t.Fatalf("decode error = %v", err)
		}

		foundBuiltin, foundCustom := false, false
		for _, l := range list.Letters {
			if l.Letter == "A" && l.Builtin {
				foundBuiltin = true
			}
			if l.Letter == "X" && !l.Builtin {
				foundCustom = true
			}
		}
		if !foundBuiltin || !foundCustom {
			t.Errorf("letter list missing entries: builtin=%v custom=%v", foundBuiltin, foundCustom)
		}
	})

	t.Run("LoadPoses", func(t *testing.T) {
		if err := application.LoadPoses(); err != nil {
			t.Fatalf("LoadPoses() error = %v", err)
		}
	})

	var sessionID string

	t.Run("EnableRecognition", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/recognition/enabled", strings.NewReader(`{"enabled": true}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("enable error = %v", err)
		}
		defer resp.Body.Close()

		var state struct {
			Enabled bool   `json:"enabled"`
			Session string `json:"session"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if !state.Enabled {
			t.Error("recognition should be enabled")
		}
		if state.Session == "" {
			t.Fatal("enabling recognition should open a session")
		}
		sessionID = state.Session
	})

	t.Run("RecognitionProducesLetter", func(t *testing.T) {
		// Drive the recognizer directly through the app's detector
		// seam rather than waiting on camera timing.
		mock := detector.NewMockDetector()
		mock.SetHands([]detector.HandLandmarks{detector.FistLandmarks()})
		application.SetDetector(mock)

		ch, cancel := application.Subscribe()
		defer cancel()

		hands, err := application.Detector().Detect(nil)
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if len(hands) != 1 {
			t.Fatalf("mock detector returned %d hands, want 1", len(hands))
		}

		var label string
		for i := 0; i < 10; i++ {
			result := application.ProcessFrame(hands)
			if result.Label != nil {
				label = *result.Label
			}
		}
		if label != "A" {
			t.Errorf("sustained fist should recognize A, got %q", label)
		}

		select {
		case result := <-ch:
			_ = result
		default:
			t.Error("subscriber should have received frame results")
		}
	})

	t.Run("DisableRecognition", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPut, ts.URL+"/api/recognition/enabled", strings.NewReader(`{"enabled": false}`))
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("disable error = %v", err)
		}
		defer resp.Body.Close()

		var state struct {
			Enabled bool `json:"enabled"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if state.Enabled {
			t.Error("recognition should be disabled")
		}
	})

	t.Run("SessionRecorded", func(t *testing.T) {
		resp, err := client.Get(ts.URL + "/api/sessions/" + sessionID)
		if err != nil {
			t.Fatalf("get session error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
		}

		var sess struct {
			ID      string  `json:"id"`
			EndedAt *string `json:"ended_at"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
			t.Fatalf("decode error = %v", err)
		}
		if sess.ID != sessionID {
			t.Errorf("session id = %q, want %q", sess.ID, sessionID)
		}
		if sess.EndedAt == nil {
			t.Error("disabling recognition should close the session")
		}
	})

	t.Run("DeleteCustomLetter", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/api/letters/"+customID, nil)
		resp, err := client.Do(req)
		if err != nil {
			t.Fatalf("delete error = %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusNoContent {
			t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
		}
	})

	application.Stop()
}
