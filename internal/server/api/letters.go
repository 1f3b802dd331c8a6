// Package api provides HTTP API handlers for the mudra recognition system.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/geom"
	"github.com/ayusman/mudra/internal/sign"
	"github.com/ayusman/mudra/internal/store"
)

// LetterHandler handles HTTP requests for the letter library: the built-in
// definitions plus user-defined custom poses.
type LetterHandler struct {
	store *store.Store
}

// NewLetterHandler creates a new LetterHandler with the given store.
func NewLetterHandler(s *store.Store) *LetterHandler {
	return &LetterHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *LetterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/letters or /api/letters/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/letters")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			h.list(w, r)
		case http.MethodPost:
			h.create(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	id := path
	switch r.Method {
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type directionJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

type createPoseRequest struct {
	Letter        string                   `json:"letter"`
	Fingers       map[string]string        `json:"fingers"`
	Directions    map[string]directionJSON `json:"directions"`
	RequirePinch  bool                     `json:"require_pinch"`
	RequireCircle bool                     `json:"require_circle"`
}

type letterResponse struct {
	ID            string                   `json:"id,omitempty"`
	Letter        string                   `json:"letter"`
	Builtin       bool                     `json:"builtin"`
	Fingers       map[string]string        `json:"fingers"`
	Directions    map[string]directionJSON `json:"directions,omitempty"`
	RequirePinch  bool                     `json:"require_pinch,omitempty"`
	RequireCircle bool                     `json:"require_circle,omitempty"`
}

type listLettersResponse struct {
	Letters []letterResponse `json:"letters"`
}

// definitionToResponse converts a library definition to a letterResponse.
func definitionToResponse(def sign.Definition, id string, builtin bool) letterResponse {
	resp := letterResponse{
		ID:            id,
		Letter:        def.Letter,
		Builtin:       builtin,
		Fingers:       make(map[string]string, sign.NumFingers),
		RequirePinch:  def.RequirePinch,
		RequireCircle: def.RequireCircle,
	}
	for f := sign.Thumb; f < sign.NumFingers; f++ {
		resp.Fingers[strings.ToLower(f.String())] = def.Curls[f].String()
	}
	if len(def.Directions) > 0 {
		resp.Directions = make(map[string]directionJSON, len(def.Directions))
		for f, d := range def.Directions {
			resp.Directions[strings.ToLower(f.String())] = directionJSON{X: d.X, Y: d.Y, Z: d.Z}
		}
	}
	return resp
}

// parseFinger maps a lowercase finger name to its index.
func parseFinger(name string) (sign.Finger, error) {
	for f := sign.Thumb; f < sign.NumFingers; f++ {
		if strings.EqualFold(name, f.String()) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown finger %q", name)
}

// parseRequirement maps a requirement keyword to its value.
func parseRequirement(s string) (sign.Requirement, error) {
	switch s {
	case "any", "":
		return sign.Any, nil
	case "open":
		return sign.MustBeOpen, nil
	case "closed":
		return sign.MustBeClosed, nil
	default:
		return sign.Any, fmt.Errorf("unknown requirement %q", s)
	}
}

// list handles GET /api/letters and returns the built-in library followed
// by all custom poses.
func (h *LetterHandler) list(w http.ResponseWriter, r *http.Request) {
	response := listLettersResponse{
		Letters: make([]letterResponse, 0),
	}

	for _, def := range sign.DefaultLibrary() {
		response.Letters = append(response.Letters, definitionToResponse(def, "", true))
	}

	poses, err := h.store.Poses().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list custom poses")
		return
	}
	for _, p := range poses {
		response.Letters = append(response.Letters, definitionToResponse(p.Definition(), p.ID, false))
	}

	writeJSON(w, http.StatusOK, response)
}

// create handles POST /api/letters and creates a new custom pose.
func (h *LetterHandler) create(w http.ResponseWriter, r *http.Request) {
	var req createPoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	req.Letter = strings.ToUpper(strings.TrimSpace(req.Letter))
	if req.Letter == "" {
		writeError(w, http.StatusBadRequest, "Letter is required")
		return
	}

	for _, def := range sign.DefaultLibrary() {
		if def.Letter == req.Letter {
			writeError(w, http.StatusConflict, "Letter is built in")
			return
		}
	}

	pose := &store.CustomPose{
		ID:            uuid.New().String(),
		Letter:        req.Letter,
		RequirePinch:  req.RequirePinch,
		RequireCircle: req.RequireCircle,
	}

	for name, reqStr := range req.Fingers {
		finger, err := parseFinger(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		requirement, err := parseRequirement(reqStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		pose.Requirements[finger] = requirement
	}

	for name, d := range req.Directions {
		finger, err := parseFinger(name)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if pose.Directions == nil {
			pose.Directions = make(map[sign.Finger]geom.Vec3)
		}
		pose.Directions[finger] = geom.Vec3{X: d.X, Y: d.Y, Z: d.Z}.Normalize()
	}

	if err := h.store.Poses().Create(pose); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create pose")
		return
	}

	writeJSON(w, http.StatusCreated, definitionToResponse(pose.Definition(), pose.ID, false))
}

// delete handles DELETE /api/letters/{id} and removes a custom pose.
func (h *LetterHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Poses().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Pose not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete pose")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
