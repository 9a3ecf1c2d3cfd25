package handlers

import (
	"encoding/json"
	"net/http"

	"media-clipper/internal/resolver"
)

// InfoRequest is the body of a metadata-only request.
type InfoRequest struct {
	URL string `json:"url"`
}

// InfoResponse wraps resolved metadata in the response envelope.
type InfoResponse struct {
	Status    string             `json:"status"`
	VideoInfo resolver.VideoInfo `json:"video_info"`
}

// Info resolves source metadata without downloading anything.
func (h *Handlers) Info(w http.ResponseWriter, r *http.Request) {
	var req InfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "No JSON data provided", http.StatusBadRequest)
		return
	}
	if req.URL == "" {
		writeJSONError(w, "URL is required", http.StatusBadRequest)
		return
	}

	info, err := h.pipe.Info(r.Context(), req.URL)
	if err != nil {
		h.writePipelineError(w, r, "Info", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, InfoResponse{Status: "success", VideoInfo: info})
}
