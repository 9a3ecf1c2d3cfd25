package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"

	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
	"media-clipper/internal/pipeline"
	"media-clipper/internal/streaming"
)

// Download runs the full pipeline and streams the artifact back as an
// attachment. The workspace holding the artifact is released when the
// transfer ends, whether or not it completed.
func (h *Handlers) Download(w http.ResponseWriter, r *http.Request) {
	outcome, err := h.pipe.Download(r.Context(), r.Body)
	if err != nil {
		h.writePipelineError(w, r, "Download", err)
		return
	}
	defer outcome.Workspace.Release()

	artifact := outcome.Artifact

	f, err := os.Open(artifact.Path)
	if err != nil {
		logging.Error("Download: artifact missing before delivery: %v", err)
		writeJSONError(w, "Failed to deliver media file", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.FormatInt(artifact.Size, 10))
	if outcome.Resolution.Label != "" {
		w.Header().Set("X-Resolved-Quality", outcome.Resolution.Label)
	}
	if outcome.Resolution.Changed {
		w.Header().Set("X-Quality-Changed", "true")
		w.Header().Set("X-Quality-Change-Reason", outcome.Resolution.ChangeReason)
	}

	sent, err := streaming.Stream(r.Context(), w, f, streaming.DefaultTimeoutWriterConfig())
	metrics.DownloadBytesTotal.Add(float64(sent))
	if err != nil {
		logging.Warn("Download: transfer of %s aborted after %d of %d bytes: %v",
			artifact.Filename, sent, artifact.Size, err)
		return
	}

	logging.Info("Download: delivered %s (%d bytes, mode %s)", artifact.Filename, sent, outcome.Mode)
}

// writePipelineError maps a pipeline error onto a JSON error response.
// Nothing is written when the client has already gone away.
func (h *Handlers) writePipelineError(w http.ResponseWriter, r *http.Request, op string, err error) {
	if r.Context().Err() != nil {
		logging.Debug("%s: client gone before response: %v", op, err)
		return
	}

	status, message := pipeline.Describe(err)
	if status >= http.StatusInternalServerError {
		logging.Error("%s failed: %v", op, err)
	} else {
		logging.Warn("%s rejected: %v", op, err)
	}
	writeJSONError(w, message, status)
}
