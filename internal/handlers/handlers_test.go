package handlers

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/mediatypes"
	"media-clipper/internal/packager"
	"media-clipper/internal/pipeline"
	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
	"media-clipper/internal/workspace"
)

// fakePipeline satisfies Pipeline without touching the network or the
// external tools.
type fakePipeline struct {
	outcome *pipeline.Outcome
	err     error

	info    resolver.VideoInfo
	infoErr error
	lastURL string
}

func (f *fakePipeline) Download(_ context.Context, _ io.Reader) (*pipeline.Outcome, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.outcome, nil
}

func (f *fakePipeline) Info(_ context.Context, url string) (resolver.VideoInfo, error) {
	f.lastURL = url
	if f.infoErr != nil {
		return resolver.VideoInfo{}, f.infoErr
	}
	return f.info, nil
}

func newTestHandlers(t *testing.T, pipe Pipeline) (*Handlers, *workspace.Manager) {
	t.Helper()

	spaces, err := workspace.NewManager(filepath.Join(t.TempDir(), "scratch"), time.Hour)
	if err != nil {
		t.Fatalf("creating workspace manager: %v", err)
	}

	cfg := config.Default()
	cfg.ScratchDir = spaces.Root()

	return New(pipe, spaces, cfg), spaces
}

// stageOutcome builds a delivered-artifact outcome backed by a real
// file in a real workspace, the way the pipeline hands results over.
func stageOutcome(t *testing.T, spaces *workspace.Manager, filename, contentType string, body []byte) *pipeline.Outcome {
	t.Helper()

	ws, err := spaces.Acquire()
	if err != nil {
		t.Fatalf("acquiring workspace: %v", err)
	}

	path := ws.Path(filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	return &pipeline.Outcome{
		Artifact: &packager.Artifact{
			Kind:        mediatypes.KindVideo,
			Path:        path,
			Filename:    filename,
			ContentType: contentType,
			Size:        int64(len(body)),
		},
		Resolution: resolver.Resolution{
			Requested: request.Quality720p,
			Height:    720,
			Label:     "720p",
			Selector:  "bestvideo[height<=720]+bestaudio/best[height<=720]",
		},
		Mode:      request.ModeBalanced,
		Workspace: ws,
	}
}

func countWorkspaces(t *testing.T, spaces *workspace.Manager) int {
	t.Helper()
	entries, err := spaces.List()
	if err != nil {
		t.Fatalf("listing workspaces: %v", err)
	}
	return len(entries)
}
