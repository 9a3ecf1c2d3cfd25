package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
	"media-clipper/internal/plan"
	"media-clipper/internal/resolver"
	"media-clipper/internal/thumbnail"
	"media-clipper/internal/workspace"
)

// CollectSidecars gathers the optional artifacts the plan asks for:
// a derived audio track, subtitle tracks, a normalized thumbnail, and
// the metadata document. Sidecar failures degrade the payload instead
// of failing the request, so every error here is logged, counted, and
// swallowed.
func (e *Executor) CollectSidecars(ctx context.Context, p *plan.Plan, url string, meta *resolver.SourceMetadata, ws *workspace.Handle, primary string) []string {
	var sidecars []string
	base := artifactBase(meta)

	if p.WantsDerivedAudio() {
		if path, err := e.deriveAudio(ctx, p, primary, ws); err != nil {
			skipSidecar("audio", err)
		} else {
			sidecars = append(sidecars, path)
		}
	}

	seen := make(map[string]bool)
	for _, lang := range p.SubtitleLanguages {
		sidecars = append(sidecars, e.fetchSubtitle(ctx, p, lang, url, base, ws, seen)...)
	}

	if p.WantThumbnail {
		if path, err := e.fetchThumbnail(ctx, p, url, base, ws); err != nil {
			skipSidecar("thumbnail", err)
		} else {
			sidecars = append(sidecars, path)
		}
	}

	if p.WantMetadata {
		path := ws.Path(base + ".info.json")
		if err := writeMetadata(meta, path); err != nil {
			skipSidecar("metadata", err)
		} else {
			sidecars = append(sidecars, path)
		}
	}

	return sidecars
}

func skipSidecar(kind string, err error) {
	logging.Warn("%s sidecar skipped: %v", kind, err)
	metrics.SidecarOmissionsTotal.WithLabelValues(kind).Inc()
}

// deriveAudio extracts an mp3 track from the delivered primary. The
// output shares the primary's stem, clip suffix included, since the
// track covers exactly the delivered window.
func (e *Executor) deriveAudio(ctx context.Context, p *plan.Plan, primary string, ws *workspace.Handle) (string, error) {
	sctx, cancel := context.WithTimeout(ctx, e.cfg.SidecarTimeout)
	defer cancel()

	output := strings.TrimSuffix(primary, filepath.Ext(primary)) + ".mp3"
	args := p.AudioExtractionArgs(primary, output)
	if _, stderr, err := e.runTool(sctx, toolFFmpeg, e.cfg.FFmpegPath, args); err != nil {
		return "", fmt.Errorf("extracting audio: %s", diagnosticTail(stderr))
	}
	if info, err := os.Stat(output); err != nil || info.Size() == 0 {
		return "", fmt.Errorf("audio extraction produced no output")
	}
	return output, nil
}

// fetchSubtitle runs one per-language subtitle fetch and returns the
// subtitle files it produced, renamed to the title-derived scheme.
// Languages are isolated so one missing track cannot take down the
// rest.
func (e *Executor) fetchSubtitle(ctx context.Context, p *plan.Plan, lang, url, base string, ws *workspace.Handle, seen map[string]bool) []string {
	sctx, cancel := context.WithTimeout(ctx, e.cfg.SidecarTimeout)
	defer cancel()

	args := p.SubtitleArgs(lang, url, ws.Path("subs.%(ext)s"))
	if _, stderr, err := e.runTool(sctx, toolYtDlp, e.cfg.YtDlpPath, args); err != nil {
		skipSidecar("subtitle", fmt.Errorf("fetching %q: %s", lang, diagnosticTail(stderr)))
		return nil
	}

	produced, err := newSubtitleFiles(ws.Dir(), seen)
	if err != nil {
		skipSidecar("subtitle", fmt.Errorf("scanning for %q: %w", lang, err))
		return nil
	}
	if len(produced) == 0 {
		logging.Debug("No subtitle track produced for %q", lang)
		return nil
	}

	var files []string
	for _, src := range produced {
		dst := ws.Path(base + strings.TrimPrefix(filepath.Base(src), "subs"))
		if err := os.Rename(src, dst); err != nil {
			skipSidecar("subtitle", fmt.Errorf("naming %s: %w", filepath.Base(src), err))
			continue
		}
		files = append(files, dst)
	}
	return files
}

// newSubtitleFiles returns subtitle files in dir not yet recorded in
// seen, marking them as it goes.
func newSubtitleFiles(dir string, seen map[string]bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "subs.") || seen[name] {
			continue
		}
		if !strings.HasSuffix(name, ".srt") && !strings.HasSuffix(name, ".vtt") {
			continue
		}
		seen[name] = true
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}

// fetchThumbnail downloads the source thumbnail and normalizes it to a
// JPEG inside the workspace.
func (e *Executor) fetchThumbnail(ctx context.Context, p *plan.Plan, url, base string, ws *workspace.Handle) (string, error) {
	sctx, cancel := context.WithTimeout(ctx, e.cfg.SidecarTimeout)
	defer cancel()

	args := p.ThumbnailArgs(url, ws.Path("thumb.%(ext)s"))
	if _, stderr, err := e.runTool(sctx, toolYtDlp, e.cfg.YtDlpPath, args); err != nil {
		return "", fmt.Errorf("fetching thumbnail: %s", diagnosticTail(stderr))
	}

	src, err := findThumbnailFile(ws.Dir())
	if err != nil {
		return "", err
	}
	dst := ws.Path(base + ".jpg")
	if err := thumbnail.Normalize(src, dst, e.cfg.ThumbnailWidth); err != nil {
		return "", err
	}
	return dst, nil
}

func findThumbnailFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() && strings.HasPrefix(name, "thumb.") && !isTempArtifact(name) {
			return filepath.Join(dir, name), nil
		}
	}
	return "", fmt.Errorf("thumbnail fetch produced no output")
}

// writeMetadata writes the caller-facing metadata document.
func writeMetadata(meta *resolver.SourceMetadata, path string) error {
	data, err := json.MarshalIndent(meta.Info(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
