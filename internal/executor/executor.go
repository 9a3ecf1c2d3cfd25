package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"media-clipper/internal/logging"
	"media-clipper/internal/mediatypes"
	"media-clipper/internal/metrics"
	"media-clipper/internal/plan"
	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
	"media-clipper/internal/workspace"
)

// Failure classes for plan execution.
var (
	// ErrProcessingTimeout means a fetch or transcode step exceeded its
	// deadline.
	ErrProcessingTimeout = errors.New("processing timed out")
	// ErrFetchFailed means the media fetch step failed or produced no
	// output.
	ErrFetchFailed = errors.New("fetching media failed")
	// ErrTranscodeFailed means the clip or audio extraction step failed.
	ErrTranscodeFailed = errors.New("processing media failed")
)

// Metric labels for the external tools.
const (
	toolYtDlp  = "yt-dlp"
	toolFFmpeg = "ffmpeg"
)

// Config holds the binaries and per-step deadlines for execution.
type Config struct {
	YtDlpPath        string
	FFmpegPath       string
	FetchTimeout     time.Duration
	TranscodeTimeout time.Duration
	SidecarTimeout   time.Duration
	ThumbnailWidth   int
}

// runFunc executes an external command and returns its stdout and
// stderr separately. Swappable in tests.
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, []byte, error)

func runCommand(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

// Executor runs execution plans inside request workspaces by driving
// the external fetch and transcode tools.
type Executor struct {
	cfg Config
	run runFunc
}

// New returns an Executor with the given configuration.
func New(cfg Config) *Executor {
	return &Executor{cfg: cfg, run: runCommand}
}

// Result holds the artifacts a completed plan produced. All paths lie
// inside the request workspace.
type Result struct {
	// Primary is the deliverable media file.
	Primary string
	// Sidecars are the optional artifacts that were actually produced;
	// a missing sidecar is never fatal.
	Sidecars []string
}

// Execute runs the full plan: fetch, optional transcode, rename to the
// title-derived delivery name, then sidecar collection. On error the
// workspace may hold partial output; the caller releases it either way.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, url string, meta *resolver.SourceMetadata, ws *workspace.Handle) (*Result, error) {
	fetched, err := e.Fetch(ctx, p, url, ws)
	if err != nil {
		return nil, err
	}

	primary := fetched
	if p.NeedsTranscode() {
		primary, err = e.Transcode(ctx, p, fetched, ws)
		if err != nil {
			return nil, err
		}
	}

	primary, err = deliverPrimary(primary, p, meta, ws)
	if err != nil {
		return nil, err
	}

	return &Result{
		Primary:  primary,
		Sidecars: e.CollectSidecars(ctx, p, url, meta, ws, primary),
	}, nil
}

// deliverPrimary renames the produced media file to its response name:
// the sanitized source title, the clip window when one applies, and
// the container extension.
func deliverPrimary(produced string, p *plan.Plan, meta *resolver.SourceMetadata, ws *workspace.Handle) (string, error) {
	dst := ws.Path(artifactBase(meta) + clipSuffix(p.Clip) + filepath.Ext(produced))
	if dst == produced {
		return produced, nil
	}
	if err := os.Rename(produced, dst); err != nil {
		return "", fmt.Errorf("naming primary artifact: %w", err)
	}
	return dst, nil
}

// artifactBase is the title-derived stem shared by all delivered
// artifact names.
func artifactBase(meta *resolver.SourceMetadata) string {
	return mediatypes.SanitizeFilename(meta.Title)
}

// clipSuffix tags clipped artifacts with their window so a clip and
// the full video of the same source never collide.
func clipSuffix(clip *request.ClipWindow) string {
	if clip == nil {
		return ""
	}
	return fmt.Sprintf("_%ds-%ds", clip.Start, clip.End)
}

// Fetch downloads the selected streams into the workspace and returns
// the path of the fetched media file.
func (e *Executor) Fetch(ctx context.Context, p *plan.Plan, url string, ws *workspace.Handle) (string, error) {
	fctx, cancel := context.WithTimeout(ctx, e.cfg.FetchTimeout)
	defer cancel()

	args := p.FetchArgs(url, ws.Path("media.%(ext)s"))
	_, stderr, err := e.runTool(fctx, toolYtDlp, e.cfg.YtDlpPath, args)
	if err != nil {
		if fctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: fetch exceeded %s", ErrProcessingTimeout, e.cfg.FetchTimeout)
		}
		return "", fmt.Errorf("%w: %s", ErrFetchFailed, diagnosticTail(stderr))
	}

	return findFetchedFile(ws.Dir())
}

// Transcode runs the plan's ffmpeg step against the fetched file and
// returns the path of the processed output.
func (e *Executor) Transcode(ctx context.Context, p *plan.Plan, input string, ws *workspace.Handle) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, e.cfg.TranscodeTimeout)
	defer cancel()

	output := ws.Path("output" + p.OutputExtension(filepath.Ext(input)))
	args := p.TranscodeArgs(input, output)
	_, stderr, err := e.runTool(tctx, toolFFmpeg, e.cfg.FFmpegPath, args)
	if err != nil {
		if tctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w: transcode exceeded %s", ErrProcessingTimeout, e.cfg.TranscodeTimeout)
		}
		return "", fmt.Errorf("%w: %s", ErrTranscodeFailed, diagnosticTail(stderr))
	}

	info, err := os.Stat(output)
	if err != nil || info.Size() == 0 {
		return "", fmt.Errorf("%w: transcode produced no output", ErrTranscodeFailed)
	}
	return output, nil
}

// runTool invokes one external command with metric and log accounting.
func (e *Executor) runTool(ctx context.Context, tool, name string, args []string) ([]byte, []byte, error) {
	logging.Debug("Invoking %s %v", name, args)
	start := time.Now()

	stdout, stderr, err := e.run(ctx, name, args...)

	elapsed := time.Since(start)
	metrics.ToolInvocationDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.ToolInvocationsTotal.WithLabelValues(tool, status).Inc()
	logging.Debug("%s finished in %v (%s)", tool, elapsed.Round(time.Millisecond), status)

	return stdout, stderr, err
}

// findFetchedFile locates the media file the fetch step wrote. Partial
// downloads and resume bookkeeping files are ignored; when the fetch
// left several candidates the largest wins, since separate tracks are
// merged into the final container.
func findFetchedFile(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("reading workspace: %w", err)
	}

	var best string
	var bestSize int64 = -1
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "media.") || isTempArtifact(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.Size() > bestSize {
			best = filepath.Join(dir, name)
			bestSize = info.Size()
		}
	}
	if best == "" {
		return "", fmt.Errorf("%w: fetch produced no output", ErrFetchFailed)
	}
	return best, nil
}

// isTempArtifact reports whether a filename is fetch-tool bookkeeping
// rather than real output.
func isTempArtifact(name string) bool {
	for _, suffix := range []string{".part", ".ytdl", ".temp", ".tmp"} {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

// diagnosticTail extracts the most useful line from tool stderr: the
// last ERROR-prefixed line if present, otherwise the last non-empty
// line, trimmed to a sane length.
func diagnosticTail(stderr []byte) string {
	var lastLine, lastError string
	for _, line := range strings.Split(string(stderr), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lastLine = line
		if strings.HasPrefix(line, "ERROR:") {
			lastError = strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
	}
	tail := lastError
	if tail == "" {
		tail = lastLine
	}
	if tail == "" {
		tail = "no diagnostic output"
	}
	const maxLen = 200
	if len(tail) > maxLen {
		tail = tail[:maxLen]
	}
	return tail
}
