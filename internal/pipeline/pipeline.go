package pipeline

import (
	"context"
	"io"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/executor"
	"media-clipper/internal/logging"
	"media-clipper/internal/metrics"
	"media-clipper/internal/packager"
	"media-clipper/internal/plan"
	"media-clipper/internal/request"
	"media-clipper/internal/resolver"
	"media-clipper/internal/workers"
	"media-clipper/internal/workspace"
)

// metadataResolver and planExecutor are the two external-tool seams,
// narrowed to the calls the pipeline makes so tests can substitute
// fakes for the real yt-dlp and ffmpeg drivers.
type metadataResolver interface {
	Resolve(ctx context.Context, url string) (*resolver.SourceMetadata, error)
}

type planExecutor interface {
	Execute(ctx context.Context, p *plan.Plan, url string, meta *resolver.SourceMetadata, ws *workspace.Handle) (*executor.Result, error)
}

// Pipeline runs download requests through the fixed stage sequence.
// One Pipeline serves all requests; per-request state lives in the
// workspace.
type Pipeline struct {
	opts     request.Options
	limits   resolver.Limits
	resolver metadataResolver
	executor planExecutor
	spaces   *workspace.Manager
	gate     *workers.Gate
}

// New builds a Pipeline from the merged configuration and the shared
// workspace manager.
func New(cfg *config.Config, spaces *workspace.Manager) *Pipeline {
	return &Pipeline{
		opts: request.Options{
			AllowedDomains: cfg.AllowedDomains,
			DefaultMode:    request.Mode(cfg.DefaultMode),
		},
		limits: resolver.Limits{
			MaxVideoDuration:  cfg.MaxVideoDuration,
			MaxClipDuration:   cfg.MaxClipDuration,
			MinClipDuration:   cfg.MinClipDuration,
			DurationTolerance: cfg.DurationTolerance,
		},
		resolver: resolver.New(cfg.YtDlpPath, cfg.ResolveTimeout),
		executor: executor.New(executor.Config{
			YtDlpPath:        cfg.YtDlpPath,
			FFmpegPath:       cfg.FFmpegPath,
			FetchTimeout:     cfg.FetchTimeout,
			TranscodeTimeout: cfg.TranscodeTimeout,
			SidecarTimeout:   cfg.SidecarTimeout,
			ThumbnailWidth:   cfg.ThumbnailMaxWidth,
		}),
		spaces: spaces,
		gate:   workers.NewGate(cfg.MaxConcurrentJobs),
	}
}

// Outcome is a completed download ready for delivery. The caller must
// release the workspace after streaming the artifact; until then the
// artifact path stays valid.
type Outcome struct {
	Artifact   *packager.Artifact
	Resolution resolver.Resolution
	Mode       request.Mode
	Workspace  *workspace.Handle
}

// Download parses a request body and runs it through the pipeline.
// Validation failures reject before any external tool runs and before
// any workspace exists.
func (p *Pipeline) Download(ctx context.Context, body io.Reader) (*Outcome, error) {
	d, err := request.Parse(body, p.opts)
	if err != nil {
		metrics.DownloadErrorsTotal.WithLabelValues(classify(err)).Inc()
		return nil, err
	}
	mode := d.Mode.String()

	// A failed wait means the client gave up while queued; there is no
	// outcome to account.
	if err := p.gate.Acquire(ctx); err != nil {
		return nil, err
	}
	defer p.gate.Release()

	metrics.DownloadsInProgress.Inc()
	defer metrics.DownloadsInProgress.Dec()
	start := time.Now()

	outcome, err := p.run(ctx, d)
	if err != nil {
		metrics.DownloadsTotal.WithLabelValues(mode, "error").Inc()
		metrics.DownloadErrorsTotal.WithLabelValues(classify(err)).Inc()
		return nil, err
	}

	metrics.DownloadsTotal.WithLabelValues(mode, "success").Inc()
	metrics.DownloadDuration.WithLabelValues(mode).Observe(time.Since(start).Seconds())
	return outcome, nil
}

// run executes the post-validation stages for a parsed descriptor.
func (p *Pipeline) run(ctx context.Context, d *request.Descriptor) (*Outcome, error) {
	logging.Info("Download request: %s (mode=%s, quality=%s)", d.URL, d.Mode, d.VideoQuality)

	meta, err := p.resolver.Resolve(ctx, d.URL)
	if err != nil {
		return nil, err
	}
	logging.Debug("Resolved %q: duration=%ds, heights=%v", meta.Title, meta.Duration, meta.VideoHeights())

	if err := resolver.CheckPolicy(meta, d.Clip, p.limits); err != nil {
		return nil, err
	}

	// Quality resolution applies to video deliveries with the standard
	// selector; audio extraction and caller-supplied format strings pick
	// their streams directly.
	var res resolver.Resolution
	if d.CustomFormat == "" && d.Mode != request.ModeAudioOnly {
		res, err = resolver.ResolveQuality(meta, d.VideoQuality)
		if err != nil {
			return nil, err
		}
		if res.Changed {
			metrics.QualityFallbacksTotal.Inc()
			logging.Info("Quality adjusted for %s: %s", d.URL, res.ChangeReason)
		}
	}

	pl := plan.Build(d, res, meta)

	ws, err := p.spaces.Acquire()
	if err != nil {
		return nil, err
	}

	result, err := p.executor.Execute(ctx, pl, d.URL, meta, ws)
	if err != nil {
		ws.Release()
		return nil, err
	}

	artifact, err := packager.Package(result.Primary, result.Sidecars, ws)
	if err != nil {
		ws.Release()
		return nil, err
	}

	logging.Info("Prepared %s (%s, %d bytes)", artifact.Filename, d.Mode, artifact.Size)
	return &Outcome{
		Artifact:   artifact,
		Resolution: res,
		Mode:       d.Mode,
		Workspace:  ws,
	}, nil
}

// Info resolves source metadata without downloading anything. The URL
// passes the same allow-list as download requests.
func (p *Pipeline) Info(ctx context.Context, url string) (resolver.VideoInfo, error) {
	if err := request.ValidateSourceURL(url, p.opts.AllowedDomains); err != nil {
		return resolver.VideoInfo{}, err
	}
	meta, err := p.resolver.Resolve(ctx, url)
	if err != nil {
		return resolver.VideoInfo{}, err
	}
	return meta.Info(), nil
}
