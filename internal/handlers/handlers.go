package handlers

import (
	"context"
	"io"
	"time"

	"media-clipper/internal/config"
	"media-clipper/internal/pipeline"
	"media-clipper/internal/resolver"
	"media-clipper/internal/workspace"
)

// Pipeline is the processing surface the handlers drive. It is
// satisfied by *pipeline.Pipeline.
type Pipeline interface {
	Download(ctx context.Context, body io.Reader) (*pipeline.Outcome, error)
	Info(ctx context.Context, url string) (resolver.VideoInfo, error)
}

type Handlers struct {
	pipe      Pipeline
	spaces    *workspace.Manager
	cfg       *config.Config
	startTime time.Time
}

func New(pipe Pipeline, spaces *workspace.Manager, cfg *config.Config) *Handlers {
	return &Handlers{
		pipe:      pipe,
		spaces:    spaces,
		cfg:       cfg,
		startTime: time.Now(),
	}
}
