package packager

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"media-clipper/internal/logging"
	"media-clipper/internal/mediatypes"
	"media-clipper/internal/metrics"
	"media-clipper/internal/workspace"
)

// ErrPackaging means the response payload could not be assembled even
// though the primary artifact was already produced.
var ErrPackaging = errors.New("packaging failed")

// Artifact is the single deliverable handed to the transport layer.
type Artifact struct {
	Kind        mediatypes.Kind
	Path        string
	Filename    string
	ContentType string
	Size        int64
}

// Package decides the response shape for a completed execution. A
// primary with no sidecars is served directly; a primary with any
// sidecars is bundled into a zip archive named after the primary's
// stem. The archive is written into the same workspace so the TTL
// sweep covers it too.
func Package(primary string, sidecars []string, ws *workspace.Handle) (*Artifact, error) {
	if len(sidecars) == 0 {
		return single(primary)
	}
	return archive(primary, sidecars, ws)
}

func single(path string) (*Artifact, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	metrics.DeliveriesTotal.WithLabelValues("single").Inc()
	return &Artifact{
		Kind:        mediatypes.KindForPath(path),
		Path:        path,
		Filename:    filepath.Base(path),
		ContentType: mediatypes.MimeForPath(path),
		Size:        info.Size(),
	}, nil
}

func archive(primary string, sidecars []string, ws *workspace.Handle) (*Artifact, error) {
	stem := strings.TrimSuffix(filepath.Base(primary), filepath.Ext(primary))
	path := ws.Path(stem + ".zip")

	if err := writeArchive(path, append([]string{primary}, sidecars...)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackaging, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPackaging, err)
	}

	logging.Debug("Packaged %d artifacts into %s (%d bytes)", len(sidecars)+1, filepath.Base(path), info.Size())
	metrics.DeliveriesTotal.WithLabelValues("archive").Inc()
	return &Artifact{
		Kind:        mediatypes.KindArchive,
		Path:        path,
		Filename:    stem + ".zip",
		ContentType: mediatypes.GetMimeType(".zip"),
		Size:        info.Size(),
	}, nil
}

// writeArchive builds a zip containing every file under its own base
// name. Any failure aborts the archive; a partial bundle is never
// delivered.
func writeArchive(path string, files []string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	for _, file := range files {
		if err := addToArchive(zw, file); err != nil {
			zw.Close()
			return err
		}
	}
	return zw.Close()
}

func addToArchive(zw *zip.Writer, file string) error {
	in, err := os.Open(file)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(filepath.Base(file))
	if err != nil {
		return err
	}
	_, err = io.Copy(w, in)
	return err
}
