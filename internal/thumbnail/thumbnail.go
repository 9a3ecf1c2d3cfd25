package thumbnail

import (
	"fmt"

	"github.com/disintegration/imaging"

	"media-clipper/internal/logging"

	// Register decoders for formats imaging does not handle natively.
	_ "golang.org/x/image/webp"
)

// jpegQuality balances artifact size against visible quality for
// preview images.
const jpegQuality = 85

// Normalize converts a downloaded thumbnail into a JPEG no wider than
// maxWidth and writes it to dstPath. Source images narrower than
// maxWidth are never upscaled. Origins serve thumbnails as WebP, PNG,
// or JPEG depending on the video; normalizing means the archive always
// carries a predictable format.
func Normalize(srcPath, dstPath string, maxWidth int) error {
	img, err := imaging.Open(srcPath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("decoding thumbnail: %w", err)
	}

	width := img.Bounds().Dx()
	if maxWidth > 0 && width > maxWidth {
		img = imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
		logging.Debug("Resized thumbnail from %dpx to %dpx wide", width, maxWidth)
	}

	if err := imaging.Save(img, dstPath, imaging.JPEGQuality(jpegQuality)); err != nil {
		return fmt.Errorf("encoding thumbnail: %w", err)
	}
	return nil
}
