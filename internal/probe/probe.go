package probe

import (
	"image"
	"io"
	"strings"

	// Decoders registered for DecodeConfig: stdlib formats plus the
	// extended set from golang.org/x/image.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Result holds whatever intrinsic properties could be read from the object.
// Absent fields stay nil; callers must not treat that as an error.
type Result struct {
	Width    *int
	Height   *int
	Duration *int
}

// Prober extracts intrinsic media dimensions from raw bytes. Implementations
// fail open: anything undecodable yields an all-absent Result.
type Prober interface {
	Probe(r io.Reader, mimeType string) Result
}

// Image reads image dimensions via image.DecodeConfig. Video and audio
// durations stay absent; decoding those would need a full media toolchain
// and the upload path must never block on it.
type Image struct{}

func (Image) Probe(r io.Reader, mimeType string) Result {
	if !strings.HasPrefix(mimeType, "image/") {
		return Result{}
	}

	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return Result{}
	}

	w, h := cfg.Width, cfg.Height
	return Result{Width: &w, Height: &h}
}
