package probe

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ProbePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 48))))

	res := Image{}.Probe(&buf, "image/png")

	require.NotNil(t, res.Width)
	require.NotNil(t, res.Height)
	assert.Equal(t, 64, *res.Width)
	assert.Equal(t, 48, *res.Height)
	assert.Nil(t, res.Duration)
}

func TestImage_ProbeFailsOpen(t *testing.T) {
	// Garbage bytes with an image MIME type must not error out.
	res := Image{}.Probe(strings.NewReader("not an image"), "image/jpeg")
	assert.Nil(t, res.Width)
	assert.Nil(t, res.Height)

	// Non-image MIME types are skipped without reading.
	res = Image{}.Probe(strings.NewReader("ID3 audio bytes"), "audio/mpeg")
	assert.Nil(t, res.Width)
	assert.Nil(t, res.Height)
	assert.Nil(t, res.Duration)
}
