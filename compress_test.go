package inkpot

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngImage(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return &buf
}

func decodeDataURI(t *testing.T, uri string) image.Image {
	t.Helper()
	const prefix = "data:image/jpeg;base64,"
	require.True(t, strings.HasPrefix(uri, prefix), "result must be a JPEG data URI")
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	img, err := jpeg.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	return img
}

func TestCompressDownscalesWideImages(t *testing.T) {
	uri, err := Compress(pngImage(t, 2400, 1200), 1200, 80)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy(), "aspect ratio is preserved")
}

func TestCompressNeverUpscales(t *testing.T) {
	uri, err := Compress(pngImage(t, 100, 50), 1200, 80)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())
}

func TestCompressDefaults(t *testing.T) {
	// Zero values fall back to the documented defaults.
	uri, err := Compress(pngImage(t, 1800, 900), 0, 0)
	require.NoError(t, err)

	img := decodeDataURI(t, uri)
	assert.Equal(t, DefaultMaxImageWidth, img.Bounds().Dx())
}

func TestCompressRejectsGarbage(t *testing.T) {
	_, err := Compress(strings.NewReader("not an image"), 1200, 80)
	assert.Error(t, err)
}

func TestCompressAllIsolatesFailures(t *testing.T) {
	files := []UploadFile{
		{Name: "good.png", Data: pngImage(t, 10, 10)},
		{Name: "broken.png", Data: strings.NewReader("junk")},
		{Name: "also-good.png", Data: pngImage(t, 10, 10)},
	}

	results := CompressAll(files, 1200, 80)
	require.Len(t, results, 3)

	assert.NoError(t, results[0].Err)
	assert.NotEmpty(t, results[0].DataURI)

	var ie *ImageError
	require.ErrorAs(t, results[1].Err, &ie)
	assert.Equal(t, "broken.png", ie.Name, "the error names the failing file")
	assert.Empty(t, results[1].DataURI)

	assert.NoError(t, results[2].Err, "one bad file does not abort the batch")
	assert.NotEmpty(t, results[2].DataURI)
}
