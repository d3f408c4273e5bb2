package inkpot

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/image/draw"
)

const (
	// DefaultMaxImageWidth matches the original editor's upload limit.
	DefaultMaxImageWidth = 1200
	// DefaultJPEGQuality is the re-encode quality used when callers pass 0.
	DefaultJPEGQuality = 80
)

// Compress decodes an image, downscales it so width <= maxWidth
// (preserving aspect ratio, never upscaling), re-encodes it as JPEG at
// the given quality, and returns a self-contained data URI. It persists
// nothing.
func Compress(src io.Reader, maxWidth, quality int) (string, error) {
	if maxWidth <= 0 {
		maxWidth = DefaultMaxImageWidth
	}
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > maxWidth {
		newH := h * maxWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, maxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// UploadFile is one entry in a compression batch.
type UploadFile struct {
	Name string
	Data io.Reader
}

// CompressResult reports the outcome for one file of a batch. Err is an
// *ImageError naming the file when compression failed.
type CompressResult struct {
	Name    string
	DataURI string
	Err     error
}

// CompressAll compresses each file independently. A decode or encode
// failure is recorded against its file and does not abort the rest of
// the batch.
func CompressAll(files []UploadFile, maxWidth, quality int) []CompressResult {
	results := make([]CompressResult, 0, len(files))
	for _, f := range files {
		uri, err := Compress(f.Data, maxWidth, quality)
		if err != nil {
			results = append(results, CompressResult{Name: f.Name, Err: &ImageError{Name: f.Name, Err: err}})
			continue
		}
		results = append(results, CompressResult{Name: f.Name, DataURI: uri})
	}
	return results
}
