package hardcopy

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func bmpBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 220, B: 240, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, bmp.Encode(&buf, img))
	return buf.Bytes()
}

func TestConvert_BMPToPNG(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Convert(bytes.NewReader(bmpBytes(t, 40, 20)), &out, Options{Format: "png"}))

	img, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 20), img.Bounds())
}

func TestConvert_ScaleAndCaption(t *testing.T) {
	var out bytes.Buffer
	err := Convert(bytes.NewReader(bmpBytes(t, 100, 50)), &out, Options{Format: "jpg", Scale: 0.5, Caption: "SAP Easy Access"})
	require.NoError(t, err)

	img, err := jpeg.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25+captionHeight, img.Bounds().Dy())
}

func TestConvert_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Convert(bytes.NewReader([]byte("not an image")), &out, Options{}))
	assert.Error(t, Convert(bytes.NewReader(bmpBytes(t, 4, 4)), &out, Options{Format: "tiff"}))
}

func TestScale_IgnoresOutOfRange(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.Same(t, image.Image(img), Scale(img, 0))
	assert.Same(t, image.Image(img), Scale(img, 1.5))
}
