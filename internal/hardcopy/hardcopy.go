// Package hardcopy converts window hardcopies written by the host (BMP by
// default) into scaled PNG or JPEG images, optionally captioned.
package hardcopy

import (
	"fmt"
	"image"
	"image/color"
	stddraw "image/draw"
	"image/jpeg"
	"image/png"
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls the conversion.
type Options struct {
	// Format is "png" or "jpg".
	Format string
	// Quality is the JPEG quality, 1-100.
	Quality int
	// Scale resizes the image, 0.1-1.0. Zero means 1.
	Scale float64
	// Caption is drawn in a band above the image when non-empty.
	Caption string
}

const captionHeight = 17

// Convert decodes a BMP, PNG or JPEG from r and writes the converted image
// to w.
func Convert(r io.Reader, w io.Writer, opts Options) error {
	src, _, err := image.Decode(r)
	if err != nil {
		return fmt.Errorf("failed to decode hardcopy: %w", err)
	}
	img := Scale(src, opts.Scale)
	if opts.Caption != "" {
		img = Caption(img, opts.Caption)
	}
	switch opts.Format {
	case "", "png":
		return png.Encode(w, img)
	case "jpg", "jpeg":
		q := opts.Quality
		if q <= 0 || q > 100 {
			q = 80
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	default:
		return fmt.Errorf("unsupported image format: %s (expected png or jpg)", opts.Format)
	}
}

// Scale resizes img by factor. Factors outside (0, 1) return img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Caption returns a copy of img with text drawn in a dark band on top.
func Caption(img image.Image, text string) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()+captionHeight))
	stddraw.Draw(out, image.Rect(0, 0, b.Dx(), captionHeight),
		image.NewUniform(color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xff}), image.Point{}, stddraw.Src)
	stddraw.Draw(out, image.Rect(0, captionHeight, b.Dx(), b.Dy()+captionHeight), img, b.Min, stddraw.Src)

	// basicfont.Face7x13 has a 13px line height with an 11px ascent.
	d := &font.Drawer{
		Dst:  out,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(3), Y: fixed.I(13)},
	}
	d.DrawString(text)
	return out
}
