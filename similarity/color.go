package similarity

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// thumbSize is the edge of the square thumbnail colors are averaged over.
const thumbSize = 32

// DecodeImage decodes JPEG, PNG, GIF or WebP bytes.
func DecodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// MeanColor resizes img to a 32x32 thumbnail and returns its average RGB on a 0-255 scale.
func MeanColor(img image.Image) []float64 {
	thumb := image.NewRGBA(image.Rect(0, 0, thumbSize, thumbSize))
	draw.CatmullRom.Scale(thumb, thumb.Bounds(), img, img.Bounds(), draw.Src, nil)

	var r, g, b float64
	for y := 0; y < thumbSize; y++ {
		for x := 0; x < thumbSize; x++ {
			c := thumb.RGBAAt(x, y)
			r += float64(c.R)
			g += float64(c.G)
			b += float64(c.B)
		}
	}

	n := float64(thumbSize * thumbSize)
	return []float64{r / n, g / n, b / n}
}

// MeanColorOf decodes data and returns its mean color.
func MeanColorOf(data []byte) ([]float64, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return MeanColor(img), nil
}
