package render

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/draw"
)

// Scale resizes img by zoom with nearest-neighbour sampling so pixels stay
// crisp. The result is at least 1x1.
func Scale(img image.Image, zoom float64) *image.RGBA {
	b := img.Bounds()
	w := max(1, int(math.Round(float64(b.Dx())*zoom)))
	h := max(1, int(math.Round(float64(b.Dy())*zoom)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// WritePNG encodes img as PNG through a buffered writer.
func WritePNG(w io.Writer, img image.Image) error {
	bo := bufio.NewWriter(w)
	if err := png.Encode(bo, img); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	return bo.Flush()
}
