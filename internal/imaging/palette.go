package imaging

import (
	"context"
	"fmt"
	"image"
	"sort"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// paletteSide is the longest side an image is reduced to before palette
// analysis. Color shares barely move with resolution, and the scan is
// O(width × height × len(namedColors)).
const paletteSide = 128

// NamedColor is a reference color used to label pixels.
type NamedColor struct {
	Name  string
	Color colorful.Color
}

// namedColors is the label set for palette classification, in sRGB.
var namedColors = []NamedColor{
	{"black", colorful.Color{R: 0, G: 0, B: 0}},
	{"white", colorful.Color{R: 1, G: 1, B: 1}},
	{"gray", colorful.Color{R: 0.5, G: 0.5, B: 0.5}},
	{"red", colorful.Color{R: 0.85, G: 0.1, B: 0.1}},
	{"orange", colorful.Color{R: 1, G: 0.55, B: 0}},
	{"yellow", colorful.Color{R: 1, G: 0.9, B: 0.1}},
	{"green", colorful.Color{R: 0.15, G: 0.65, B: 0.2}},
	{"cyan", colorful.Color{R: 0.1, G: 0.8, B: 0.85}},
	{"blue", colorful.Color{R: 0.1, G: 0.25, B: 0.85}},
	{"purple", colorful.Color{R: 0.5, G: 0.2, B: 0.65}},
	{"pink", colorful.Color{R: 1, G: 0.6, B: 0.75}},
	{"brown", colorful.Color{R: 0.5, G: 0.3, B: 0.15}},
}

// Swatch is one entry of an image's palette.
type Swatch struct {
	// Name is the closest named color, e.g. "blue".
	Name string `json:"name"`

	// Hex is the average color of the pixels labeled Name, "#RRGGBB".
	Hex string `json:"hex"`

	// Share is the fraction of pixels labeled Name, 0.0 to 1.0.
	Share float64 `json:"share"`
}

// Palette labels every pixel with its nearest named color in CIE L*a*b*
// space and returns up to count swatches, largest share first.
//
// Fully transparent pixels are skipped. An image with no opaque pixels
// yields an empty palette.
func Palette(ctx context.Context, img image.Image, count int) ([]Swatch, error) {
	if count <= 0 {
		return nil, fmt.Errorf("palette size must be positive, got %d", count)
	}

	bounds := img.Bounds()
	if bounds.Dx() > paletteSide || bounds.Dy() > paletteSide {
		img = imaging.Fit(img, paletteSide, paletteSide, imaging.Box)
		bounds = img.Bounds()
	}

	type bucket struct {
		n       int
		r, g, b float64
	}
	buckets := make([]bucket, len(namedColors))
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue // fully transparent
			}
			i := nearestNamed(c)
			buckets[i].n++
			buckets[i].r += c.R
			buckets[i].g += c.G
			buckets[i].b += c.B
			total++
		}
	}

	swatches := make([]Swatch, 0, len(namedColors))
	if total == 0 {
		return swatches, nil
	}
	for i, b := range buckets {
		if b.n == 0 {
			continue
		}
		n := float64(b.n)
		avg := colorful.Color{R: b.r / n, G: b.g / n, B: b.b / n}
		swatches = append(swatches, Swatch{
			Name:  namedColors[i].Name,
			Hex:   avg.Clamped().Hex(),
			Share: n / float64(total),
		})
	}

	sort.SliceStable(swatches, func(i, j int) bool {
		return swatches[i].Share > swatches[j].Share
	})
	if len(swatches) > count {
		swatches = swatches[:count]
	}
	return swatches, nil
}

func nearestNamed(c colorful.Color) int {
	best := 0
	bestDist := c.DistanceLab(namedColors[0].Color)
	for i := 1; i < len(namedColors); i++ {
		if d := c.DistanceLab(namedColors[i].Color); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
