package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultBoxColor is the outline color used when none is given.
const DefaultBoxColor = "#FF0000"

// Encoded is a PNG rendering of an image, ready to return to a client.
type Encoded struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Annotate draws an outline around each box on a copy of img and labels it
// with its 1-based position in boxes. Boxes are in the image's coordinates
// and are clipped to its bounds. An unparseable color falls back to
// DefaultBoxColor.
func Annotate(img image.Image, boxes []image.Rectangle, hexColor string) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)

	outline, err := parseHexColor(hexColor)
	if err != nil {
		outline, _ = parseHexColor(DefaultBoxColor)
	}

	for i, box := range boxes {
		r := box.Sub(bounds.Min).Intersect(out.Bounds())
		if r.Empty() {
			continue
		}
		strokeRect(out, r, outline)
		drawLabel(out, r.Min, strconv.Itoa(i+1), color.White, outline)
	}
	return out
}

// EncodePNG renders img as base64 PNG.
func EncodePNG(img image.Image) (*Encoded, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return &Encoded{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// strokeRect draws a two-pixel outline just inside r.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.Color) {
	const width = 2
	for x := r.Min.X; x < r.Max.X; x++ {
		for d := 0; d < width && d < r.Dy(); d++ {
			img.Set(x, r.Min.Y+d, c)
			img.Set(x, r.Max.Y-1-d, c)
		}
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for d := 0; d < width && d < r.Dx(); d++ {
			img.Set(r.Min.X+d, y, c)
			img.Set(r.Max.X-1-d, y, c)
		}
	}
}

// drawLabel writes text on a filled background with its top-left corner
// at p. Parts falling outside img are dropped.
func drawLabel(img *image.NRGBA, p image.Point, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	width := font.MeasureString(face, text).Ceil()
	height := face.Metrics().Height.Ceil()

	background := image.Rect(p.X, p.Y, p.X+width+2, p.Y+height).Intersect(img.Bounds())
	draw.Draw(img, background, image.NewUniform(bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fg),
		Face: face,
		Dot:  fixed.P(p.X+1, p.Y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// parseHexColor parses "#RRGGBB" or "#RRGGBBAA". The leading # is optional.
func parseHexColor(hex string) (color.NRGBA, error) {
	if hex == "" {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	val, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, err
	}
	switch len(hex) {
	case 6:
		return color.NRGBA{R: uint8(val >> 16), G: uint8(val >> 8), B: uint8(val), A: 255}, nil
	case 8:
		return color.NRGBA{R: uint8(val >> 24), G: uint8(val >> 16), B: uint8(val >> 8), A: uint8(val)}, nil
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}
}
