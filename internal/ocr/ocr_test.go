package ocr

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// drawText draws text on an image using basicfont
func drawText(img *image.RGBA, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// createImageWithText renders text in black on white and scales it up so
// Tesseract has enough pixels per glyph.
func createImageWithText(text string, scale int) image.Image {
	width := len(text)*7 + 40
	height := 40

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	drawText(img, 20, 25, text, color.Black)

	if scale <= 1 {
		return img
	}
	return imaging.Resize(img, width*scale, height*scale, imaging.NearestNeighbor)
}

func requireTesseract(t *testing.T) {
	t.Helper()
	if !Available() {
		t.Skip("Tesseract not available")
	}
}

func TestRecognize_RealText(t *testing.T) {
	requireTesseract(t)

	words, err := Recognize(context.Background(), createImageWithText("HELLO WORLD", 4), "eng")
	if err != nil {
		t.Skipf("Tesseract not usable: %v", err)
	}

	var texts []string
	for _, w := range words {
		texts = append(texts, strings.ToUpper(w.Text))
		if w.Confidence < 0 || w.Confidence > 1 {
			t.Errorf("word %q: confidence %f out of range", w.Text, w.Confidence)
		}
		if w.Bounds.Empty() {
			t.Errorf("word %q: empty bounds", w.Text)
		}
	}
	joined := strings.Join(texts, " ")
	if !strings.Contains(joined, "HELLO") {
		t.Errorf("expected HELLO in %q", joined)
	}
}

func TestRecognize_BlankImage(t *testing.T) {
	requireTesseract(t)

	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	words, err := Recognize(context.Background(), img, "")
	if err != nil {
		t.Skipf("Tesseract not usable: %v", err)
	}
	if len(words) != 0 {
		t.Errorf("expected no words on a blank image, got %+v", words)
	}
}

func TestRecognize_SubImageOffset(t *testing.T) {
	requireTesseract(t)

	full := createImageWithText("OFFSET", 4)
	bounds := full.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx()+100, bounds.Dy()+100))
	draw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(canvas, bounds.Add(image.Pt(100, 100)), full, bounds.Min, draw.Src)
	sub := canvas.SubImage(image.Rect(100, 100, canvas.Bounds().Dx(), canvas.Bounds().Dy()))

	words, err := Recognize(context.Background(), sub, "eng")
	if err != nil {
		t.Skipf("Tesseract not usable: %v", err)
	}
	for _, w := range words {
		if w.Bounds.Min.X < 100 || w.Bounds.Min.Y < 100 {
			t.Errorf("word %q bounds %v not offset by sub-image origin", w.Text, w.Bounds)
		}
	}
}

func TestRecognize_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Recognize(ctx, createImageWithText("X", 1), "eng")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRecognize_UnavailableWithoutTesseract(t *testing.T) {
	if Available() {
		t.Skip("Tesseract is linked")
	}
	if _, err := Recognize(context.Background(), createImageWithText("X", 1), "eng"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
	if Version() != "" {
		t.Errorf("expected empty version, got %q", Version())
	}
}
