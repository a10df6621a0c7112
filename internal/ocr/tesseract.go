//go:build cgo

package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// Available reports whether Recognize can run.
func Available() bool { return true }

// Version returns the linked Tesseract version.
func Version() string { return gosseract.Version() }

// Recognize runs word-level OCR over img.
//
// The image is handed to Tesseract as an in-memory PNG, so no temporary
// files are written. Empty words are dropped. Word bounds are shifted by
// the image's origin, which keeps them valid for sub-images.
func Recognize(ctx context.Context, img image.Image, language string) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if language == "" {
		language = DefaultLanguage
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImageFromBytes(buf.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	origin := img.Bounds().Min
	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		text := strings.TrimSpace(box.Word)
		if text == "" {
			continue
		}
		words = append(words, Word{
			Text:       text,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds:     box.Box.Add(origin),
		})
	}
	return words, nil
}
