//go:build !cgo

package ocr

import (
	"context"
	"image"
)

// Available reports whether Recognize can run.
func Available() bool { return false }

// Version returns the linked Tesseract version, empty without cgo.
func Version() string { return "" }

// Recognize always fails with ErrUnavailable in builds without cgo.
func Recognize(ctx context.Context, img image.Image, language string) ([]Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return nil, ErrUnavailable
}
