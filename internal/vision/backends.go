package vision

import (
	"context"
	"errors"
	"image"

	"github.com/ironsheep/listvision-mcp/internal/detection"
	"github.com/ironsheep/listvision-mcp/internal/imaging"
	"github.com/ironsheep/listvision-mcp/internal/ocr"
)

// BackendOptions tunes the built-in backends.
type BackendOptions struct {
	// PaletteSize is how many colors classification reports.
	PaletteSize int

	Rectangles detection.RectangleOptions

	// OCRLanguage is the Tesseract language for text detection.
	OCRLanguage string
}

// DefaultBackendOptions returns the options used when none are configured.
func DefaultBackendOptions() BackendOptions {
	return BackendOptions{
		PaletteSize: 5,
		Rectangles:  detection.DefaultRectangleOptions(),
		OCRLanguage: ocr.DefaultLanguage,
	}
}

// RegisterDefaults installs the built-in backends on s: palette
// classification, rectangle outlines and text. Face and animal detection
// need trained models and stay unregistered.
func RegisterDefaults(s *Service, opts BackendOptions) {
	s.Register(KindClassify, ClassifyBackend(opts.PaletteSize))
	s.Register(KindRectangle, RectangleBackend(opts.Rectangles))
	s.Register(KindText, TextBackend(opts.OCRLanguage))
}

// ClassifyBackend labels an image by its dominant named colors. The
// confidence of each label is the share of pixels it covers.
func ClassifyBackend(size int) Backend {
	return BackendFunc(func(ctx context.Context, img image.Image) ([]Detection, error) {
		swatches, err := imaging.Palette(ctx, img, size)
		if err != nil {
			return nil, err
		}
		out := make([]Detection, 0, len(swatches))
		for _, sw := range swatches {
			out = append(out, Detection{Label: sw.Name, Box: FullFrame, Confidence: sw.Share})
		}
		return out, nil
	})
}

// RectangleBackend finds axis-aligned rectangle outlines.
func RectangleBackend(opts detection.RectangleOptions) Backend {
	return BackendFunc(func(ctx context.Context, img image.Image) ([]Detection, error) {
		regions, err := detection.Rectangles(ctx, img, opts)
		if err != nil {
			return nil, err
		}
		return regionDetections(string(KindRectangle), regions, img.Bounds()), nil
	})
}

// TextBackend recognizes words with Tesseract. When the build has no OCR
// it falls back to locating text-like areas without reading them.
func TextBackend(language string) Backend {
	return BackendFunc(func(ctx context.Context, img image.Image) ([]Detection, error) {
		words, err := ocr.Recognize(ctx, img, language)
		if errors.Is(err, ocr.ErrUnavailable) {
			regions, err := detection.TextRegions(ctx, img, 0)
			if err != nil {
				return nil, err
			}
			return regionDetections(string(KindText), regions, img.Bounds()), nil
		}
		if err != nil {
			return nil, err
		}

		frame := img.Bounds()
		out := make([]Detection, 0, len(words))
		for _, w := range words {
			out = append(out, Detection{
				Label:      string(KindText),
				Text:       w.Text,
				Box:        NormalizeBox(w.Bounds, frame),
				Confidence: w.Confidence,
			})
		}
		return out, nil
	})
}

func regionDetections(label string, regions []detection.Region, frame image.Rectangle) []Detection {
	out := make([]Detection, 0, len(regions))
	for _, r := range regions {
		out = append(out, Detection{
			Label:      label,
			Box:        NormalizeBox(r.Bounds, frame),
			Confidence: r.Confidence,
		})
	}
	return out
}
