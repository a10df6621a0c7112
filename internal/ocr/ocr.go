package ocr

import (
	"errors"
	"image"
)

// DefaultLanguage is used when Recognize is called with an empty language.
const DefaultLanguage = "eng"

// ErrUnavailable is returned when the binary was built without Tesseract.
var ErrUnavailable = errors.New("ocr: tesseract not available in this build")

// Word is one recognized word and where it sits in the source image.
type Word struct {
	Text string `json:"text"`

	// Confidence is Tesseract's word confidence scaled to 0.0 to 1.0.
	Confidence float64 `json:"confidence"`

	// Bounds are absolute pixel coordinates in the source image.
	Bounds image.Rectangle `json:"bounds"`
}
