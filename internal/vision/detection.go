package vision

import (
	"fmt"
	"image"
	"math"
)

// BoundingBox is a rectangle normalized to the image size. The origin is
// the top-left corner and every component lies in [0, 1].
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FullFrame covers the whole image.
var FullFrame = BoundingBox{Width: 1, Height: 1}

// NormalizeBox converts r, in the pixel space of frame, to a BoundingBox.
// Parts of r outside frame are clipped.
func NormalizeBox(r, frame image.Rectangle) BoundingBox {
	r = r.Intersect(frame)
	w, h := float64(frame.Dx()), float64(frame.Dy())
	if r.Empty() || w == 0 || h == 0 {
		return BoundingBox{}
	}
	return BoundingBox{
		X:      float64(r.Min.X-frame.Min.X) / w,
		Y:      float64(r.Min.Y-frame.Min.Y) / h,
		Width:  float64(r.Dx()) / w,
		Height: float64(r.Dy()) / h,
	}
}

// Pixels maps the box back onto frame.
func (b BoundingBox) Pixels(frame image.Rectangle) image.Rectangle {
	w, h := float64(frame.Dx()), float64(frame.Dy())
	return image.Rect(
		int(math.Round(b.X*w)),
		int(math.Round(b.Y*h)),
		int(math.Round((b.X+b.Width)*w)),
		int(math.Round((b.Y+b.Height)*h)),
	).Add(frame.Min)
}

func (b BoundingBox) String() string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", b.X, b.Y, b.Width, b.Height)
}

// Detection is one observation returned by a backend.
type Detection struct {
	// Label is a class identifier for classification, otherwise the kind.
	Label string `json:"label"`

	// Text is the recognized text. Only text detections set it, and only
	// when a recognizer is available.
	Text string `json:"text,omitempty"`

	Box        BoundingBox `json:"box"`
	Confidence float64     `json:"confidence"`
}
