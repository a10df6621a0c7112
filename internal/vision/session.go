package vision

import (
	"context"
	"image"
)

// Session is the image-and-result state behind a detection surface. It is
// owned by one goroutine and does no locking.
type Session struct {
	detector Detector

	image  image.Image
	source string
	kind   Kind
	result string
	boxes  []BoundingBox
}

// State is a snapshot of a Session.
type State struct {
	Source   string        `json:"source,omitempty"`
	HasImage bool          `json:"has_image"`
	Width    int           `json:"width,omitempty"`
	Height   int           `json:"height,omitempty"`
	Kind     Kind          `json:"kind,omitempty"`
	Result   string        `json:"result"`
	Boxes    []BoundingBox `json:"boxes"`
}

// NewSession creates an empty session backed by d.
func NewSession(d Detector) *Session {
	return &Session{detector: d}
}

// Select makes img the current image and clears the previous result.
// source names where it came from and is only used for display.
func (s *Session) Select(img image.Image, source string) {
	s.image = img
	s.source = source
	s.kind = ""
	s.result = ""
	s.boxes = nil
}

// Image returns the current image, or nil.
func (s *Session) Image() image.Image {
	return s.image
}

// Run detects kind on the current image and replaces the stored result.
// With no image selected it returns ErrNoImage and leaves the state alone.
func (s *Session) Run(ctx context.Context, kind Kind) ([]Detection, error) {
	if s.image == nil {
		return nil, &ServiceError{Kind: kind, Err: ErrNoImage}
	}

	detections, err := s.detector.Detect(ctx, s.image, kind)
	s.kind = kind
	s.result = Report(kind, detections, err)
	if err != nil {
		s.boxes = nil
		return nil, err
	}
	s.boxes = Boxes(kind, detections)
	return detections, nil
}

// State returns a copy of the session state.
func (s *Session) State() State {
	st := State{
		Source: s.source,
		Kind:   s.kind,
		Result: s.result,
		Boxes:  make([]BoundingBox, len(s.boxes)),
	}
	copy(st.Boxes, s.boxes)
	if s.image != nil {
		st.HasImage = true
		st.Width = s.image.Bounds().Dx()
		st.Height = s.image.Bounds().Dy()
	}
	return st
}
