package vision

import (
	"errors"
	"fmt"
	"strings"
)

// NoObservation is the message shown when nothing was detected.
const NoObservation = "No observation"

// Report renders a detection outcome as the message shown to the user.
//
// Classification lines read "label(confidence)". Text lines carry the
// recognized text. Everything else reads "[box] ( confidence )". Errors
// other than ErrNoObservations render as "ERROR!" followed by the message
// on the next line.
func Report(kind Kind, detections []Detection, err error) string {
	if err != nil {
		if errors.Is(err, ErrNoObservations) {
			return NoObservation
		}
		return "ERROR!\n" + err.Error()
	}
	if len(detections) == 0 {
		return NoObservation
	}

	lines := make([]string, 0, len(detections))
	for _, d := range detections {
		switch {
		case kind == KindClassify:
			lines = append(lines, fmt.Sprintf("%s(%.3f)", d.Label, d.Confidence))
		case kind == KindText && d.Text != "":
			lines = append(lines, d.Text)
		default:
			lines = append(lines, fmt.Sprintf("[%s] ( %.3f )", d.Box, d.Confidence))
		}
	}
	return strings.Join(lines, "\n")
}

// Boxes collects the bounding boxes of boxed detections.
func Boxes(kind Kind, detections []Detection) []BoundingBox {
	if !kind.Boxed() {
		return nil
	}
	boxes := make([]BoundingBox, 0, len(detections))
	for _, d := range detections {
		boxes = append(boxes, d.Box)
	}
	return boxes
}
