package vision

import (
	"fmt"
	"strings"
)

// Kind selects which detector runs.
type Kind string

const (
	KindClassify  Kind = "classify"
	KindRectangle Kind = "rectangle"
	KindFace      Kind = "face"
	KindAnimal    Kind = "animal"
	KindText      Kind = "text"
)

// AllKinds lists every kind in display order.
func AllKinds() []Kind {
	return []Kind{KindClassify, KindRectangle, KindFace, KindAnimal, KindText}
}

var kindAliases = map[string]Kind{
	"classify":       KindClassify,
	"classification": KindClassify,
	"classes":        KindClassify,
	"rectangle":      KindRectangle,
	"rectangles":     KindRectangle,
	"rect":           KindRectangle,
	"face":           KindFace,
	"faces":          KindFace,
	"animal":         KindAnimal,
	"animals":        KindAnimal,
	"text":           KindText,
	"ocr":            KindText,
}

// ParseKind accepts a kind name or one of its aliases, case-insensitively.
func ParseKind(s string) (Kind, error) {
	if k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return k, nil
	}
	return "", fmt.Errorf("unknown detection kind %q", s)
}

// Boxed reports whether detections of this kind carry a meaningful box.
func (k Kind) Boxed() bool {
	return k != KindClassify
}

func (k Kind) String() string { return string(k) }
