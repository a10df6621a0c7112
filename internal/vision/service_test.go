package vision

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func fixed(ds ...Detection) Backend {
	return BackendFunc(func(context.Context, image.Image) ([]Detection, error) {
		return ds, nil
	})
}

func blank() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 10, 10))
}

func TestDetectNoImage(t *testing.T) {
	s := New(WithBackend(KindClassify, fixed()))
	_, err := s.Detect(context.Background(), nil, KindClassify)

	var se *ServiceError
	require.ErrorAs(t, err, &se)
	require.Equal(t, KindClassify, se.Kind)
	require.ErrorIs(t, err, ErrNoImage)
}

func TestDetectUnsupportedKind(t *testing.T) {
	s := New()
	for _, kind := range []Kind{KindFace, KindAnimal} {
		_, err := s.Detect(context.Background(), blank(), kind)
		require.ErrorIs(t, err, ErrUnsupportedKind)
		require.False(t, s.Supports(kind))
	}
}

func TestDetectBackendError(t *testing.T) {
	boom := errors.New("boom")
	s := New(WithBackend(KindText, BackendFunc(func(context.Context, image.Image) ([]Detection, error) {
		return nil, boom
	})))

	_, err := s.Detect(context.Background(), blank(), KindText)
	require.ErrorIs(t, err, boom)
	require.EqualError(t, err, "text detection failed: boom")
}

func TestDetectNoObservations(t *testing.T) {
	s := New(WithBackend(KindRectangle, fixed()))
	_, err := s.Detect(context.Background(), blank(), KindRectangle)
	require.ErrorIs(t, err, ErrNoObservations)
}

func TestDetectClassifyPolicy(t *testing.T) {
	s := New(WithBackend(KindClassify, fixed(
		Detection{Label: "red", Confidence: 0.55},
		Detection{Label: "blue", Confidence: 0.5},
		Detection{Label: "green", Confidence: 0.9},
		Detection{Label: "gray", Confidence: 0.1},
	)))

	got, err := s.Detect(context.Background(), blank(), KindClassify)
	require.NoError(t, err)
	require.Equal(t, []Detection{
		{Label: "green", Confidence: 0.9},
		{Label: "red", Confidence: 0.55},
	}, got)
}

func TestDetectRectangleCap(t *testing.T) {
	var ds []Detection
	for i := 0; i < 15; i++ {
		ds = append(ds, Detection{Label: "rectangle", Confidence: 0.7 + float64(i)/100})
	}
	s := New(WithBackend(KindRectangle, fixed(ds...)))

	got, err := s.Detect(context.Background(), blank(), KindRectangle)
	require.NoError(t, err)
	require.Len(t, got, 10)
	// Backend order is kept for rectangles.
	require.Equal(t, ds[:10], got)
}

func TestDetectFilteredToEmpty(t *testing.T) {
	s := New(WithBackend(KindText, fixed(Detection{Label: "text", Confidence: 0.6})))

	got, err := s.Detect(context.Background(), blank(), KindText)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestWithPolicy(t *testing.T) {
	s := New(
		WithBackend(KindText, fixed(Detection{Label: "text", Confidence: 0.3})),
		WithPolicy(KindText, Policy{MinConfidence: 0.2}),
	)
	got, err := s.Detect(context.Background(), blank(), KindText)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, 0.2, s.Policy(KindText).MinConfidence)
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
	}{
		{"classify", KindClassify},
		{"Classification", KindClassify},
		{"rectangles", KindRectangle},
		{" rect ", KindRectangle},
		{"faces", KindFace},
		{"animal", KindAnimal},
		{"OCR", KindText},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		require.NoError(t, err, tt.in)
		require.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseKind("barcode")
	require.Error(t, err)
	require.Len(t, AllKinds(), 5)
}
