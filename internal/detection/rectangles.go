package detection

import (
	"context"
	"image"
	"math"
	"sort"
)

// Region is a detected area of an image in absolute pixel coordinates.
type Region struct {
	// Bounds encloses the detection. Min is inclusive, Max exclusive.
	Bounds image.Rectangle

	// Confidence is how well the area matches the detector's model, 0.0 to 1.0.
	Confidence float64
}

// RectangleOptions tunes Rectangles.
type RectangleOptions struct {
	// MinArea is the smallest bounding-box area, in square pixels, reported.
	MinArea int

	// Tolerance is the minimum rectangularity score, 0.0 to 1.0.
	Tolerance float64
}

// DefaultRectangleOptions returns the options used when none are configured.
func DefaultRectangleOptions() RectangleOptions {
	return RectangleOptions{MinArea: 100, Tolerance: 0.9}
}

// Rectangles finds axis-aligned rectangular outlines in img.
//
// # Algorithm
//
//  1. Edge map: bild grayscale, then a neighbor-difference threshold
//  2. Contours: 8-connected components of edge pixels
//  3. Bounding box of each contour
//  4. Rectangularity: a rectangle's outline has as many pixels as its
//     perimeter, so score = 1 - |pixels - perimeter| / perimeter
//  5. Drop contours below MinArea or Tolerance
//
// Results are sorted by area, largest first. Rotated rectangles, rounded
// corners and filled shapes with noisy interiors score low.
func Rectangles(ctx context.Context, img image.Image, opts RectangleOptions) ([]Region, error) {
	origin := img.Bounds().Min
	edges := edgeMap(img)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var found []Region
	for _, contour := range findContours(edges) {
		box := boundingBox(contour)
		w, h := box.Dx(), box.Dy()
		if w*h < opts.MinArea || w == 0 || h == 0 {
			continue
		}

		perimeter := 2 * (w + h)
		score := 1.0 - math.Abs(float64(len(contour)-perimeter))/float64(perimeter)
		if score < opts.Tolerance {
			continue
		}

		// The box's Max is the last edge pixel; Region bounds are exclusive.
		bounds := image.Rect(box.Min.X, box.Min.Y, box.Max.X+1, box.Max.Y+1).Add(origin)
		found = append(found, Region{Bounds: bounds, Confidence: math.Min(score, 1.0)})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return area(found[i].Bounds) > area(found[j].Bounds)
	})
	return found, nil
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}
