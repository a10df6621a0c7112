package detection

import (
	"context"
	"image"
	"math"
	"sort"
)

// textWindows are the sliding-window sizes tried, roughly matching line
// heights from small to large type.
var textWindows = []image.Point{
	{X: 80, Y: 25},
	{X: 100, Y: 30},
	{X: 150, Y: 40},
	{X: 200, Y: 50},
}

// TextRegions finds areas likely to contain horizontal text without reading
// it. It is the fallback text detector when OCR is unavailable.
//
// A window qualifies when its edge density is moderate (0.05 to 0.4, text is
// neither blank nor solid) and its edges run mostly horizontally. The
// confidence peaks at a density of 0.2. Overlapping windows are merged and
// keep the higher confidence. Results are sorted by confidence, highest
// first.
func TextRegions(ctx context.Context, img image.Image, minConfidence float64) ([]Region, error) {
	origin := img.Bounds().Min
	edges := edgeMap(img)
	height := len(edges)
	width := 0
	if height > 0 {
		width = len(edges[0])
	}

	var candidates []Region
	for _, win := range textWindows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stepX, stepY := win.X/2, win.Y/2

		for y := 0; y+win.Y <= height; y += stepY {
			for x := 0; x+win.X <= width; x += stepX {
				window := image.Rect(x, y, x+win.X, y+win.Y)
				density := float64(countEdges(edges, window)) / float64(area(window))
				if density < 0.05 || density > 0.4 {
					continue
				}

				confidence := horizontalScore(edges, window) * (1.0 - math.Abs(density-0.2)/0.2)
				if confidence < minConfidence {
					continue
				}
				candidates = append(candidates, Region{
					Bounds:     window.Add(origin),
					Confidence: math.Round(confidence*1000) / 1000,
				})
			}
		}
	}

	merged := mergeOverlapping(candidates)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Confidence > merged[j].Confidence
	})
	return merged, nil
}

func countEdges(edges [][]bool, r image.Rectangle) int {
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if edges[y][x] {
				n++
			}
		}
	}
	return n
}

// horizontalScore is the fraction of edge runs in r that run horizontally.
func horizontalScore(edges [][]bool, r image.Rectangle) float64 {
	horizontal, vertical := 0, 0

	for y := r.Min.Y; y < r.Max.Y; y++ {
		inRun := false
		for x := r.Min.X; x < r.Max.X; x++ {
			if edges[y][x] && !inRun {
				horizontal++
			}
			inRun = edges[y][x]
		}
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		inRun := false
		for y := r.Min.Y; y < r.Max.Y; y++ {
			if edges[y][x] && !inRun {
				vertical++
			}
			inRun = edges[y][x]
		}
	}

	if horizontal+vertical == 0 {
		return 0
	}
	return float64(horizontal) / float64(horizontal+vertical)
}

// mergeOverlapping folds each region into the first kept region it
// overlaps, taking the union of bounds and the higher confidence.
func mergeOverlapping(regions []Region) []Region {
	var merged []Region
	for _, r := range regions {
		folded := false
		for i := range merged {
			if r.Bounds.Overlaps(merged[i].Bounds) {
				merged[i].Bounds = merged[i].Bounds.Union(r.Bounds)
				merged[i].Confidence = math.Max(merged[i].Confidence, r.Confidence)
				folded = true
				break
			}
		}
		if !folded {
			merged = append(merged, r)
		}
	}
	return merged
}
