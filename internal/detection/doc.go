// Package detection finds rectangles and text-like areas in images using
// classic edge heuristics, with no trained model.
//
// Both detectors share one pipeline:
//
//  1. Edge map: grayscale via bild, then a threshold on the step to the
//     right and lower neighbor
//  2. Feature extraction: contours for rectangles, sliding windows for text
//  3. Filtering by size and confidence
//
// Results are Regions in absolute pixel coordinates of the source image,
// with exclusive Max corners like image.Rectangle. Confidence scores run
// from 0.0 to 1.0 and mean different things per detector:
//
//   - Rectangles: how closely the outline's pixel count matches the
//     bounding box perimeter
//   - Text regions: horizontal edge structure weighted by edge density
//
// These heuristics work best on clean, high-contrast images such as
// diagrams, screenshots and scanned pages. Photographs produce few
// rectangles and noisy text regions.
package detection
