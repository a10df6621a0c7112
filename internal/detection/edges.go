package detection

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
)

// edgeThreshold is the minimum grayscale step between neighbors that counts
// as an edge.
const edgeThreshold = 30.0

// minContourPixels drops contours too small to be anything but noise.
const minContourPixels = 10

// edgeMap marks pixels whose grayscale value differs from the right or lower
// neighbor by more than edgeThreshold. The map is indexed [y][x] relative to
// the image's top-left corner; border pixels are never edges.
func edgeMap(img image.Image) [][]bool {
	gray := effect.Grayscale(img)
	bounds := gray.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	at := func(x, y int) float64 {
		return float64(gray.Pix[y*gray.Stride+x])
	}

	edges := make([][]bool, height)
	for y := 0; y < height; y++ {
		edges[y] = make([]bool, width)
		if y == 0 || y == height-1 {
			continue
		}
		for x := 1; x < width-1; x++ {
			c := at(x, y)
			if math.Abs(c-at(x+1, y)) > edgeThreshold || math.Abs(c-at(x, y+1)) > edgeThreshold {
				edges[y][x] = true
			}
		}
	}
	return edges
}

// findContours groups 8-connected edge pixels into contours.
func findContours(edges [][]bool) [][]image.Point {
	height := len(edges)
	if height == 0 {
		return nil
	}
	width := len(edges[0])

	visited := make([][]bool, height)
	for y := range visited {
		visited[y] = make([]bool, width)
	}

	var contours [][]image.Point
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if edges[y][x] && !visited[y][x] {
				contour := floodFill(edges, visited, x, y)
				if len(contour) >= minContourPixels {
					contours = append(contours, contour)
				}
			}
		}
	}
	return contours
}

// floodFill collects the contour containing (startX, startY). It uses an
// explicit stack so large contours cannot overflow the goroutine stack.
func floodFill(edges, visited [][]bool, startX, startY int) []image.Point {
	height, width := len(edges), len(edges[0])
	var contour []image.Point
	stack := []image.Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		if visited[p.Y][p.X] || !edges[p.Y][p.X] {
			continue
		}
		visited[p.Y][p.X] = true
		contour = append(contour, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx != 0 || dy != 0 {
					stack = append(stack, image.Point{X: p.X + dx, Y: p.Y + dy})
				}
			}
		}
	}
	return contour
}

func boundingBox(points []image.Point) image.Rectangle {
	r := image.Rectangle{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r
}
