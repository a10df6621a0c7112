// Package ocr reads words out of images with Tesseract.
//
// Recognition goes through gosseract and needs cgo plus an installed
// Tesseract with language data for the requested language:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// Binaries built without cgo still link. Recognize then returns
// ErrUnavailable and Available reports false, so callers can fall back to
// the edge-based text detector in package detection.
//
// Language codes are Tesseract's own ("eng", "deu", "chi_sim"). Several
// languages can be combined with "+", for example "eng+deu".
package ocr
