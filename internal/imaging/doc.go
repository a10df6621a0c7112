// Package imaging loads images, derives color statistics from them and
// draws detection boxes over them.
//
// All operations work with standard Go image.Image values and use a
// coordinate system where (0,0) is the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Loading
//
// ImageCache decodes files once and keeps them in memory, keyed by path.
// Decode and DecodeBase64 accept in-memory handles (uploads, picker
// selections) without touching disk. Decoding goes through
// disintegration/imaging so JPEG EXIF orientation is honored.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Decoding and palette
// functions are stateless.
//
// # Palette Classification
//
// Palette reduces an image to at most 128 pixels on its longest side, labels
// each pixel with its nearest named color by CIE L*a*b* distance
// (go-colorful), and reports the share of each label. The vision package
// uses the shares as classification confidences.
//
// # Annotation
//
// Annotate outlines boxes on a copy of an image and numbers them in order
// using the x/image basic font. EncodePNG packages any image as base64 PNG
// for MCP responses.
package imaging
