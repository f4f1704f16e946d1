// Package imaging provides the image-processing stages of the foot
// measurement pipeline: decoding, grayscale reduction, Gaussian smoothing,
// Canny-style edge detection, and result annotation.
//
// All operations work with standard Go image.Image types and use a
// coordinate system where (0,0) is at the top-left corner, X increases
// rightward, and Y increases downward.
//
// # Intensity Representation
//
// Grayscale intensities are whole levels in [0, 255], carried as float64
// and converted from 8-bit channels with ITU-R BT.601 luminance weights
// (0.299*R + 0.587*G + 0.114*B). Each convolution stage re-quantizes its
// output to whole levels. This keeps the arithmetic exact: symmetric
// intensity configurations produce bit-identical gradient magnitudes, so
// edge detection behaves deterministically around ideal steps instead of
// depending on floating-point rounding noise. Edge-detection thresholds
// share the same 0-255 scale.
//
// # Purity
//
// Every stage allocates its own output buffers and never mutates its input.
// This is what allows the host service to run pipeline invocations on
// concurrent requests without locking: nothing here is shared.
//
// # Error Handling
//
// Decoding is the only stage that can fail. Malformed, empty, or
// wrongly-labeled byte buffers produce a *DecodeError; everything
// downstream is total.
package imaging
