package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
)

// MIMEType identifies the declared encoding of an image payload.
//
// The decoder trusts this label: it picks the codec from the label alone
// and never sniffs the payload. A buffer that does not parse as its
// declared encoding is a decode failure, not a fallback to another codec.
type MIMEType string

const (
	// MIMEPNG declares a PNG-encoded payload.
	MIMEPNG MIMEType = "image/png"

	// MIMEJPEG declares a JPEG-encoded payload.
	MIMEJPEG MIMEType = "image/jpeg"
)

// DecodeError reports that an image payload could not be turned into a
// raster. It covers empty buffers, unsupported MIME labels, byte content
// that does not parse as the declared encoding, and degenerate
// (zero-dimension) rasters.
//
// DecodeError is non-retryable: the caller must supply different input.
type DecodeError struct {
	// MIME is the encoding the payload was declared as.
	MIME MIMEType

	// Reason describes what went wrong, for logs and responses.
	Reason string

	// Err is the underlying codec error, if any.
	Err error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: %s: %v", e.MIME, e.Reason, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.MIME, e.Reason)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses an encoded byte buffer into an in-memory raster image.
//
// Parameters:
//   - data: The encoded bytes. Must be non-empty.
//   - mime: The declared encoding, MIMEPNG or MIMEJPEG.
//
// Returns:
//   - image.Image: The decoded raster. The concrete type depends on the
//     codec (e.g. *image.NRGBA, *image.Gray, *image.YCbCr).
//   - error: A *DecodeError if the buffer is empty, the label is
//     unsupported, or the bytes do not parse as the declared encoding.
func Decode(data []byte, mime MIMEType) (image.Image, error) {
	if len(data) == 0 {
		return nil, &DecodeError{MIME: mime, Reason: "empty payload"}
	}

	var (
		img image.Image
		err error
	)
	switch mime {
	case MIMEPNG:
		img, err = png.Decode(bytes.NewReader(data))
	case MIMEJPEG:
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, &DecodeError{MIME: mime, Reason: "unsupported encoding"}
	}
	if err != nil {
		return nil, &DecodeError{MIME: mime, Reason: "malformed payload", Err: err}
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, &DecodeError{MIME: mime, Reason: "image has zero dimensions"}
	}

	return img, nil
}
