// Package server provides the HTTP transport around the measurement
// pipeline.
//
// The transport is deliberately thin: it validates and unwraps the
// data-URI payload, persists the raw bytes, invokes the pipeline, and maps
// the tagged pipeline outcome onto HTTP status codes. The pipeline itself
// knows nothing about HTTP.
//
// # Endpoints
//
//   - POST /upload_image: accepts {"image": "data:image/png;base64,..."}
//     (or image/jpeg) and responds with {"message", "foot_size_cm"}.
//     An optional "debug": true adds the edge map and an annotated copy
//     of the input as base64 PNG.
//   - GET /healthz: liveness probe.
//
// # Status Mapping
//
//   - 400: missing image field, unknown data-URI prefix, malformed
//     base64, undecodable image bytes, or no detectable contour. The
//     latter two are distinct outcomes and get distinct messages.
//   - 500: storage failures and unexpected internal errors.
//   - 200: successful measurement.
package server
