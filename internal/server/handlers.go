package server

import (
	"encoding/base64"
	"errors"
	"image"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dougdotcon/footsizer-backend/internal/imaging"
	"github.com/dougdotcon/footsizer-backend/internal/pipeline"
)

// annotationColor is the outline color for debug annotations.
const annotationColor = "#ff0000"

// dataURIPrefixes maps the accepted data-URI prefixes to the MIME label
// handed to the decoder. The prefix check is the only type validation:
// the pipeline trusts the label and fails on content that does not parse
// as that encoding.
var dataURIPrefixes = map[string]imaging.MIMEType{
	"data:image/png;base64,":  imaging.MIMEPNG,
	"data:image/jpeg;base64,": imaging.MIMEJPEG,
}

// UploadRequest is the JSON body of POST /upload_image.
type UploadRequest struct {
	// Image is a data-URI-style string: "data:image/png;base64,..." or
	// "data:image/jpeg;base64,...".
	Image string `json:"image" binding:"required"`

	// Debug requests diagnostic artifacts in the response.
	Debug bool `json:"debug"`
}

// UploadResponse is the JSON body returned by POST /upload_image.
// FootSizeCm is present only on success; the debug fields only when
// requested.
type UploadResponse struct {
	Message         string   `json:"message"`
	FootSizeCm      *float64 `json:"foot_size_cm,omitempty"`
	WidthPx         int      `json:"width_px,omitempty"`
	HeightPx        int      `json:"height_px,omitempty"`
	RegionColor     string   `json:"region_color,omitempty"`
	EdgesBase64     string   `json:"edges_base64,omitempty"`
	AnnotatedBase64 string   `json:"annotated_base64,omitempty"`
}

// UploadImage ingests a base64 image, persists it, runs the measurement
// pipeline, and maps the outcome onto the HTTP response.
func (s *Server) UploadImage(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.log.Warn("upload without image payload", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, UploadResponse{Message: "No image provided."})
		return
	}

	mime, payload, ok := splitDataURI(req.Image)
	if !ok {
		s.log.Warn("rejected upload with unsupported data-URI prefix", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, UploadResponse{Message: "Unsupported image type. Only PNG or JPEG are accepted."})
		return
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		s.log.Warn("rejected upload with malformed base64", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, UploadResponse{Message: "Malformed base64 image data."})
		return
	}

	path, err := s.store.Save(data)
	if err != nil {
		s.log.Error("failed to persist upload", "error", err)
		c.JSON(http.StatusInternalServerError, UploadResponse{Message: "Failed to save the image."})
		return
	}

	m, artifacts, err := pipeline.MeasureWithArtifacts(data, mime, s.cfg.Pipeline)
	if err != nil {
		s.respondFailure(c, err)
		return
	}

	if _, err := s.store.SaveThumbnail(artifacts.Image, path); err != nil {
		// Thumbnails are a convenience; the measurement already succeeded.
		s.log.Warn("failed to save thumbnail", "error", err, "path", path)
	}

	resp := UploadResponse{
		Message:     "Image processed successfully!",
		FootSizeCm:  &m.LengthCm,
		WidthPx:     m.WidthPx,
		HeightPx:    m.HeightPx,
		RegionColor: m.Color.Hex,
	}
	if req.Debug {
		s.attachDebugArtifacts(&resp, m, artifacts)
	}

	s.log.Info("foot measured", "length_cm", m.LengthCm, "width_px", m.WidthPx, "path", path)
	c.JSON(http.StatusOK, resp)
}

// respondFailure maps pipeline errors onto HTTP responses. The two domain
// outcomes stay distinct; anything else is an internal error.
func (s *Server) respondFailure(c *gin.Context, err error) {
	var decodeErr *imaging.DecodeError
	switch {
	case errors.As(err, &decodeErr):
		s.log.Warn("image could not be decoded", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, UploadResponse{Message: "The image could not be decoded."})
	case errors.Is(err, pipeline.ErrNoContourFound):
		s.log.Info("no foot detected in image", "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, UploadResponse{Message: "Could not detect a foot in the image."})
	default:
		s.log.Error("measurement failed", "error", err)
		c.JSON(http.StatusInternalServerError, UploadResponse{Message: "Error processing the image."})
	}
}

// attachDebugArtifacts adds the edge map and an annotated source copy to
// the response. Artifact encoding failures are logged and skipped rather
// than failing a measurement that already succeeded.
func (s *Server) attachDebugArtifacts(resp *UploadResponse, m *pipeline.Measurement, a *pipeline.Artifacts) {
	if edges, err := a.Edges.EncodeBase64PNG(); err == nil {
		resp.EdgesBase64 = edges
	} else {
		s.log.Warn("failed to encode edge map", "error", err)
	}

	box := image.Rect(m.Box.X1, m.Box.Y1, m.Box.X2+1, m.Box.Y2+1)
	if annotated, err := imaging.AnnotateBox(a.Image, box, annotationColor); err == nil {
		resp.AnnotatedBase64 = annotated.ImageBase64
	} else {
		s.log.Warn("failed to annotate image", "error", err)
	}
}

// splitDataURI validates the data-URI prefix and returns the MIME label
// plus the base64 payload.
func splitDataURI(uri string) (imaging.MIMEType, string, bool) {
	for prefix, mime := range dataURIPrefixes {
		if payload, ok := strings.CutPrefix(uri, prefix); ok {
			return mime, payload, true
		}
	}
	return "", "", false
}
