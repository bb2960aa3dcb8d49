package handlers

import (
	"errors"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "wavify/internal/api/errors"
	"wavify/internal/api/middleware"
	"wavify/internal/api/v1/dto"
	"wavify/internal/api/v1/services"
	"wavify/internal/app/converter"
	"wavify/internal/app/model"
)

// UploadField is the multipart field carrying the audio file.
const UploadField = "file"

// ConversionHandler serves POST /convert.
type ConversionHandler struct {
	service        services.ConversionService
	maxUploadBytes int64
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(service services.ConversionService, maxUploadBytes int64) *ConversionHandler {
	return &ConversionHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// Convert handles POST /convert
// Converts an uploaded audio file to WAV, or to a transcript when the
// deployment runs in transcript mode.
//
// @Summary Convert an audio file
// @Description Transcodes the uploaded file to a WAV waveform. In transcript mode the waveform is run through the speech recognizer and the text is returned instead.
// @Tags conversions
// @Accept multipart/form-data
// @Produce audio/wav
// @Produce json
// @Produce plain
// @Param file formData file true "Audio file, extension must be in the accepted set"
// @Success 200 {file} binary "WAV waveform (waveform mode)"
// @Success 200 {object} dto.TranscriptResponse "Transcript (transcript mode)"
// @Failure 400 {string} string "Validation failure, e.g. only accepted audio formats allowed: .mp3"
// @Failure 413 {object} errors.Problem "Upload too large"
// @Failure 500 {object} errors.Problem "Conversion or transcription failed"
// @Failure 503 {object} errors.Problem "External tool unavailable"
// @Failure 504 {object} errors.Problem "External tool timed out"
// @Router /convert [post]
func (h *ConversionHandler) Convert(c *gin.Context) {
	requestID := c.GetString(middleware.RequestIDKey)
	up := converter.Upload{RequestID: requestID}

	header, err := c.FormFile(UploadField)
	switch {
	case err == nil:
		if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
			h.tooLarge(c, requestID)
			return
		}
		file, err := header.Open()
		if err != nil {
			_ = c.Error(err)
			c.String(http.StatusBadRequest, "cannot read uploaded file")
			return
		}
		defer file.Close()
		up.Filename = header.Filename
		up.ContentType = header.Header.Get("Content-Type")
		up.Body = file
	case isTooLarge(err):
		h.tooLarge(c, requestID)
		return
	case errors.Is(err, http.ErrMissingFile):
		// the pipeline rejects the empty upload
	default:
		_ = c.Error(err)
		c.String(http.StatusBadRequest, "invalid multipart form")
		return
	}

	result, err := h.service.Convert(c.Request.Context(), up)
	if err != nil {
		_ = c.Error(err)
		if msg, ok := apierrors.IsValidation(err); ok {
			c.String(http.StatusBadRequest, msg)
			return
		}
		middleware.WriteProblem(c, apierrors.FromPipelineError(err, requestID))
		return
	}

	if result.Kind == model.ModeTranscript {
		c.JSON(http.StatusOK, dto.TranscriptResponse{Transcript: result.Transcript})
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": result.Filename}))
	c.Data(http.StatusOK, result.ContentType, result.Audio)
}

func (h *ConversionHandler) tooLarge(c *gin.Context, requestID string) {
	middleware.WriteProblem(c, &apierrors.Problem{
		Type:      "about:blank",
		Title:     "upload too large",
		Status:    http.StatusRequestEntityTooLarge,
		Detail:    "the uploaded file exceeds the configured size limit",
		Stage:     string(converter.StageValidation),
		RequestID: requestID,
	})
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}
