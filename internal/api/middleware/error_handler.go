package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "wavify/internal/api/errors"
)

// ErrorHandler turns panics into a problem response instead of a dropped
// connection.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	logger = logger.With(zap.String("component", "http"))
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		requestID := c.GetString(RequestIDKey)

		var apiErr *apierrors.APIError
		if err, ok := recovered.(error); ok && errors.As(err, &apiErr) {
			HandleError(c, apiErr)
			return
		}

		logger.Error("panic while serving request",
			zap.String("recovered", fmt.Sprint(recovered)),
			zap.String("request_id", requestID),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
			zap.Stack("stack"),
		)

		WriteProblem(c, &apierrors.Problem{
			Type:      "about:blank",
			Title:     apierrors.TitleInternal,
			Status:    http.StatusInternalServerError,
			Detail:    "internal server error",
			RequestID: requestID,
		})
	})
}

// HandleError writes err as an APIError body. Errors that are not APIErrors
// are reported as internal errors without their message.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)

	var apiErr *apierrors.APIError
	if !errors.As(err, &apiErr) {
		apiErr = apierrors.NewInternalError("Internal server error")
	}
	body := *apiErr
	body.RequestID = c.GetString(RequestIDKey)
	c.AbortWithStatusJSON(body.HTTPStatus(), &body)
}

// WriteProblem writes p as application/problem+json.
func WriteProblem(c *gin.Context, p *apierrors.Problem) {
	if p.RequestID == "" {
		p.RequestID = c.GetString(RequestIDKey)
	}
	c.Header("Content-Type", apierrors.ProblemContentType)
	c.AbortWithStatusJSON(p.Status, p)
}
