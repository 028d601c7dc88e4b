package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 responses.
const retryAfterSeconds = "1"

type errorResponse struct {
	Errors models.ValidationErrors `json:"errors"`
}

// writeError is the single place where service errors become HTTP statuses.
// Only validation failures carry a body; nothing from the store leaks out.
func (s *Server) writeError(c *gin.Context, err error) {
	var verrs models.ValidationErrors

	switch {
	case errors.As(err, &verrs):
		c.AbortWithStatusJSON(http.StatusBadRequest, errorResponse{Errors: verrs})
	case errors.Is(err, common.ErrUnauthenticated):
		c.AbortWithStatus(http.StatusUnauthorized)
	case errors.Is(err, common.ErrAuth):
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, common.ErrStorageUnavailable):
		s.logger.Warn(c.Request.Context(), "storage unavailable", "error", err)
		c.Header("Retry-After", retryAfterSeconds)
		c.AbortWithStatus(http.StatusServiceUnavailable)
	default:
		s.logger.Error(c.Request.Context(), "request failed", "error", err)
		c.AbortWithStatus(http.StatusBadRequest)
	}
}

// badBody reports a request body that is not valid JSON for the endpoint.
func badBody() error {
	return models.ValidationErrors{{Field: "body", Message: "must be a valid JSON object"}}
}
