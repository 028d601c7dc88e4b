package rest

import (
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"

	ctxUserKey  = "auth.user"
	ctxTokenKey = "auth.token"
)

// accessLog tags the request context with a request id and logs one line per
// request once it has been served.
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		id := uuid.NewString()
		c.Request = c.Request.WithContext(logging.WithRequestID(c.Request.Context(), id))
		c.Header(requestIDHeader, id)

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

// authenticate lets the request through only when the x-auth header carries
// a token that verifies and is still held by its user. The user and the raw
// token are stored on the gin context for the handlers.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.AuthTokenHeaderName)

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			s.writeError(c, err)
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	u, _ := c.MustGet(ctxUserKey).(*models.User)
	return u
}

func currentToken(c *gin.Context) string {
	return c.GetString(ctxTokenKey)
}
