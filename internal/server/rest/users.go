package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, badBody())
		return
	}

	session, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "user_id", session.User.ID)
	s.writeSession(c, session)
}

func (s *Server) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, common.ErrAuth)
		return
	}

	session, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.writeSession(c, session)
}

func (s *Server) writeSession(c *gin.Context, session *services.Session) {
	c.Header(common.AuthTokenHeaderName, session.Token)
	c.JSON(http.StatusOK, sessionResponse{User: session.User, Token: session.Token})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

// logout revokes the token the request was authenticated with.
func (s *Server) logout(c *gin.Context) {
	if err := s.users.Logout(c.Request.Context(), currentUser(c).ID, currentToken(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
