package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
	"github.com/yukikurage/who-owns-this/internal/middleware"
)

// SessionHandler exposes the identity record cached for the client.
type SessionHandler struct{}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

// GetSession returns the stored identity, or 404 when signed out.
func (h *SessionHandler) GetSession(c *gin.Context) {
	identity, err := middleware.LoadIdentity(c)
	if err != nil {
		if !errors.Is(err, middleware.ErrNoSession) {
			logrus.WithError(err).Warn("Failed to read session")
		}
		apierrors.NotFound(c, "No active session")
		return
	}

	c.JSON(http.StatusOK, identity)
}

// DeleteSession forgets the stored identity.
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := middleware.ClearIdentity(c); err != nil {
		apierrors.Respond(c, err, "Failed to logout")
		return
	}

	c.Status(http.StatusNoContent)
}
