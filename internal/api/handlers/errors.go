package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/services"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/session"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

var errMissingClient = errors.New("missing client id")

// statusFor maps domain errors to HTTP status codes. Anything unrecognised
// gets the fallback, which is 502 for model-backed endpoints.
func statusFor(err error, fallback int) int {
	switch {
	case errors.Is(err, studio.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, models.ErrUnknownField),
		errors.Is(err, models.ErrFieldNotLockable),
		errors.Is(err, models.ErrNotListField),
		errors.Is(err, studio.ErrInvalidMode),
		errors.Is(err, studio.ErrInvalidSectionType),
		errors.Is(err, studio.ErrInvalidDirection),
		errors.Is(err, studio.ErrPromptIndex),
		errors.Is(err, session.ErrInvalidToken),
		errors.Is(err, services.ErrEmptyInput):
		return http.StatusBadRequest
	}
	return fallback
}

// respondError writes the error together with the state the client should show
func respondError(c *gin.Context, err error, fallback int, state *studio.State) {
	status := statusFor(err, fallback)
	fields := logger.WithContext(c)
	fields["status_code"] = status
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", err, fields)
	}

	body := gin.H{"error": err.Error()}
	if state != nil {
		body["state"] = state
	}
	c.JSON(status, body)
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// clientID returns the id set by the identity middleware, answering 401 when absent
func clientID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetClientID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMissingClient.Error()})
		return "", false
	}
	return id, true
}
