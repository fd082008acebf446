package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/session"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

// SessionHandler serves share tokens and share links
type SessionHandler struct {
	registry *studio.Registry
}

func NewSessionHandler(registry *studio.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

type ShareResponse struct {
	Token string `json:"token"`
	URL   string `json:"url"`
}

type ImportRequest struct {
	Token string `json:"token" binding:"required"`
}

// Share returns a token for the current inputs and locks, and the relative
// link that imports it
func (h *SessionHandler) Share(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	token, err := session.Encode(ctrl.Snapshot())
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, nil)
		return
	}
	c.JSON(http.StatusOK, ShareResponse{
		Token: token,
		URL:   sharePath + "?" + url.Values{shareQueryParam: {token}}.Encode(),
	})
}

// Import replaces inputs and locks with a share token. An invalid token keeps
// the current session and sets a notice.
func (h *SessionHandler) Import(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Token) > maxTokenLength {
		badRequest(c, fmt.Errorf("%w: too long", session.ErrInvalidToken))
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}

	state, err := importToken(c, ctrl, req.Token)
	if err != nil {
		respondError(c, err, http.StatusBadRequest, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ShareLink imports ?s=<token> and redirects to the app root so the token
// disappears from the address bar
func (h *SessionHandler) ShareLink(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	if token := c.Query(shareQueryParam); token != "" && len(token) <= maxTokenLength {
		_, _ = importToken(c, ctrl, token)
	} else if token != "" {
		ctrl.SetNotice(studio.NoticeInvalidShareToken)
	}
	c.Redirect(http.StatusSeeOther, shareRedirectURL)
}

func importToken(c *gin.Context, ctrl *studio.Controller, token string) (studio.State, error) {
	snap, err := session.Decode(token)
	if err != nil {
		fields := logger.WithContext(c)
		fields["error"] = err.Error()
		logger.Warn("Rejected share token", fields)
		return ctrl.SetNotice(studio.NoticeInvalidShareToken), err
	}
	return ctrl.Import(snap), nil
}
