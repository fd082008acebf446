package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/logger"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

// GenerationHandler serves the model-backed endpoints
type GenerationHandler struct {
	registry *studio.Registry
}

func NewGenerationHandler(registry *studio.Registry) *GenerationHandler {
	return &GenerationHandler{registry: registry}
}

type DeconstructRequest struct {
	Text string `json:"text" binding:"required"`
}

type RhythmicFeelResponse struct {
	Technique string       `json:"technique"`
	State     studio.State `json:"state"`
}

// GeneratePrompts asks for prompt variations of the current form. Model
// failures come back as a single error variation, never as an HTTP error.
func (h *GenerationHandler) GeneratePrompts(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}

	startTime := time.Now()
	state := ctrl.GeneratePrompts(c.Request.Context())

	fields := logger.WithContext(c)
	fields["variations"] = len(state.Prompts)
	fields["duration_ms"] = time.Since(startTime).Milliseconds()
	logger.Info("Prompt variations generated", fields)

	c.JSON(http.StatusOK, state)
}

// Inspire fills every unlocked field from the model
func (h *GenerationHandler) Inspire(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.Inspire(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusBadGateway, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RefreshSuggestions runs a suggestion batch for the current genre and mood now
func (h *GenerationHandler) RefreshSuggestions(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.RefreshSuggestions())
}

// RhythmicFeel suggests one technique and adds it to the techniques list
func (h *GenerationHandler) RhythmicFeel(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	technique, state := ctrl.SuggestRhythmicFeel(c.Request.Context())
	c.JSON(http.StatusOK, RhythmicFeelResponse{Technique: technique, State: state})
}

// ExpandTheme rewrites the theme into a short scenario
func (h *GenerationHandler) ExpandTheme(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.ExpandTheme(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusBadGateway, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// GenerateLyrics writes lyrics for the current theme, mood and genre
func (h *GenerationHandler) GenerateLyrics(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.GenerateLyrics(c.Request.Context())
	if err != nil {
		respondError(c, err, http.StatusBadGateway, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeconstructVibe fills the unlocked fields from a free-text description
func (h *GenerationHandler) DeconstructVibe(c *gin.Context) {
	var req DeconstructRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Text) > maxDescriptionLength {
		badRequest(c, fmt.Errorf("description longer than %d characters", maxDescriptionLength))
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.DeconstructVibe(c.Request.Context(), req.Text)
	if err != nil {
		respondError(c, err, http.StatusBadGateway, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}
