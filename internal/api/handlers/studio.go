package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

// StudioHandler serves the form state endpoints: edits, locks, presets and
// the song structure builder
type StudioHandler struct {
	registry *studio.Registry
}

func NewStudioHandler(registry *studio.Registry) *StudioHandler {
	return &StudioHandler{registry: registry}
}

type ToggleRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type PresetRequest struct {
	Name string `json:"name"` // empty clears the preset selection
	Mode string `json:"mode"` // "overwrite" (default) or "merge"
}

type AddSectionRequest struct {
	Type string `json:"type" binding:"required"`
}

type UpdateSectionRequest struct {
	Instructions string `json:"instructions"`
}

type MoveSectionRequest struct {
	Direction string `json:"direction" binding:"required"`
}

type SelectPromptRequest struct {
	Index *int `json:"index" binding:"required"`
}

// controllerFor resolves the calling client's controller
func controllerFor(c *gin.Context, registry *studio.Registry) (*studio.Controller, bool) {
	id, ok := clientID(c)
	if !ok {
		return nil, false
	}
	return registry.Get(c.Request.Context(), id), true
}

// GetState returns the full state of the calling client. The first read from a
// returning client schedules its suggestions; ids minted on this request wait
// until the client comes back with its cookie.
func (h *StudioHandler) GetState(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	if !middleware.IsNewClient(c) {
		ctrl.Prime()
	}
	c.JSON(http.StatusOK, ctrl.State())
}

// EditInputs overlays a partial form from user edits. Locks do not apply to
// explicit edits.
func (h *StudioHandler) EditInputs(c *gin.Context) {
	var patch models.FormPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.EditInputs(patch))
}

// ToggleListValue adds or removes a value in a multi-select list
func (h *StudioHandler) ToggleListValue(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	field, err := models.ParseField(req.Field)
	if err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.ToggleListValue(field, req.Value)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ToggleLock flips the lock on the field named in the path
func (h *StudioHandler) ToggleLock(c *gin.Context) {
	field, err := models.ParseField(c.Param("field"))
	if err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.ToggleLock(field)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ApplyPreset selects a vibe preset and merges it into the unlocked fields
func (h *StudioHandler) ApplyPreset(c *gin.Context) {
	var req PresetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Name != "" {
		if _, known := models.LookupPreset(req.Name); !known {
			badRequest(c, fmt.Errorf("unknown preset %q", req.Name))
			return
		}
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.ApplyPreset(req.Name, req.Mode)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// ClearForm resets every field and lock
func (h *StudioHandler) ClearForm(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.ClearForm())
}

// ClearLyrics empties the lyrics field
func (h *StudioHandler) ClearLyrics(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, ctrl.ClearLyrics())
}

// AddSection appends a song structure section
func (h *StudioHandler) AddSection(c *gin.Context) {
	var req AddSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.AddSection(req.Type)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusCreated, state)
}

// UpdateSection replaces a section's instructions
func (h *StudioHandler) UpdateSection(c *gin.Context) {
	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if len(req.Instructions) > maxInstructionLength {
		badRequest(c, fmt.Errorf("instructions longer than %d characters", maxInstructionLength))
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.UpdateSection(c.Param("id"), req.Instructions)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// RemoveSection deletes a section
func (h *StudioHandler) RemoveSection(c *gin.Context) {
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.RemoveSection(c.Param("id"))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// MoveSection moves a section one slot up or down
func (h *StudioHandler) MoveSection(c *gin.Context) {
	var req MoveSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.MoveSection(c.Param("id"), studio.Direction(req.Direction))
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}

// SelectPrompt marks one generated variation as active
func (h *StudioHandler) SelectPrompt(c *gin.Context) {
	var req SelectPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ctrl, ok := controllerFor(c, h.registry)
	if !ok {
		return
	}
	state, err := ctrl.SelectPrompt(*req.Index)
	if err != nil {
		respondError(c, err, http.StatusInternalServerError, &state)
		return
	}
	c.JSON(http.StatusOK, state)
}
