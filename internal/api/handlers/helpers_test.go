package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/api/middleware"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

// stubGenerator implements studio.Generator with canned answers
type stubGenerator struct {
	prompts []string
	inspire models.FormPatch
	rhythm  string
	theme   string
	lyrics  string
	vibe    models.FormPatch
	err     error
}

func (g *stubGenerator) GeneratePrompts(_ context.Context, _ models.FormState) []string {
	return g.prompts
}

func (g *stubGenerator) Inspire(_ context.Context, _ models.FormPatch) (models.FormPatch, error) {
	return g.inspire, g.err
}

func (g *stubGenerator) SuggestRhythmicFeel(_ context.Context, _, _ string) string {
	return g.rhythm
}

func (g *stubGenerator) ExpandTheme(_ context.Context, _ string) (string, error) {
	return g.theme, g.err
}

func (g *stubGenerator) GenerateLyrics(_ context.Context, _, _, _ string) (string, error) {
	return g.lyrics, g.err
}

func (g *stubGenerator) DeconstructVibe(_ context.Context, _ string) (models.FormPatch, error) {
	return g.vibe, g.err
}

// stubSuggester answers every genre with the same lists
type stubSuggester struct{}

func (stubSuggester) SuggestInstruments(_ context.Context, _, _ string) ([]string, error) {
	return []string{"Piano", "Not An Instrument"}, nil
}

func (stubSuggester) SuggestTechniques(_ context.Context, _, _ string) ([]string, error) {
	return []string{"Swing"}, nil
}

func (stubSuggester) SuggestSoundDesigns(_ context.Context, _, _ string) ([]string, error) {
	return []string{"Vinyl Crackle"}, nil
}

func newTestRegistry(t *testing.T, gen studio.Generator) *studio.Registry {
	t.Helper()
	registry := studio.NewRegistry(nil, nil, gen, stubSuggester{}, studio.Options{
		// Batches only run when a test flushes them
		SuggestionDebounce: time.Hour,
		SuggestionTimeout:  time.Second,
	})
	t.Cleanup(registry.Close)
	return registry
}

// setupTestRouter mirrors the production routes without the observability middleware
func setupTestRouter(registry *studio.Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(gin.Recovery())

	sessionHandler := NewSessionHandler(registry)
	router.GET("/share", middleware.AnonymousClient(), sessionHandler.ShareLink)

	v1 := router.Group("/api/v1")
	v1.Use(middleware.AnonymousClient())

	v1.GET("/catalog", GetCatalog)

	studioHandler := NewStudioHandler(registry)
	v1.GET("/state", studioHandler.GetState)
	v1.PATCH("/state/inputs", studioHandler.EditInputs)
	v1.POST("/state/toggle", studioHandler.ToggleListValue)
	v1.POST("/state/locks/:field", studioHandler.ToggleLock)
	v1.POST("/state/preset", studioHandler.ApplyPreset)
	v1.POST("/state/clear", studioHandler.ClearForm)
	v1.POST("/state/clear-lyrics", studioHandler.ClearLyrics)
	v1.POST("/state/structure", studioHandler.AddSection)
	v1.PATCH("/state/structure/:id", studioHandler.UpdateSection)
	v1.DELETE("/state/structure/:id", studioHandler.RemoveSection)
	v1.POST("/state/structure/:id/move", studioHandler.MoveSection)
	v1.POST("/prompts/active", studioHandler.SelectPrompt)

	generationHandler := NewGenerationHandler(registry)
	v1.POST("/prompts", generationHandler.GeneratePrompts)
	v1.POST("/inspire", generationHandler.Inspire)
	v1.POST("/suggestions/refresh", generationHandler.RefreshSuggestions)
	v1.POST("/suggestions/rhythmic-feel", generationHandler.RhythmicFeel)
	v1.POST("/theme/expand", generationHandler.ExpandTheme)
	v1.POST("/lyrics", generationHandler.GenerateLyrics)
	v1.POST("/vibe/deconstruct", generationHandler.DeconstructVibe)

	v1.GET("/session/share", sessionHandler.Share)
	v1.POST("/session/import", sessionHandler.Import)

	return router
}

// do sends a request as the given client; body is JSON-encoded unless nil
func do(t *testing.T, router http.Handler, method, path, client string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if client != "" {
		req.Header.Set(middleware.HeaderClientID, client)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) studio.State {
	t.Helper()
	var state studio.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state), w.Body.String())
	return state
}

// errorBody is the shape of every failed studio response
type errorBody struct {
	Error string        `json:"error"`
	State *studio.State `json:"state"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func jsonDecode(w *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}
