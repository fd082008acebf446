package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conceptual-Machines/prompt-studio-api/internal/config"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/models"
	"github.com/Conceptual-Machines/prompt-studio-api/internal/studio"
)

type nopGenerator struct{}

func (nopGenerator) GeneratePrompts(context.Context, models.FormState) []string { return nil }
func (nopGenerator) Inspire(context.Context, models.FormPatch) (models.FormPatch, error) {
	return models.FormPatch{}, nil
}
func (nopGenerator) SuggestRhythmicFeel(context.Context, string, string) string { return "" }
func (nopGenerator) ExpandTheme(context.Context, string) (string, error)        { return "", nil }
func (nopGenerator) GenerateLyrics(context.Context, string, string, string) (string, error) {
	return "", nil
}
func (nopGenerator) DeconstructVibe(context.Context, string) (models.FormPatch, error) {
	return models.FormPatch{}, nil
}

type nopSuggester struct{}

func (nopSuggester) SuggestInstruments(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (nopSuggester) SuggestTechniques(context.Context, string, string) ([]string, error) {
	return nil, nil
}
func (nopSuggester) SuggestSoundDesigns(context.Context, string, string) ([]string, error) {
	return nil, nil
}

func newTestRouter(t *testing.T, authMode string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	registry := studio.NewRegistry(nil, nil, nopGenerator{}, nopSuggester{}, studio.Options{
		SuggestionDebounce: time.Hour,
		SuggestionTimeout:  time.Second,
	})
	t.Cleanup(registry.Close)

	return SetupRouter(Dependencies{
		Config:   &config.Config{AuthMode: authMode},
		Registry: registry,
		Version:  "test",
	})
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t, "none")

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/api/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/catalog", http.StatusOK},
		{http.MethodGet, "/api/v1/state", http.StatusOK},
		{http.MethodGet, "/api/v1/session/share", http.StatusOK},
		{http.MethodGet, "/share", http.StatusSeeOther},
		{http.MethodGet, "/api/v1/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRouterGatewayMode(t *testing.T) {
	router := newTestRouter(t, "gateway")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	req.Header.Set("X-User-ID", "7")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Health stays public
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
