package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFormatFields(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   string
	}{
		{"empty", Fields{}, ""},
		{"sorted keys", Fields{"b": 2, "a": "x"}, "{a=x, b=2}"},
		{"float precision", Fields{"cost": 0.5}, "{cost=0.50}"},
		{"int64", Fields{"ms": int64(12)}, "{ms=12}"},
		{"other", Fields{"ok": true}, "{ok=true}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatFields(tt.fields))
		})
	}
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/inspire", nil)
	c.Set("request_id", "req-1")
	c.Set("client_id", "client-9")

	fields := WithContext(c)
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, http.MethodPost, fields["method"])
	assert.Equal(t, "/api/v1/inspire", fields["path"])
	assert.Equal(t, "client-9", fields["client_id"])
	assert.NotContains(t, fields, "user_id")
}

func TestLoggingWithoutSentryClient(t *testing.T) {
	assert.NotPanics(t, func() {
		Info("info", Fields{"a": 1})
		Warn("warn", nil)
		Debug("debug", Fields{})
		Error("error", errors.New("boom"), Fields{"model": "gemini-2.5-flash"})
		LogGenerationRequest(t.Context(), "variations", "gemini-2.5-flash", 0, map[string]interface{}{"total_tokens": 3}, nil)
	})
}
